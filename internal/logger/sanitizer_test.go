package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizerMasksSensitiveStatements(t *testing.T) {
	s := NewSanitizer()

	out := s.FormatParams("UPDATE users SET password = ? WHERE id = ?", []any{"hunter2", 7})
	assert.Equal(t, "[***REDACTED***, ***REDACTED***]", out)

	out = s.FormatParams("INSERT INTO sessions (api_token) VALUES (?)", []any{"tok"})
	assert.Equal(t, "[***REDACTED***]", out)
}

func TestSanitizerLeavesPlainStatements(t *testing.T) {
	s := NewSanitizer()

	out := s.FormatParams("SELECT * FROM users WHERE age > ?", []any{18})
	assert.Equal(t, "[18]", out)

	out = s.FormatParams("SELECT 1", nil)
	assert.Equal(t, "[]", out)
}

func TestSanitizerCustomFields(t *testing.T) {
	s := NewSanitizer("ssn_hash")

	out := s.FormatParams("SELECT * FROM people WHERE ssn_hash = ?", []any{"abc"})
	assert.Equal(t, "[***REDACTED***]", out)

	// Custom fields replace the default set.
	out = s.FormatParams("UPDATE users SET password = ?", []any{"x"})
	assert.Equal(t, "[x]", out)
}

func TestSanitizerWordBoundary(t *testing.T) {
	s := NewSanitizer()

	out := s.FormatParams("SELECT password FROM t WHERE ok = ?", []any{1})
	assert.Equal(t, "[***REDACTED***]", out)

	// Only whole-word matches trigger masking.
	out = s.FormatParams("SELECT passports FROM t WHERE ok = ?", []any{1})
	assert.Equal(t, "[1]", out)
}

func TestSanitizerTruncatesLongValues(t *testing.T) {
	s := NewSanitizer()

	long := strings.Repeat("a", 150)
	out := s.FormatParams("SELECT * FROM t WHERE body = ?", []any{long})
	assert.Contains(t, out, "...")
	assert.Less(t, len(out), 150)
}

func TestSanitizerFormatsNil(t *testing.T) {
	s := NewSanitizer()
	out := s.FormatParams("SELECT * FROM t WHERE a = ?", []any{nil})
	assert.Equal(t, "[NULL]", out)
}
