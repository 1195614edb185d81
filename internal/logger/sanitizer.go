package logger

import (
	"fmt"
	"regexp"
	"strings"
)

// Sanitizer masks bind values before they reach logs when the statement
// touches columns that look sensitive (passwords, tokens, card numbers).
// Original parameters are never modified.
type Sanitizer struct {
	maskValue string
	patterns  []*regexp.Regexp
}

// defaultSensitiveFields are the column-name patterns masked out of the box.
var defaultSensitiveFields = []string{
	"password", "passwd", "pwd",
	"token", "api_key", "apikey", "api_token",
	"secret", "auth", "authorization",
	"credit_card", "card_number", "cvv", "cvc",
	"ssn", "social_security",
	"private_key", "priv_key",
}

// NewSanitizer creates a sanitizer for the given sensitive column names.
// With no names, a default set of common patterns is used.
func NewSanitizer(sensitiveFields ...string) *Sanitizer {
	if len(sensitiveFields) == 0 {
		sensitiveFields = defaultSensitiveFields
	}

	patterns := make([]*regexp.Regexp, 0, len(sensitiveFields))
	for _, field := range sensitiveFields {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(field)+`\b`))
	}

	return &Sanitizer{
		maskValue: "***REDACTED***",
		patterns:  patterns,
	}
}

// FormatParams renders parameters for logging, masking every value when
// the statement mentions a sensitive column. Long values are truncated.
func (s *Sanitizer) FormatParams(sql string, params []any) string {
	if len(params) == 0 {
		return "[]"
	}

	mask := s.mentionsSensitive(sql)
	parts := make([]string, len(params))
	for i, p := range params {
		if mask {
			parts[i] = s.maskValue
			continue
		}
		parts[i] = formatValue(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// mentionsSensitive reports whether the SQL names a sensitive column.
func (s *Sanitizer) mentionsSensitive(sql string) bool {
	for _, pattern := range s.patterns {
		if pattern.MatchString(sql) {
			return true
		}
	}
	return false
}

// formatValue formats one parameter value, truncating long strings to
// keep logs readable.
func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}

	str := fmt.Sprintf("%v", v)
	const maxLen = 100
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}
