package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoftDeleteConfigSetOnce(t *testing.T) {
	resetGlobalConfig()
	defer resetGlobalConfig()

	assert.True(t, SetGlobalSoftDeleteField("deleted", "audit_log"))
	// Second set is a silent no-op.
	assert.False(t, SetGlobalSoftDeleteField("removed"))

	cfg := GlobalSoftDelete()
	assert.Equal(t, "deleted", cfg.Field)
	assert.True(t, cfg.AppliesTo("users"))
	assert.False(t, cfg.AppliesTo("audit_log"))
}

func TestGlobalFilterSetOnce(t *testing.T) {
	resetGlobalConfig()
	defer resetGlobalConfig()

	assert.True(t, SetGlobalFilter(Col("tenant_id").Eq(7), "tenants"))
	assert.False(t, SetGlobalFilter(Col("tenant_id").Eq(8)))

	cfg := GlobalFilter()
	assert.True(t, cfg.AppliesTo("users"))
	assert.False(t, cfg.AppliesTo("tenants"))
}

func TestConfigNilAppliesToNothing(t *testing.T) {
	resetGlobalConfig()
	defer resetGlobalConfig()

	assert.Nil(t, GlobalSoftDelete())
	assert.False(t, GlobalSoftDelete().AppliesTo("users"))
	assert.False(t, GlobalFilter().AppliesTo("users"))
}
