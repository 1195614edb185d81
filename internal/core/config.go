package core

import (
	"slices"
	"sync/atomic"
)

// SoftDeleteConfig is the process-wide soft-delete convention: the boolean
// column flipped instead of removing rows, and the tables exempt from it.
type SoftDeleteConfig struct {
	Field         string
	ExcludeTables []string
}

// AppliesTo reports whether the convention covers the given table.
func (c *SoftDeleteConfig) AppliesTo(table string) bool {
	return c != nil && c.Field != "" && !slices.Contains(c.ExcludeTables, table)
}

// GlobalFilterConfig is the process-wide filter predicate (e.g. a tenancy
// predicate) appended to every read and mutation, and its exclusion list.
type GlobalFilterConfig struct {
	Filter        Expr
	ExcludeTables []string
}

// AppliesTo reports whether the filter covers the given table.
func (c *GlobalFilterConfig) AppliesTo(table string) bool {
	return c != nil && !c.Filter.IsZero() && !slices.Contains(c.ExcludeTables, table)
}

// The two config cells are written once during program start and read
// without locking afterwards. Set-or-keep semantics: a second set is a
// silent no-op.
var (
	softDeleteCell   atomic.Pointer[SoftDeleteConfig]
	globalFilterCell atomic.Pointer[GlobalFilterConfig]
)

// SetGlobalSoftDeleteField installs the process-wide soft-delete field.
// Only the first call takes effect; it returns false when a configuration
// was already set.
func SetGlobalSoftDeleteField(field string, excludeTables ...string) bool {
	cfg := &SoftDeleteConfig{Field: field, ExcludeTables: excludeTables}
	return softDeleteCell.CompareAndSwap(nil, cfg)
}

// GlobalSoftDelete returns the soft-delete configuration, or nil when unset.
func GlobalSoftDelete() *SoftDeleteConfig {
	return softDeleteCell.Load()
}

// SetGlobalFilter installs the process-wide filter expression.
// Only the first call takes effect; it returns false when a configuration
// was already set.
func SetGlobalFilter(filter Expr, excludeTables ...string) bool {
	cfg := &GlobalFilterConfig{Filter: filter, ExcludeTables: excludeTables}
	return globalFilterCell.CompareAndSwap(nil, cfg)
}

// GlobalFilter returns the global filter configuration, or nil when unset.
func GlobalFilter() *GlobalFilterConfig {
	return globalFilterCell.Load()
}

// resetGlobalConfig clears both cells. Test helper only.
func resetGlobalConfig() {
	softDeleteCell.Store(nil)
	globalFilterCell.Store(nil)
}
