// Package settings binds a monitor's standard caches to
// settings-, validation-, and schema-specific helpers.
//
// It provides a Manager façade over the three standard caches, a
// deduplicating read-through loader, and a consolidated performance
// report for settings-related operations.
package settings
