// Package query resolves partial task identifiers and filters and sorts task
// collections. Everything here is read-only over the slice it is given.
package query
