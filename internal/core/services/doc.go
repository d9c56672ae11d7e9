// Package services implements the driving port interfaces.
// Services contain the core pipeline logic (source selection, table
// location, loading, consolidation, normalisation, verification) and
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO dependencies.
package services
