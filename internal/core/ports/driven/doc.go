// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - WorkbookOpener / Workbook: Spreadsheet access (excelize, in-memory)
//   - TableStore: Flat delimited file persistence (CSV)
//   - Stage / StagePipeline: Normalisation steps
//   - AnalyticsStore: Aggregate queries over the normalised table (SQLite)
//   - ConfigStore: Application configuration (TOML)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or stage package
package driven
