// Package domain defines the core entities of the homicide extract pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Table: A rectangular, column-named table of raw cell text
//   - CanonicalRecord: One normalised incident, the unit of analysis
//   - Source: A spreadsheet extract selected for a run
//   - TableLocation: Where a data table starts inside a workbook
//   - VerificationReport: Row-count reconciliation and completeness figures
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
