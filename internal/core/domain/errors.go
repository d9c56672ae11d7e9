package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Fatal errors. Any of these stops the run.

	// ErrSourceNotFound indicates no incremental extract matches the naming convention.
	ErrSourceNotFound = errors.New("source not found")

	// ErrNoData indicates neither source contributed a located table.
	ErrNoData = errors.New("no data to process")

	// ErrMissingColumn indicates a structurally required column is absent
	// from the consolidated table.
	ErrMissingColumn = errors.New("required column missing")

	// Recoverable errors. The source or sheet is skipped with a warning.

	// ErrTableNotFound indicates no header row matched the marker set
	// within the scan window of any sheet.
	ErrTableNotFound = errors.New("data table not found")

	// ErrSheetUnreadable indicates a sheet could not be read.
	ErrSheetUnreadable = errors.New("sheet unreadable")
)
