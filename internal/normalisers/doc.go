// Package normalisers provides cell-level value normalisers. Each
// subpackage turns one kind of raw spreadsheet text into its canonical
// form (categorical text, dates, numbers) and reports failure instead of
// erroring, so callers can degrade the cell to null.
//
// The table-level stages in internal/stages apply these column by column.
package normalisers
