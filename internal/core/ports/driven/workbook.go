package driven

// Workbook is an opened spreadsheet with named sheets of cell text.
type Workbook interface {
	// SheetNames returns the sheet names in declared order.
	SheetNames() []string

	// Rows returns up to limit rows of a sheet, top to bottom.
	// A limit of zero or less returns every row.
	// Rows may be ragged; trailing empty cells can be omitted.
	Rows(sheet string, limit int) ([][]string, error)

	// Close releases the underlying file.
	Close() error
}

// WorkbookOpener opens spreadsheets by path.
type WorkbookOpener interface {
	// Open opens the spreadsheet at path.
	Open(path string) (Workbook, error)
}
