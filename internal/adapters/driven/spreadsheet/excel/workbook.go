// Package excel reads .xlsx workbooks with excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
)

// Ensure types implement the interfaces.
var (
	_ driven.Workbook       = (*Workbook)(nil)
	_ driven.WorkbookOpener = (*Opener)(nil)
)

// Opener opens .xlsx files from disk.
type Opener struct{}

// NewOpener creates an excelize-backed opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the workbook at path. Cells are read as raw values, so
// date cells come back as serial day numbers rather than formatted text.
func (o *Opener) Open(path string) (driven.Workbook, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: f}, nil
}

// Workbook wraps an open excelize file.
type Workbook struct {
	file *excelize.File
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows streams up to limit rows of a sheet; limit <= 0 reads all.
// Streaming keeps the header scan cheap on large sheets.
func (w *Workbook) Rows(sheet string, limit int) ([][]string, error) {
	rows, err := w.file.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		if limit > 0 && len(out) >= limit {
			break
		}
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("read sheet %q row %d: %w", sheet, len(out), err)
		}
		out = append(out, cols)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return out, nil
}

// Close releases the file.
func (w *Workbook) Close() error {
	return w.file.Close()
}
