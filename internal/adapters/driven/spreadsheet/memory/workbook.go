// Package memory provides in-memory implementations of the workbook ports.
package memory

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
)

// Ensure types implement the interfaces.
var (
	_ driven.Workbook       = (*Workbook)(nil)
	_ driven.WorkbookOpener = (*Opener)(nil)
)

// Sheet is a named grid of cell text.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook is an in-memory driven.Workbook.
type Workbook struct {
	mu     sync.Mutex
	sheets []Sheet
	broken map[string]error
	closes int
}

// NewWorkbook creates a workbook with sheets in the given order.
func NewWorkbook(sheets ...Sheet) *Workbook {
	return &Workbook{sheets: sheets, broken: make(map[string]error)}
}

// BreakSheet makes reads of the named sheet fail with err.
func (w *Workbook) BreakSheet(name string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.broken[name] = err
}

// SheetNames returns the sheet names in declared order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.Name
	}
	return names
}

// Rows returns up to limit rows of a sheet; limit <= 0 returns all.
func (w *Workbook) Rows(sheet string, limit int) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err, ok := w.broken[sheet]; ok {
		return nil, err
	}
	for _, s := range w.sheets {
		if s.Name != sheet {
			continue
		}
		n := len(s.Rows)
		if limit > 0 && limit < n {
			n = limit
		}
		out := make([][]string, n)
		for i := 0; i < n; i++ {
			out[i] = append([]string(nil), s.Rows[i]...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("sheet %q does not exist", sheet)
}

// Close records the close.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closes++
	return nil
}

// Closes returns how many times the workbook was closed.
func (w *Workbook) Closes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closes
}

// Opener serves registered workbooks by path.
type Opener struct {
	mu    sync.RWMutex
	books map[string]*Workbook
	fails map[string]error
}

// NewOpener creates an empty opener.
func NewOpener() *Opener {
	return &Opener{
		books: make(map[string]*Workbook),
		fails: make(map[string]error),
	}
}

// Add registers a workbook under path.
func (o *Opener) Add(path string, wb *Workbook) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.books[path] = wb
}

// Fail makes opening path fail with err.
func (o *Opener) Fail(path string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fails[path] = err
}

// Open returns the workbook registered under path.
// Unknown paths fail with an error wrapping fs.ErrNotExist.
func (o *Opener) Open(path string) (driven.Workbook, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if err, ok := o.fails[path]; ok {
		return nil, err
	}
	wb, ok := o.books[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return wb, nil
}
