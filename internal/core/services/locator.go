package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/logger"
	textnorm "github.com/custodia-labs/homicide-etl/internal/normalisers/text"
)

// TableLocator finds the header row of the data table inside a workbook.
// Extracts carry banner rows, logos and notes above the real table, and the
// table may sit on any sheet, so the header is recognised by its contents.
type TableLocator struct {
	primary string
	anyOf   []string
	window  int
}

// NewTableLocator creates a locator for the given marker set.
// Markers are matched against canonicalised cell text.
func NewTableLocator(markers domain.MarkerSet) *TableLocator {
	anyOf := make([]string, 0, len(markers.AnyOf))
	for _, m := range markers.AnyOf {
		if c := textnorm.Canonical(m); c != "" {
			anyOf = append(anyOf, c)
		}
	}
	return &TableLocator{
		primary: textnorm.Canonical(markers.Primary),
		anyOf:   anyOf,
		window:  domain.ScanWindow,
	}
}

// Locate returns the first sheet, in declared order, whose first rows
// contain a header row. Within a sheet the first matching row wins.
// Unreadable sheets are skipped; one message per skipped sheet is returned
// for the caller to report, whether or not a table was found.
func (l *TableLocator) Locate(wb driven.Workbook) (*domain.TableLocation, []string, error) {
	var skipped []string
	for _, sheet := range wb.SheetNames() {
		loc, err := l.locateSheet(wb, sheet)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("skipped sheet %q: %v", sheet, err))
			continue
		}
		if loc != nil {
			return loc, skipped, nil
		}
	}
	return nil, skipped, domain.ErrTableNotFound
}

// LocateAll returns the header location of every sheet that has one.
func (l *TableLocator) LocateAll(wb driven.Workbook) []domain.TableLocation {
	var out []domain.TableLocation
	for _, sheet := range wb.SheetNames() {
		loc, err := l.locateSheet(wb, sheet)
		if err != nil {
			logger.Warn("Skipping sheet %q: %v", sheet, err)
			continue
		}
		if loc != nil {
			out = append(out, *loc)
		}
	}
	return out
}

func (l *TableLocator) locateSheet(wb driven.Workbook, sheet string) (*domain.TableLocation, error) {
	rows, err := wb.Rows(sheet, l.window)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSheetUnreadable, err)
	}
	for i, row := range rows {
		if i >= l.window {
			break
		}
		if l.IsHeader(row) {
			logger.Debug("Header found on sheet %q row %d", sheet, i)
			return &domain.TableLocation{Sheet: sheet, HeaderRow: i}, nil
		}
	}
	return nil, nil
}

// IsHeader reports whether a row carries the primary marker and at least
// one of the secondary markers. A marker matches a cell that contains it,
// so "FECHA INFRACCION" satisfies FECHA.
func (l *TableLocator) IsHeader(row []string) bool {
	if l.primary == "" {
		return false
	}
	cells := make([]string, 0, len(row))
	for _, cell := range row {
		if c := textnorm.Canonical(cell); c != "" {
			cells = append(cells, c)
		}
	}
	if !containsMarker(cells, l.primary) {
		return false
	}
	for _, m := range l.anyOf {
		if m != l.primary && containsMarker(cells, m) {
			return true
		}
	}
	return false
}

func containsMarker(cells []string, marker string) bool {
	for _, c := range cells {
		if strings.Contains(c, marker) {
			return true
		}
	}
	return false
}
