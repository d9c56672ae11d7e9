package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/logger"
)

// LoadResult is what the loader produced for one source.
type LoadResult struct {
	// Table holds the data rows. It is empty, never nil, when nothing was loaded.
	Table *domain.Table

	// Location is where the table was found; nil when it was not.
	Location *domain.TableLocation

	// Warnings collects recoverable conditions.
	Warnings []string
}

// Located reports whether the source contributed a table.
func (r *LoadResult) Located() bool {
	return r.Location != nil
}

// Loader reads the data table out of one spreadsheet source.
type Loader struct {
	opener  driven.WorkbookOpener
	locator *TableLocator
}

// NewLoader creates a loader.
func NewLoader(opener driven.WorkbookOpener, locator *TableLocator) *Loader {
	return &Loader{opener: opener, locator: locator}
}

// Load locates the table in the source and reads every row below the header.
// A missing file, an unopenable workbook or an undetected table are not
// errors: the result carries an empty table and a warning, and the caller
// decides whether the run can continue.
func (l *Loader) Load(ctx context.Context, source domain.Source) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &LoadResult{Table: domain.NewTable(source.Path)}
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf("%s source %s: ", source.Kind, source.Name()) + fmt.Sprintf(format, args...)
		logger.Warn("%s", msg)
		result.Warnings = append(result.Warnings, msg)
	}

	wb, err := l.opener.Open(source.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			warn("file not found")
		} else {
			warn("cannot open workbook: %v", err)
		}
		return result, nil
	}
	defer wb.Close()

	loc, skipped, err := l.locator.Locate(wb)
	for _, msg := range skipped {
		warn("%s", msg)
	}
	if err != nil {
		warn("%v", err)
		return result, nil
	}

	rows, err := wb.Rows(loc.Sheet, 0)
	if err != nil {
		warn("cannot read sheet %q: %v", loc.Sheet, err)
		return result, nil
	}

	result.Table = TableFromRows(source.Path, rows, loc.HeaderRow)
	result.Location = loc
	logger.Info("Loaded %d rows from %s (sheet %q, header row %d)",
		result.Table.Len(), source.Name(), loc.Sheet, loc.HeaderRow)
	return result, nil
}

// TableFromRows builds a table from sheet rows, using the row at headerRow
// as column labels and every later non-blank row as data.
func TableFromRows(source string, rows [][]string, headerRow int) *domain.Table {
	if headerRow < 0 || headerRow >= len(rows) {
		return domain.NewTable(source)
	}

	header := rows[headerRow]
	width := len(header)
	for _, row := range rows[headerRow+1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := HeaderLabels(header, width)
	table := domain.NewTable(source, columns...)
	for _, cells := range rows[headerRow+1:] {
		if isBlankRow(cells) {
			continue
		}
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			if i < len(cells) {
				row[col] = strings.TrimSpace(cells[i])
			}
		}
		table.Append(row)
	}
	return table
}

// HeaderLabels turns header cells into unique column labels.
// Blank cells become "Unnamed: <i>"; repeats get ".1", ".2" suffixes.
func HeaderLabels(header []string, width int) []string {
	if width < len(header) {
		width = len(header)
	}
	labels := make([]string, width)
	used := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		base := ""
		if i < len(header) {
			base = strings.TrimSpace(header[i])
		}
		if base == "" {
			base = "Unnamed: " + strconv.Itoa(i)
		}
		label := base
		for n := 1; used[label]; n++ {
			label = base + "." + strconv.Itoa(n)
		}
		used[label] = true
		labels[i] = label
	}
	return labels
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
