package services

import (
	"github.com/custodia-labs/homicide-etl/internal/core/domain"
)

// Consolidate stacks the historical and incremental tables into one.
// The column set is the union of both: historical columns first, then
// columns only the incremental table carries. Cells missing from a source
// are null. Rows are neither dropped nor deduplicated, so overlapping
// reporting periods produce repeated incidents.
func Consolidate(source string, tables ...*domain.Table) *domain.Table {
	out := domain.NewTable(source)
	total := 0
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, col := range t.Columns {
			out.AddColumn(col)
		}
		total += t.Len()
	}

	out.Rows = make([]domain.Row, 0, total)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.Rows {
			copied := make(domain.Row, len(row))
			for k, v := range row {
				copied[k] = v
			}
			out.Append(copied)
		}
	}
	return out
}
