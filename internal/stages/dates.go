package stages

import (
	"context"
	"fmt"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/normalisers/dates"
)

var _ driven.Stage = (*Dates)(nil)

// Dates parses the incident date and derives year, month and weekday.
// Unparseable dates become null together with all three derived fields.
type Dates struct{}

// NewDates creates the date stage.
func NewDates() *Dates {
	return &Dates{}
}

// Name returns the stage name.
func (d *Dates) Name() string {
	return NameDates
}

// Apply fails only when the date column is absent.
func (d *Dates) Apply(_ context.Context, table *domain.Table) error {
	if !table.HasColumn(domain.ColDate) {
		return fmt.Errorf("column %q: %w", domain.ColDate, domain.ErrMissingColumn)
	}
	for _, col := range []string{domain.ColYear, domain.ColMonth, domain.ColWeekday} {
		table.AddColumn(col)
	}

	for _, row := range table.Rows {
		t, ok := dates.Parse(row[domain.ColDate])
		if !ok {
			row[domain.ColDate] = ""
			row[domain.ColYear] = ""
			row[domain.ColMonth] = ""
			row[domain.ColWeekday] = ""
			continue
		}
		row[domain.ColDate] = t.Format(domain.DateLayout)
		row[domain.ColYear] = domain.FormatInt(t.Year())
		row[domain.ColMonth] = domain.FormatInt(int(t.Month()))
		row[domain.ColWeekday] = dates.Weekday(t)
	}
	return nil
}
