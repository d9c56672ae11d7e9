package stages

import (
	"context"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/normalisers/numeric"
)

var _ driven.Stage = (*Numeric)(nil)

// Numeric coerces age and coordinates. Non-numeric cells become null.
// Coordinates accept a decimal comma. A zero on either axis nulls the
// pair, since the origin lies outside the reporting territory.
type Numeric struct{}

// NewNumeric creates the numeric stage.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Name returns the stage name.
func (n *Numeric) Name() string {
	return NameNumeric
}

// Apply coerces in place. Absent columns are added as null.
func (n *Numeric) Apply(_ context.Context, table *domain.Table) error {
	for _, col := range []string{domain.ColAge, domain.ColCoordX, domain.ColCoordY} {
		table.AddColumn(col)
	}

	for _, row := range table.Rows {
		if age, ok := numeric.Age(row[domain.ColAge]); ok {
			row[domain.ColAge] = domain.FormatInt(age)
		} else {
			row[domain.ColAge] = ""
		}

		x, okX := numeric.Coordinate(row[domain.ColCoordX])
		y, okY := numeric.Coordinate(row[domain.ColCoordY])
		if (okX && x == 0) || (okY && y == 0) {
			okX, okY = false, false
		}
		row[domain.ColCoordX] = formatOptionalFloat(x, okX)
		row[domain.ColCoordY] = formatOptionalFloat(y, okY)
	}
	return nil
}

func formatOptionalFloat(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return domain.FormatFloat(v)
}
