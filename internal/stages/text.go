package stages

import (
	"context"
	"fmt"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/normalisers/text"
)

var _ driven.Stage = (*Text)(nil)

// Text canonicalises the categorical columns: uppercase, trimmed,
// accent-free, with missing sentinels replaced by the unknown label.
type Text struct {
	required map[string]struct{}
}

// NewText creates the text stage. Absence of a required column is fatal;
// other categorical columns are added filled with the unknown label.
func NewText(required ...string) *Text {
	t := &Text{required: make(map[string]struct{}, len(required))}
	for _, col := range required {
		t.required[col] = struct{}{}
	}
	return t
}

// Name returns the stage name.
func (t *Text) Name() string {
	return NameText
}

// Apply canonicalises each categorical column.
func (t *Text) Apply(_ context.Context, table *domain.Table) error {
	for _, col := range domain.CategoricalColumns {
		if !table.HasColumn(col) {
			if _, ok := t.required[col]; ok {
				return fmt.Errorf("column %q: %w", col, domain.ErrMissingColumn)
			}
			table.AddColumn(col)
		}
	}

	for _, row := range table.Rows {
		for _, col := range domain.CategoricalColumns {
			row[col] = text.Normalise(row[col], domain.UnknownLabel)
		}
	}
	return nil
}
