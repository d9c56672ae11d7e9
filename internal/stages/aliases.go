package stages

import (
	"context"
	"fmt"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/normalisers/text"
)

var _ driven.Stage = (*Aliases)(nil)

// Aliases maps known variant canton spellings to one canonical spelling.
// The table is finite and explicit; values not in it pass through.
type Aliases struct {
	table map[string]string
}

// NewAliases creates the alias stage. Keys and values are canonicalised
// and the table is rejected if it is not idempotent.
func NewAliases(aliases map[string]string) (*Aliases, error) {
	table := make(map[string]string, len(aliases))
	for variant, canonical := range aliases {
		key, value := text.Canonical(variant), text.Canonical(canonical)
		if prev, ok := table[key]; ok && prev != value {
			return nil, fmt.Errorf("%w: alias %q maps to both %q and %q", domain.ErrInvalidInput, key, prev, value)
		}
		table[key] = value
	}
	if err := domain.ValidateAliases(table); err != nil {
		return nil, err
	}
	return &Aliases{table: table}, nil
}

// Name returns the stage name.
func (a *Aliases) Name() string {
	return NameAliases
}

// Lookup returns the canonical spelling of a canonicalised canton name.
func (a *Aliases) Lookup(canton string) string {
	if canonical, ok := a.table[canton]; ok {
		return canonical
	}
	return canton
}

// Len returns the number of alias entries.
func (a *Aliases) Len() int {
	return len(a.table)
}

// Apply rewrites the canton column.
func (a *Aliases) Apply(_ context.Context, table *domain.Table) error {
	if !table.HasColumn(domain.ColCanton) {
		return nil
	}
	for _, row := range table.Rows {
		row[domain.ColCanton] = a.Lookup(row[domain.ColCanton])
	}
	return nil
}
