package driven

import (
	"context"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
)

// TableStore reads and writes tables as flat delimited files.
// Writes overwrite the target; the last writer wins.
type TableStore interface {
	// Write stores a table at path, header first, in column order.
	Write(ctx context.Context, path string, table *domain.Table) error

	// Read loads a table previously written by Write.
	Read(ctx context.Context, path string) (*domain.Table, error)
}
