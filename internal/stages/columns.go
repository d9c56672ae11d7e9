package stages

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/logger"
	"github.com/custodia-labs/homicide-etl/internal/normalisers/text"
)

var _ driven.Stage = (*Columns)(nil)

// artifactPattern matches index columns left behind by earlier exports
// ("Unnamed: 0") and by the loader for blank header cells.
var artifactPattern = regexp.MustCompile(`(?i)unnamed`)

// Columns drops artifact columns and canonicalises column names:
// lowercase, trimmed, accent-free, inner whitespace as underscores.
type Columns struct{}

// NewColumns creates the column stage.
func NewColumns() *Columns {
	return &Columns{}
}

// Name returns the stage name.
func (c *Columns) Name() string {
	return NameColumns
}

// Apply drops artifacts, then renames. When two source columns canonicalise
// to the same name (e.g. "Fecha Infraccion" from one extract and
// "fecha_infraccion" from the other) they are coalesced into the first.
func (c *Columns) Apply(_ context.Context, table *domain.Table) error {
	var drop []string
	for _, col := range table.Columns {
		if artifactPattern.MatchString(col) {
			drop = append(drop, col)
		}
	}
	if len(drop) > 0 {
		logger.Info("Dropping artifact columns: %v", drop)
		for _, col := range drop {
			table.DropColumn(col)
		}
	}

	original := append([]string(nil), table.Columns...)
	for _, col := range original {
		name := CanonicalColumnName(col)
		if name == col {
			continue
		}
		if table.RenameColumn(col, name) {
			continue
		}
		coalesce(table, col, name)
		table.DropColumn(col)
	}
	return nil
}

// CanonicalColumnName returns the canonical form of a column label.
func CanonicalColumnName(col string) string {
	name := strings.ToLower(text.Fold(strings.TrimSpace(col)))
	return strings.Join(strings.Fields(name), "_")
}

// coalesce fills empty cells of dst from src.
func coalesce(table *domain.Table, src, dst string) {
	for _, row := range table.Rows {
		if row[dst] == "" && row[src] != "" {
			row[dst] = row[src]
		}
	}
}
