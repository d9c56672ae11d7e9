package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
)

func TestConflictKey(t *testing.T) {
	assert.Equal(t, "GNRALANTONIOELIZALDE", ConflictKey("Gnral. Antonio Elizalde"))
	assert.Equal(t, ConflictKey("DURÁN"), ConflictKey("duran"))
	assert.NotEqual(t, ConflictKey("DAULE"), ConflictKey("DURAN"))
}

func TestFindConflicts(t *testing.T) {
	conflicts := FindConflicts(map[string][]string{
		"PICHINCHA": {"QUITO"},
		"GUAYAS":    {"DURAN", "DURÁN", "GUAYAQUIL", "GNRAL ANTONIO ELIZALDE", "GNRAL. ANTONIO ELIZALDE"},
	})

	assert.Equal(t, []domain.CantonConflict{
		{Province: "GUAYAS", Key: "DURAN", Spellings: []string{"DURAN", "DURÁN"}},
		{Province: "GUAYAS", Key: "GNRALANTONIOELIZALDE", Spellings: []string{"GNRAL ANTONIO ELIZALDE", "GNRAL. ANTONIO ELIZALDE"}},
	}, conflicts)
}

func TestInspectorService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addDefaults(t)
	result, err := f.pipeline(t).Run(ctx)
	require.NoError(t, err)

	inspector := NewInspectorService(f.store, newAnalytics(t), result.CleanPath)

	stats, err := inspector.CoordinateCompleteness(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.InDelta(t, 50.0, stats[1].Percent(), 0.001)

	cantons, err := inspector.Cantons(ctx, "guayas")
	require.NoError(t, err)
	assert.Equal(t, []domain.CantonCount{
		{Name: "DURAN", Rows: 2},
		{Name: "GENERAL ANTONIO ELIZALDE", Rows: 1},
	}, cantons)

	_, err = inspector.Cantons(ctx, "Galápagos")
	assert.ErrorIs(t, err, domain.ErrNoData)

	conflicts, err := inspector.AccentConflicts(ctx)
	require.NoError(t, err)
	assert.Empty(t, conflicts, "normalised output folds accents")
}

func TestInspectorService_MissingFile(t *testing.T) {
	inspector := NewInspectorService(newFixture(t).store, newAnalytics(t), "/nonexistent/clean.csv")

	_, err := inspector.AccentConflicts(context.Background())

	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}
