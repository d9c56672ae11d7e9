package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/homicide-etl/internal/adapters/driven/spreadsheet/memory"
	"github.com/custodia-labs/homicide-etl/internal/adapters/driven/storage/csvfile"
	"github.com/custodia-labs/homicide-etl/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/stages"
)

const incrementalName = "mdi_homicidios_intencionales_pm_2025_enero_noviembre.xlsx"

// fixture is a working directory whose workbooks are served from memory.
// Files are also created on disk so the selector can see them.
type fixture struct {
	dir      string
	opener   *memory.Opener
	store    *csvfile.Store
	settings domain.Settings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	settings := domain.DefaultSettings()
	settings.Sources.Dir = dir
	return &fixture{
		dir:      dir,
		opener:   memory.NewOpener(),
		store:    csvfile.NewStore(),
		settings: settings,
	}
}

func (f *fixture) add(t *testing.T, name string, wb *memory.Workbook) {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("placeholder"), 0o644))
	f.opener.Add(path, wb)
}

func (f *fixture) selector() *SourceSelector {
	return NewSourceSelector(os.DirFS(f.dir), f.dir, f.settings.Sources)
}

func (f *fixture) pipeline(t *testing.T) *PipelineService {
	t.Helper()
	registry := stages.NewRegistry()
	stages.RegisterDefaults(registry)
	normaliser, err := NewNormaliser(registry, f.settings.Normalise)
	require.NoError(t, err)

	locator := NewTableLocator(f.settings.Locator)
	return NewPipelineService(f.selector(), NewLoader(f.opener, locator), normaliser, f.store, f.settings)
}

func (f *fixture) verifier(t *testing.T) *VerifierService {
	t.Helper()
	return NewVerifierService(f.selector(), f.opener, NewTableLocator(f.settings.Locator),
		f.store, newAnalytics(t), f.settings)
}

func newAnalytics(t *testing.T) *sqlite.Store {
	t.Helper()
	analytics, err := sqlite.NewStore()
	require.NoError(t, err)
	t.Cleanup(func() { analytics.Close() })
	return analytics
}

func historicalWorkbook() *memory.Workbook {
	return memory.NewWorkbook(
		memory.Sheet{Name: "Portada", Rows: [][]string{{"MINISTERIO DEL INTERIOR"}, {"Homicidios intencionales"}}},
		memory.Sheet{Name: "2014-2024", Rows: [][]string{
			{"Fuente: registros administrativos"},
			{""},
			{"Provincia", "Cantón", "Fecha Infracción", "Edad", "Coordenada X", "Coordenada Y", "Sexo", "Arma", ""},
			{"Guayas", "Durán", "09/03/2024", "34", "-79,8", "-2,1", "Hombre", "Arma de fuego", "1"},
			{"Guayas", "GNRAL. ANTONIO ELIZALDE", "2023-05-01", "N/D", "0", "0", "Mujer", "SIN_DATO", "2"},
			{"Pichincha", "Quito", "45360", "12", "", "", "", "", "3"},
		}},
	)
}

func incrementalWorkbook() *memory.Workbook {
	return memory.NewWorkbook(memory.Sheet{Name: "Enero-Noviembre", Rows: [][]string{
		{"PROVINCIA", "CANTON", "FECHA INFRACCION", "EDAD", "ZONA"},
		{"GUAYAS", "DURAN", "2025-01-15", "65", "Zona 8"},
		{"AZUAY", "CUENCA", "", "17", "Zona 6"},
	}})
}

func (f *fixture) addDefaults(t *testing.T) {
	t.Helper()
	f.add(t, f.settings.Sources.Historical, historicalWorkbook())
	f.add(t, incrementalName, incrementalWorkbook())
}
