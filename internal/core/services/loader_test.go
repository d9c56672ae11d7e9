package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/homicide-etl/internal/adapters/driven/spreadsheet/memory"
	"github.com/custodia-labs/homicide-etl/internal/core/domain"
)

func TestHeaderLabels(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		width  int
		want   []string
	}{
		{"plain", []string{"A", "B"}, 2, []string{"A", "B"}},
		{"blank", []string{"A", " ", "C"}, 3, []string{"A", "Unnamed: 1", "C"}},
		{"wider data", []string{"A"}, 3, []string{"A", "Unnamed: 1", "Unnamed: 2"}},
		{"duplicates", []string{"X", "X", "X"}, 3, []string{"X", "X.1", "X.2"}},
		{"suffix collision", []string{"X", "X.1", "X"}, 3, []string{"X", "X.1", "X.2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HeaderLabels(tt.header, tt.width))
		})
	}
}

func TestTableFromRows(t *testing.T) {
	rows := [][]string{
		{"Reporte de homicidios"},
		{"PROVINCIA", "CANTON", "EDAD"},
		{"Guayas", " Durán ", "34"},
		{"", "", ""},
		{"Pichincha", "Quito"},
		{"Azuay", "Cuenca", "20", "extra"},
	}

	table := TableFromRows("src.xlsx", rows, 1)

	assert.Equal(t, []string{"PROVINCIA", "CANTON", "EDAD", "Unnamed: 3"}, table.Columns)
	want := []domain.Row{
		{"PROVINCIA": "Guayas", "CANTON": "Durán", "EDAD": "34", "Unnamed: 3": ""},
		{"PROVINCIA": "Pichincha", "CANTON": "Quito", "EDAD": "", "Unnamed: 3": ""},
		{"PROVINCIA": "Azuay", "CANTON": "Cuenca", "EDAD": "20", "Unnamed: 3": "extra"},
	}
	if diff := cmp.Diff(want, table.Rows, cmp.Transformer("nulls", dropEmpty)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

// dropEmpty treats absent keys and empty cells alike.
func dropEmpty(r domain.Row) map[string]string {
	out := make(map[string]string, len(r))
	for k, v := range r {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func TestTableFromRows_HeaderOutOfRange(t *testing.T) {
	table := TableFromRows("src", [][]string{{"a"}}, 3)

	assert.Zero(t, table.Len())
	assert.Empty(t, table.Columns)
}

func newTestLoader(opener *memory.Opener) *Loader {
	return NewLoader(opener, defaultLocator())
}

func TestLoader_Load(t *testing.T) {
	opener := memory.NewOpener()
	wb := memory.NewWorkbook(memory.Sheet{Name: "Datos", Rows: [][]string{
		{"Ministerio"},
		{"PROVINCIA", "FECHA INFRACCION"},
		{"GUAYAS", "2024-01-01"},
		{"AZUAY", "2024-02-01"},
	}})
	opener.Add("/data/h.xlsx", wb)

	res, err := newTestLoader(opener).Load(context.Background(), domain.Source{Kind: domain.SourceHistorical, Path: "/data/h.xlsx"})

	require.NoError(t, err)
	assert.True(t, res.Located())
	assert.Equal(t, &domain.TableLocation{Sheet: "Datos", HeaderRow: 1}, res.Location)
	assert.Equal(t, 2, res.Table.Len())
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 1, wb.Closes())
}

func TestLoader_Load_RecoverableFailures(t *testing.T) {
	opener := memory.NewOpener()
	opener.Fail("/data/corrupt.xlsx", errors.New("zip: not a valid zip file"))
	opener.Add("/data/notable.xlsx", memory.NewWorkbook(memory.Sheet{Name: "S", Rows: [][]string{{"x"}}}))

	tests := []struct {
		name    string
		path    string
		warning string
	}{
		{"missing", "/data/missing.xlsx", "file not found"},
		{"corrupt", "/data/corrupt.xlsx", "cannot open workbook"},
		{"no table", "/data/notable.xlsx", domain.ErrTableNotFound.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestLoader(opener).Load(context.Background(), domain.Source{Kind: domain.SourceIncremental, Path: tt.path})

			require.NoError(t, err)
			assert.False(t, res.Located())
			require.NotNil(t, res.Table)
			assert.Zero(t, res.Table.Len())
			require.Len(t, res.Warnings, 1)
			assert.Contains(t, res.Warnings[0], tt.warning)
			assert.Contains(t, res.Warnings[0], "incremental source")
		})
	}
}

func TestLoader_Load_RecordsSkippedSheets(t *testing.T) {
	opener := memory.NewOpener()
	wb := memory.NewWorkbook(
		memory.Sheet{Name: "2024", Rows: [][]string{{"PROVINCIA", "FECHA"}, {"GUAYAS", "2024-01-01"}}},
		memory.Sheet{Name: "2025", Rows: [][]string{{"PROVINCIA", "FECHA"}, {"AZUAY", "2025-01-01"}}},
	)
	wb.BreakSheet("2024", errors.New("corrupt xml"))
	opener.Add("/data/h.xlsx", wb)

	res, err := newTestLoader(opener).Load(context.Background(), domain.Source{Kind: domain.SourceHistorical, Path: "/data/h.xlsx"})

	require.NoError(t, err)
	assert.True(t, res.Located())
	assert.Equal(t, "2025", res.Location.Sheet)
	assert.Equal(t, 1, res.Table.Len())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], `skipped sheet "2024"`)
	assert.Contains(t, res.Warnings[0], "historical source")
}

func TestLoader_Load_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestLoader(memory.NewOpener()).Load(ctx, domain.Source{Path: "x"})

	assert.ErrorIs(t, err, context.Canceled)
}
