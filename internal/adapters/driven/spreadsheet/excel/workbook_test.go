package excel

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves sheets (in order) to a new .xlsx file.
func writeWorkbook(t *testing.T, sheets map[string][][]any, order ...string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestOpener_Open_ReadsSheetsInOrder(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Notas": {{"Fuente: Ministerio"}},
		"Datos": {
			{"Reporte"},
			{"PROVINCIA", "CANTON", "FECHA INFRACCION"},
			{"GUAYAS", "DURAN", "2024-03-09"},
		},
	}, "Notas", "Datos")

	wb, err := NewOpener().Open(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Notas", "Datos"}, wb.SheetNames())

	rows, err := wb.Rows("Datos", 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"PROVINCIA", "CANTON", "FECHA INFRACCION"}, rows[1])
	assert.Equal(t, []string{"GUAYAS", "DURAN", "2024-03-09"}, rows[2])
}

func TestWorkbook_Rows_Limit(t *testing.T) {
	data := make([][]any, 0, 10)
	for i := 0; i < 10; i++ {
		data = append(data, []any{i})
	}
	path := writeWorkbook(t, map[string][][]any{"S": data}, "S")

	wb, err := NewOpener().Open(path)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.Rows("S", 4)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, []string{"0"}, rows[0])
}

func TestWorkbook_Rows_RawNumbers(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{"S": {{"EDAD", "COORDENADA_X"}, {34, -78.5}}}, "S")

	wb, err := NewOpener().Open(path)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.Rows("S", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"34", "-78.5"}, rows[1])
}

func TestWorkbook_Rows_UnknownSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{"S": {{"x"}}}, "S")

	wb, err := NewOpener().Open(path)
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.Rows("missing", 0)
	assert.Error(t, err)
}

func TestOpener_Open_MissingFile(t *testing.T) {
	_, err := NewOpener().Open(filepath.Join(t.TempDir(), "none.xlsx"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOpener_Open_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := NewOpener().Open(path)

	assert.Error(t, err)
}
