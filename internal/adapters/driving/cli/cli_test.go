package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flagDir, flagConfig, flagVerbose = "", "", false
	runVerify, inspectFile = false, ""

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeXLSX(t *testing.T, path, sheet string, rows [][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}
	require.NoError(t, f.SaveAs(path))
}

// workdir creates a directory with a historical and an incremental extract.
func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeXLSX(t, filepath.Join(dir, domain.DefaultSettings().Sources.Historical), "Datos", [][]any{
		{"Ministerio del Interior"},
		{"Provincia", "Cantón", "Fecha Infracción", "Edad", "Coordenada X", "Coordenada Y"},
		{"Guayas", "Durán", "2024-03-09", 34, "-79,8", "-2,1"},
		{"Guayas", "Duran", "2023-05-01", "N/D", 0, 0},
	})
	writeXLSX(t, filepath.Join(dir, "mdi_homicidios_2025_enero.xlsx"), "Enero", [][]any{
		{"PROVINCIA", "CANTON", "FECHA INFRACCION", "EDAD"},
		{"AZUAY", "CUENCA", "2025-01-10", 19},
	})
	writeXLSX(t, filepath.Join(dir, "mdi_homicidios_2025_febrero.xlsx"), "Febrero", [][]any{
		{"PROVINCIA", "CANTON", "FECHA INFRACCION", "EDAD"},
		{"AZUAY", "CUENCA", "2025-01-10", 19},
		{"EL ORO", "MACHALA", "2025-02-02", 40},
	})
	return dir
}

func TestRootCmd_HasCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "consolidate", "clean", "verify", "coords", "cantons", "settings", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRunCmd_WritesOutputsAndVerifies(t *testing.T) {
	dir := workdir(t)

	out, err := execute(t, "run", "--dir", dir, "--verify")
	require.NoError(t, err)

	assert.Contains(t, out, "mdi_homicidios_2025_febrero.xlsx")
	assert.Contains(t, out, "Consolidated: 4 rows")
	assert.Contains(t, out, "Normalised:   4 rows")
	assert.Contains(t, out, "Delta:    +0 (tolerance 50) OK")
	assert.FileExists(t, filepath.Join(dir, "homicidios_consolidado.csv"))
	assert.FileExists(t, filepath.Join(dir, "homicidios_clean.csv"))
}

func TestConsolidateAndCleanCmds(t *testing.T) {
	dir := workdir(t)

	out, err := execute(t, "consolidate", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Consolidated: 4 rows")
	assert.NoFileExists(t, filepath.Join(dir, "homicidios_clean.csv"))

	out, err = execute(t, "clean", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Normalised:   4 rows")
	assert.FileExists(t, filepath.Join(dir, "homicidios_clean.csv"))
}

func TestRunCmd_NoIncrementalFails(t *testing.T) {
	_, err := execute(t, "run", "--dir", t.TempDir())

	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestVerifyCmd_WithoutCleanFileFails(t *testing.T) {
	dir := workdir(t)

	_, err := execute(t, "verify", "--dir", dir)

	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestInspectCmds(t *testing.T) {
	dir := workdir(t)
	_, err := execute(t, "run", "--dir", dir)
	require.NoError(t, err)

	out, err := execute(t, "coords", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Coordinate completeness")
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "100.0%")

	out, err = execute(t, "cantons", "guayas", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "DURAN")
	assert.Contains(t, out, "Rows")
	assert.Contains(t, out, "Cantons: 1  Rows: 2", "Durán and Duran fold into one canton")

	out, err = execute(t, "cantons", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No conflicting canton spellings.")
}

func TestCantonsCmd_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mixed.csv")
	content := "provincia,canton,anio\nGUAYAS,DURAN,2024\nGUAYAS,Durán,2024\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := execute(t, "cantons", "--dir", dir, "--file", path)

	require.NoError(t, err)
	assert.Contains(t, out, "DURAN | Durán")
}

func TestSettingsCmds(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "custom.toml")

	out, err := execute(t, "settings", "init", "--config", configFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+configFile)
	assert.FileExists(t, configFile)

	out, err = execute(t, "settings", "--config", configFile)
	require.NoError(t, err)
	assert.Contains(t, out, "*2025*.xlsx")
	assert.Contains(t, out, "3 entries")
}

func TestSettingsCmd_InvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "homicide-etl.toml")
	content := "[aliases.canton]\n\"A\" = \"B\"\n\"B\" = \"C\"\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	_, err := execute(t, "settings", "--dir", dir)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStylesFor_NonTerminalIsPlain(t *testing.T) {
	styles := stylesFor(new(bytes.Buffer))

	assert.Equal(t, "text", styles.Title.Render("text"))
}
