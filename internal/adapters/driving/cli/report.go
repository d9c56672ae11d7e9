package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driving"
)

// reporter renders results as lipgloss tables.
type reporter struct {
	w      io.Writer
	styles *Styles
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w, styles: stylesFor(w)}
}

func (r *reporter) title(s string) {
	fmt.Fprintln(r.w, r.styles.Title.Render(s))
}

func (r *reporter) line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *reporter) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Header
			}
			return r.styles.Cell
		})
	fmt.Fprintln(r.w, t.Render())
}

func (r *reporter) warnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(r.w, r.styles.Warning.Render("warning: "+w))
	}
}

func sourceRow(label string, s driving.SourceResult) []string {
	sheet, header := "-", "-"
	if s.Location != nil {
		sheet = s.Location.Sheet
		header = strconv.Itoa(s.Location.HeaderRow)
	}
	name := s.Source.Name()
	if s.Source.Path == "" {
		name = "-"
	}
	return []string{label, name, sheet, header, strconv.Itoa(s.Rows)}
}

// renderRun prints a pipeline run summary.
func (r *reporter) renderRun(res *driving.RunResult) {
	r.title("Run " + res.RunID)
	if res.Historical.Source.Path != "" || res.Incremental.Source.Path != "" {
		r.table(
			[]string{"Source", "File", "Sheet", "Header row", "Rows"},
			[][]string{
				sourceRow("historical", res.Historical),
				sourceRow("incremental", res.Incremental),
			},
		)
	}
	r.warnings(res.Warnings)
	if res.ConsolidatedPath != "" {
		r.line("Consolidated: %d rows -> %s", res.ConsolidatedRows, res.ConsolidatedPath)
	}
	if res.CleanPath != "" {
		r.line("Normalised:   %d rows -> %s", res.OutputRows, res.CleanPath)
	}
}

// renderVerification prints the integrity report.
func (r *reporter) renderVerification(rep *domain.VerificationReport) {
	r.title("Raw sources")
	var rows [][]string
	for _, src := range rep.Sources {
		name := src.Source.Name()
		if src.Source.Path == "" {
			name = string(src.Source.Kind)
		}
		if src.Warning != "" {
			rows = append(rows, []string{name, "-", "-", "0", src.Warning})
			continue
		}
		for _, sheet := range src.Sheets {
			rows = append(rows, []string{name, sheet.Sheet, strconv.Itoa(sheet.HeaderRow), strconv.Itoa(sheet.Rows), ""})
		}
	}
	r.table([]string{"File", "Sheet", "Header row", "Valid rows", "Note"}, rows)

	r.title("Rows per year")
	r.renderYears(rep.Years, rep.UndatedRows)

	r.title("Coordinate completeness")
	r.renderCoordinates(rep.Coordinates)

	r.title("Reconciliation")
	r.line("Expected: %d", rep.ExpectedRows)
	r.line("Actual:   %d", rep.ActualRows)
	delta := fmt.Sprintf("Delta:    %+d (tolerance %d)", rep.Delta(), rep.Tolerance)
	if rep.Acceptable() {
		r.line("%s", r.styles.Success.Render(delta+" OK"))
	} else {
		r.line("%s", r.styles.Error.Render(delta+" DISCREPANCY"))
	}
}

func (r *reporter) renderYears(years []domain.YearCount, undated int) {
	rows := make([][]string, 0, len(years)+1)
	total := undated
	for _, y := range years {
		rows = append(rows, []string{strconv.Itoa(y.Year), strconv.Itoa(y.Count)})
		total += y.Count
	}
	if undated > 0 {
		rows = append(rows, []string{"undated", strconv.Itoa(undated)})
	}
	rows = append(rows, []string{"total", strconv.Itoa(total)})
	r.table([]string{"Year", "Rows"}, rows)
}

func (r *reporter) renderCoordinates(stats []domain.CoordinateStat) {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			strconv.Itoa(s.Total),
			strconv.Itoa(s.WithCoords),
			fmt.Sprintf("%.1f%%", s.Percent()),
		})
	}
	r.table([]string{"Year", "Rows", "With coordinates", "Complete"}, rows)
}

func (r *reporter) renderCantons(cantons []domain.CantonCount) {
	rows := make([][]string, len(cantons))
	total := 0
	for i, c := range cantons {
		rows[i] = []string{c.Name, strconv.Itoa(c.Rows)}
		total += c.Rows
	}
	r.table([]string{"Canton", "Rows"}, rows)
	r.line("Cantons: %d  Rows: %d", len(cantons), total)
}

func (r *reporter) renderConflicts(conflicts []domain.CantonConflict) {
	if len(conflicts) == 0 {
		r.line("%s", r.styles.Success.Render("No conflicting canton spellings."))
		return
	}
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{c.Province, strings.Join(c.Spellings, " | ")})
	}
	r.table([]string{"Province", "Spellings"}, rows)
	r.line("%s", r.styles.Muted.Render("Add an entry under [aliases.canton] to merge a pair."))
}

func (r *reporter) renderSettings(s domain.Settings, path string) {
	r.title("Settings (" + path + ")")
	r.table([]string{"Key", "Value"}, [][]string{
		{"sources.dir", s.Sources.Dir},
		{"sources.historical", s.Sources.Historical},
		{"sources.incremental_pattern", s.Sources.IncrementalPattern},
		{"output.consolidated", s.Output.Consolidated},
		{"output.clean", s.Output.Clean},
		{"locator.primary", s.Locator.Primary},
		{"locator.any_of", strings.Join(s.Locator.AnyOf, ", ")},
		{"normalise.required", strings.Join(s.Normalise.Required, ", ")},
		{"verify.tolerance", strconv.Itoa(s.Verify.Tolerance)},
		{"verify.date_marker", s.Verify.DateMarker},
		{"aliases.canton", strconv.Itoa(len(s.Normalise.CantonAliases)) + " entries"},
	})
}
