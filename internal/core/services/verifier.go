package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driving"
	"github.com/custodia-labs/homicide-etl/internal/logger"
	textnorm "github.com/custodia-labs/homicide-etl/internal/normalisers/text"
)

// Ensure VerifierService implements the interface.
var _ driving.Verifier = (*VerifierService)(nil)

// VerifierService reconciles the clean output against a fresh recount of
// the raw sources. The recount shares no state with the pipeline run.
type VerifierService struct {
	selector  *SourceSelector
	opener    driven.WorkbookOpener
	locator   *TableLocator
	store     driven.TableStore
	analytics driven.AnalyticsStore

	cleanPath  string
	tolerance  int
	dateMarker string
}

// NewVerifierService creates a verifier.
func NewVerifierService(
	selector *SourceSelector,
	opener driven.WorkbookOpener,
	locator *TableLocator,
	store driven.TableStore,
	analytics driven.AnalyticsStore,
	settings domain.Settings,
) *VerifierService {
	return &VerifierService{
		selector:   selector,
		opener:     opener,
		locator:    locator,
		store:      store,
		analytics:  analytics,
		cleanPath:  OutputPath(settings.Sources.Dir, settings.Output.Clean),
		tolerance:  settings.Verify.Tolerance,
		dateMarker: textnorm.Canonical(settings.Verify.DateMarker),
	}
}

// Verify recounts both sources and compares with the clean file.
// It fails only when the clean file cannot be read or queried.
func (v *VerifierService) Verify(ctx context.Context) (*domain.VerificationReport, error) {
	logger.Section("Verify")
	report := &domain.VerificationReport{Tolerance: v.tolerance}

	sources := []domain.Source{v.selector.Historical()}
	if inc, err := v.selector.Select(); err != nil {
		report.Sources = append(report.Sources, domain.SourceCount{
			Source:  domain.Source{Kind: domain.SourceIncremental},
			Warning: err.Error(),
		})
	} else {
		sources = append(sources, inc)
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		count := v.recount(src)
		report.ExpectedRows += count.Total()
		report.Sources = append(report.Sources, count)
	}

	clean, err := v.store.Read(ctx, v.cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read clean output: %w", err)
	}
	report.ActualRows = clean.Len()

	if err := v.analytics.Load(ctx, clean); err != nil {
		return nil, fmt.Errorf("load clean output: %w", err)
	}
	if report.Years, err = v.analytics.YearCounts(ctx); err != nil {
		return nil, err
	}
	if report.UndatedRows, err = v.analytics.UndatedCount(ctx); err != nil {
		return nil, err
	}
	if report.Coordinates, err = v.analytics.CoordinateCompleteness(ctx); err != nil {
		return nil, err
	}

	if report.Acceptable() {
		logger.Info("Row count within tolerance: expected %d, got %d", report.ExpectedRows, report.ActualRows)
	} else {
		logger.Warn("Row count discrepancy: expected %d, got %d (delta %d, tolerance %d)",
			report.ExpectedRows, report.ActualRows, report.Delta(), report.Tolerance)
	}
	return report, nil
}

// recount counts the valid rows of every located sheet in a source.
func (v *VerifierService) recount(src domain.Source) domain.SourceCount {
	count := domain.SourceCount{Source: src}

	wb, err := v.opener.Open(src.Path)
	if err != nil {
		count.Warning = fmt.Sprintf("cannot open %s: %v", src.Name(), err)
		logger.Warn("%s", count.Warning)
		return count
	}
	defer wb.Close()

	locations := v.locator.LocateAll(wb)
	if len(locations) == 0 {
		count.Warning = fmt.Sprintf("no table found in %s", src.Name())
		logger.Warn("%s", count.Warning)
		return count
	}

	for _, loc := range locations {
		rows, err := wb.Rows(loc.Sheet, 0)
		if err != nil {
			logger.Warn("Skipping sheet %q of %s: %v", loc.Sheet, src.Name(), err)
			continue
		}
		n := CountValidRows(rows, loc.HeaderRow, v.dateMarker)
		logger.Debug("%s sheet %q: %d valid rows", src.Name(), loc.Sheet, n)
		count.Sheets = append(count.Sheets, domain.SheetCount{
			Sheet:     loc.Sheet,
			HeaderRow: loc.HeaderRow,
			Rows:      n,
		})
	}
	return count
}

// CountValidRows counts data rows below the header. When a header cell
// contains dateMarker, only rows with a non-empty cell in that column count;
// otherwise every non-blank row counts.
func CountValidRows(rows [][]string, headerRow int, dateMarker string) int {
	if headerRow < 0 || headerRow >= len(rows) {
		return 0
	}

	dateCol := -1
	if dateMarker != "" {
		for i, cell := range rows[headerRow] {
			if strings.Contains(textnorm.Canonical(cell), dateMarker) {
				dateCol = i
				break
			}
		}
	}

	n := 0
	for _, row := range rows[headerRow+1:] {
		if dateCol >= 0 {
			if dateCol < len(row) && strings.TrimSpace(row[dateCol]) != "" {
				n++
			}
			continue
		}
		if !isBlankRow(row) {
			n++
		}
	}
	return n
}
