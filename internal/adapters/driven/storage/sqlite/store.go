package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/homicide-etl/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.AnalyticsStore = (*Store)(nil)

// Store is an in-memory SQLite analytics store over normalised records.
type Store struct {
	db *sql.DB
}

// NewStore opens a fresh in-memory database and applies the schema.
func NewStore() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_records.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Load replaces the stored records with the table's rows.
func (s *Store) Load(ctx context.Context, table *domain.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (anio, mes, provincia, canton, edad, rango_edad, coordenada_x, coordenada_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range table.Rows {
		rec := domain.RecordFromRow(row)
		var ageRange sql.NullString
		if rec.AgeRange != nil {
			ageRange = sql.NullString{String: string(*rec.AgeRange), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			nullInt(rec.Year), nullInt(rec.Month),
			nullString(rec.Province), nullString(rec.Canton),
			nullInt(rec.Age), ageRange,
			nullFloat(rec.CoordinateX), nullFloat(rec.CoordinateY),
		)
		if err != nil {
			return fmt.Errorf("inserting record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing records: %w", err)
	}
	return nil
}

// YearCounts returns row counts per year, ascending.
func (s *Store) YearCounts(ctx context.Context) ([]domain.YearCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT anio, COUNT(*) FROM records
		WHERE anio IS NOT NULL
		GROUP BY anio
		ORDER BY anio
	`)
	if err != nil {
		return nil, fmt.Errorf("querying year counts: %w", err)
	}
	defer rows.Close()

	var out []domain.YearCount
	for rows.Next() {
		var yc domain.YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, fmt.Errorf("scanning year count: %w", err)
		}
		out = append(out, yc)
	}
	return out, rows.Err()
}

// UndatedCount returns the number of rows without a year.
func (s *Store) UndatedCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE anio IS NULL").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting undated records: %w", err)
	}
	return n, nil
}

// CoordinateCompleteness returns per-year coordinate completeness, ascending.
// A pair with a zero on either axis counts as missing.
func (s *Store) CoordinateCompleteness(ctx context.Context) ([]domain.CoordinateStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT anio,
		       COUNT(*),
		       SUM(CASE
		             WHEN coordenada_x IS NOT NULL AND coordenada_y IS NOT NULL
		              AND coordenada_x != 0 AND coordenada_y != 0
		             THEN 1 ELSE 0
		           END)
		FROM records
		WHERE anio IS NOT NULL
		GROUP BY anio
		ORDER BY anio
	`)
	if err != nil {
		return nil, fmt.Errorf("querying coordinate completeness: %w", err)
	}
	defer rows.Close()

	var out []domain.CoordinateStat
	for rows.Next() {
		var cs domain.CoordinateStat
		if err := rows.Scan(&cs.Year, &cs.Total, &cs.WithCoords); err != nil {
			return nil, fmt.Errorf("scanning coordinate stat: %w", err)
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

// Cantons returns the distinct cantons per province with row counts,
// each list sorted by name.
func (s *Store) Cantons(ctx context.Context) (map[string][]domain.CantonCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT provincia, canton, COUNT(*) FROM records
		WHERE provincia IS NOT NULL AND canton IS NOT NULL
		GROUP BY provincia, canton
		ORDER BY provincia, canton
	`)
	if err != nil {
		return nil, fmt.Errorf("querying cantons: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.CantonCount)
	for rows.Next() {
		var province string
		var cc domain.CantonCount
		if err := rows.Scan(&province, &cc.Name, &cc.Rows); err != nil {
			return nil, fmt.Errorf("scanning canton: %w", err)
		}
		out[province] = append(out[province], cc)
	}
	return out, rows.Err()
}

// nullString converts an empty string to sql.NullString.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
