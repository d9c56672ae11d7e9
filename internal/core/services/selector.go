package services

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/logger"
)

// months maps Spanish month names to their number.
var months = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4, "mayo": 5, "junio": 6,
	"julio": 7, "agosto": 8, "septiembre": 9, "octubre": 10, "noviembre": 11, "diciembre": 12,
}

// SourceSelector picks the most recent incremental extract in a directory.
type SourceSelector struct {
	fsys       fs.FS
	dir        string
	pattern    string
	historical string
}

// NewSourceSelector creates a selector over dir. fsys must be rooted at dir;
// dir is only used to build the returned paths.
func NewSourceSelector(fsys fs.FS, dir string, settings domain.SourceSettings) *SourceSelector {
	return &SourceSelector{
		fsys:       fsys,
		dir:        dir,
		pattern:    settings.IncrementalPattern,
		historical: settings.Historical,
	}
}

// Historical returns the historical source. Its presence is not checked here;
// a missing historical file is a recoverable loader condition.
func (s *SourceSelector) Historical() domain.Source {
	return domain.Source{
		Kind: domain.SourceHistorical,
		Path: filepath.Join(s.dir, s.historical),
	}
}

// Candidates returns the files matching the incremental pattern, excluding
// the historical file and editor lock files, in directory order.
func (s *SourceSelector) Candidates() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read source directory %s: %w", s.dir, err)
	}

	pattern := strings.ToLower(s.pattern)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") || strings.EqualFold(name, s.historical) {
			continue
		}
		ok, err := path.Match(pattern, strings.ToLower(name))
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", domain.ErrInvalidInput, s.pattern, err)
		}
		if ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Select returns the candidate with the latest reporting period.
// Ties go to the lexically greatest filename.
func (s *SourceSelector) Select() (domain.Source, error) {
	names, err := s.Candidates()
	if err != nil {
		return domain.Source{}, err
	}
	if len(names) == 0 {
		return domain.Source{}, fmt.Errorf("%w: no file in %s matches %q", domain.ErrSourceNotFound, s.dir, s.pattern)
	}

	best, bestPeriod := "", -1
	for _, name := range names {
		period := PeriodFromFilename(name)
		logger.Debug("Candidate %s: period %d", name, period)
		if period > bestPeriod || (period == bestPeriod && name > best) {
			best, bestPeriod = name, period
		}
	}

	return domain.Source{
		Kind:   domain.SourceIncremental,
		Path:   filepath.Join(s.dir, best),
		Period: bestPeriod,
	}, nil
}

// PeriodFromFilename decodes the reporting month embedded in a filename.
// Month names take precedence over numbers; with several month names (a
// range such as "enero_noviembre") the latest month is the period. Without
// a month name the last numeric token in 1-12 is used. Zero means no period.
func PeriodFromFilename(name string) int {
	base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	tokens := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})

	named := 0
	for _, tok := range tokens {
		if m, ok := months[tok]; ok && m > named {
			named = m
		}
	}
	if named > 0 {
		return named
	}

	numbered := 0
	for _, tok := range tokens {
		if n, err := strconv.Atoi(tok); err == nil && n >= 1 && n <= 12 {
			numbered = n
		}
	}
	return numbered
}
