package domain

// SheetCount is the recount for one located sheet.
type SheetCount struct {
	Sheet     string
	HeaderRow int
	Rows      int
}

// SourceCount is the recount for one raw source.
type SourceCount struct {
	Source Source
	Sheets []SheetCount

	// Warning is set when the source could not be recounted.
	Warning string
}

// Total sums the sheet counts.
func (c SourceCount) Total() int {
	total := 0
	for _, s := range c.Sheets {
		total += s.Rows
	}
	return total
}

// YearCount is the number of normalised rows for one year.
type YearCount struct {
	Year  int
	Count int
}

// CoordinateStat is the coordinate completeness for one year.
type CoordinateStat struct {
	Year       int
	Total      int
	WithCoords int
}

// Percent returns the share of rows carrying coordinates, 0-100.
func (s CoordinateStat) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.WithCoords) / float64(s.Total) * 100
}

// CantonCount is a distinct canton and the number of rows carrying it.
type CantonCount struct {
	Name string
	Rows int
}

// CantonConflict is a set of canton spellings in one province that
// collapse to the same key once accents are removed.
type CantonConflict struct {
	Province  string
	Key       string
	Spellings []string
}

// VerificationReport is the outcome of the integrity check.
// It is diagnostic only and never blocks a run.
type VerificationReport struct {
	Sources []SourceCount

	ExpectedRows int
	ActualRows   int
	Tolerance    int

	// UndatedRows counts output rows without a year.
	UndatedRows int

	Years       []YearCount
	Coordinates []CoordinateStat
}

// Delta returns actual minus expected rows.
func (r *VerificationReport) Delta() int {
	return r.ActualRows - r.ExpectedRows
}

// Acceptable reports whether the delta lies strictly within the tolerance.
// An exact match is always acceptable, so a zero tolerance demands one.
func (r *VerificationReport) Acceptable() bool {
	d := r.Delta()
	if d < 0 {
		d = -d
	}
	return d == 0 || d < r.Tolerance
}
