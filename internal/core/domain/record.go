package domain

import (
	"math"
	"strconv"
	"time"
)

// Canonical column names of the normalised table.
// The names follow the source extracts, which are in Spanish.
const (
	ColDate          = "fecha_infraccion"
	ColYear          = "anio"
	ColMonth         = "mes"
	ColWeekday       = "dia_semana"
	ColProvince      = "provincia"
	ColCanton        = "canton"
	ColParish        = "parroquia"
	ColSex           = "sexo"
	ColMaritalStatus = "estado_civil"
	ColNationality   = "nacionalidad"
	ColDeathType     = "tipo_muerte"
	ColWeapon        = "arma"
	ColPlaceType     = "tipo_lugar"
	ColZone          = "zona"
	ColAge           = "edad"
	ColAgeRange      = "rango_edad"
	ColCoordX        = "coordenada_x"
	ColCoordY        = "coordenada_y"
)

// DateLayout is how normalised dates are written.
const DateLayout = "2006-01-02 15:04:05"

// UnknownLabel replaces missing or sentinel categorical values.
const UnknownLabel = "DESCONOCIDO"

// CategoricalColumns lists the free-text columns that are canonicalised.
var CategoricalColumns = []string{
	ColProvince, ColCanton, ColParish, ColSex, ColMaritalStatus,
	ColNationality, ColDeathType, ColWeapon, ColPlaceType, ColZone,
}

// AgeRange is the categorical age bucket of a victim.
type AgeRange string

// Age buckets. Bins are lower-inclusive and upper-exclusive.
const (
	AgeChild      AgeRange = "Child"       // [0, 12)
	AgeAdolescent AgeRange = "Adolescent"  // [12, 18)
	AgeYoungAdult AgeRange = "Young Adult" // [18, 30)
	AgeAdult      AgeRange = "Adult"       // [30, 50)
	AgeOlderAdult AgeRange = "Older Adult" // [50, 65)
	AgeElderly    AgeRange = "Elderly"     // [65, ...)
)

type ageBin struct {
	lower int
	label AgeRange
}

// ageBins is ordered by descending lower edge.
var ageBins = []ageBin{
	{65, AgeElderly},
	{50, AgeOlderAdult},
	{30, AgeAdult},
	{18, AgeYoungAdult},
	{12, AgeAdolescent},
	{0, AgeChild},
}

// AgeRangeFor returns the bucket for an age.
// Negative ages have no bucket.
func AgeRangeFor(age int) (AgeRange, bool) {
	for _, bin := range ageBins {
		if age >= bin.lower {
			return bin.label, true
		}
	}
	return "", false
}

// AgeRanges returns all bucket labels in ascending order.
func AgeRanges() []AgeRange {
	out := make([]AgeRange, 0, len(ageBins))
	for i := len(ageBins) - 1; i >= 0; i-- {
		out = append(out, ageBins[i].label)
	}
	return out
}

// CanonicalRecord is one normalised incident.
// Nil pointers are nulls.
type CanonicalRecord struct {
	IncidentDate *time.Time
	Year         *int
	Month        *int
	Weekday      string

	Province      string
	Canton        string
	Parish        string
	Sex           string
	MaritalStatus string
	Nationality   string
	DeathType     string
	Weapon        string
	PlaceType     string
	Zone          string

	Age      *int
	AgeRange *AgeRange

	CoordinateX *float64
	CoordinateY *float64
}

// HasCoordinates reports whether both axes are present and non-zero.
// The origin lies outside the reporting territory, so a zero on either
// axis means the location was never captured.
func (r CanonicalRecord) HasCoordinates() bool {
	return r.CoordinateX != nil && r.CoordinateY != nil &&
		*r.CoordinateX != 0 && *r.CoordinateY != 0
}

// RecordFromRow reads a row of the normalised table.
// Unparseable cells become nulls.
func RecordFromRow(row Row) CanonicalRecord {
	rec := CanonicalRecord{
		Weekday:       row[ColWeekday],
		Province:      row[ColProvince],
		Canton:        row[ColCanton],
		Parish:        row[ColParish],
		Sex:           row[ColSex],
		MaritalStatus: row[ColMaritalStatus],
		Nationality:   row[ColNationality],
		DeathType:     row[ColDeathType],
		Weapon:        row[ColWeapon],
		PlaceType:     row[ColPlaceType],
		Zone:          row[ColZone],
		Year:          parseIntCell(row[ColYear]),
		Month:         parseIntCell(row[ColMonth]),
		Age:           parseIntCell(row[ColAge]),
		CoordinateX:   parseFloatCell(row[ColCoordX]),
		CoordinateY:   parseFloatCell(row[ColCoordY]),
	}
	if v := row[ColDate]; v != "" {
		if t, err := time.Parse(DateLayout, v); err == nil {
			rec.IncidentDate = &t
		}
	}
	if v := row[ColAgeRange]; v != "" {
		r := AgeRange(v)
		rec.AgeRange = &r
	}
	return rec
}

// FormatInt renders an integer cell.
func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// FormatFloat renders a float cell without a trailing exponent.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseIntCell(s string) *int {
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	return &n
}

func parseFloatCell(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
