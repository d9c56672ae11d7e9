// Package dates parses incident dates leniently.
package dates

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// layouts are tried in order. Slash and dash dates are day-first, as the
// extracts are produced in a day-first locale.
var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
}

// Excel stores dates as days since 1899-12-30. Only serials within a
// plausible incident range are accepted so a bare year or a count is not
// misread as a date.
const (
	minSerial = 20000 // 1954-10-03
	maxSerial = 80000 // 2119-01-11
)

var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Parse returns the date in s, or false when it is not a recognisable date.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return parseSerial(s)
}

func parseSerial(s string) (time.Time, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < minSerial || f > maxSerial {
		return time.Time{}, false
	}
	days := math.Floor(f)
	secs := math.Round((f - days) * 86400)
	t := excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
	return t, true
}

var weekdays = [...]string{
	time.Sunday:    "DOMINGO",
	time.Monday:    "LUNES",
	time.Tuesday:   "MARTES",
	time.Wednesday: "MIERCOLES",
	time.Thursday:  "JUEVES",
	time.Friday:    "VIERNES",
	time.Saturday:  "SABADO",
}

// Weekday returns the uppercase, accent-free Spanish day name.
func Weekday(t time.Time) string {
	return weekdays[t.Weekday()]
}
