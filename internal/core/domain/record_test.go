package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeRangeFor_Boundaries(t *testing.T) {
	tests := []struct {
		age  int
		want AgeRange
	}{
		{0, AgeChild},
		{11, AgeChild},
		{12, AgeAdolescent},
		{17, AgeAdolescent},
		{18, AgeYoungAdult},
		{29, AgeYoungAdult},
		{30, AgeAdult},
		{49, AgeAdult},
		{50, AgeOlderAdult},
		{64, AgeOlderAdult},
		{65, AgeElderly},
		{99, AgeElderly},
		{104, AgeElderly},
	}

	for _, tt := range tests {
		got, ok := AgeRangeFor(tt.age)
		require.True(t, ok, "age %d", tt.age)
		assert.Equal(t, tt.want, got, "age %d", tt.age)
	}
}

func TestAgeRangeFor_Negative(t *testing.T) {
	_, ok := AgeRangeFor(-1)
	assert.False(t, ok)
}

func TestAgeRanges_Ordered(t *testing.T) {
	assert.Equal(t, []AgeRange{
		AgeChild, AgeAdolescent, AgeYoungAdult, AgeAdult, AgeOlderAdult, AgeElderly,
	}, AgeRanges())
}

func TestRecordFromRow(t *testing.T) {
	rec := RecordFromRow(Row{
		ColDate:      "2024-03-09 00:00:00",
		ColYear:      "2024",
		ColMonth:     "3",
		ColWeekday:   "SABADO",
		ColProvince:  "GUAYAS",
		ColCanton:    "DURAN",
		ColAge:       "23",
		ColAgeRange:  "Young Adult",
		ColCoordX:    "-79.88",
		ColCoordY:    "-2.17",
		ColWeapon:    "ARMA DE FUEGO",
		ColPlaceType: "",
	})

	require.NotNil(t, rec.IncidentDate)
	assert.Equal(t, 2024, rec.IncidentDate.Year())
	require.NotNil(t, rec.Year)
	assert.Equal(t, 2024, *rec.Year)
	require.NotNil(t, rec.Month)
	assert.Equal(t, 3, *rec.Month)
	require.NotNil(t, rec.Age)
	assert.Equal(t, 23, *rec.Age)
	require.NotNil(t, rec.AgeRange)
	assert.Equal(t, AgeYoungAdult, *rec.AgeRange)
	assert.Equal(t, "GUAYAS", rec.Province)
	assert.True(t, rec.HasCoordinates())
}

func TestRecordFromRow_Nulls(t *testing.T) {
	rec := RecordFromRow(Row{ColAge: "N/D", ColYear: "", ColCoordX: "abc"})

	assert.Nil(t, rec.IncidentDate)
	assert.Nil(t, rec.Year)
	assert.Nil(t, rec.Age)
	assert.Nil(t, rec.AgeRange)
	assert.Nil(t, rec.CoordinateX)
	assert.False(t, rec.HasCoordinates())
}

func TestRecordFromRow_FloatYear(t *testing.T) {
	rec := RecordFromRow(Row{ColYear: "2023.0", ColAge: "40.5"})

	require.NotNil(t, rec.Year)
	assert.Equal(t, 2023, *rec.Year)
	assert.Nil(t, rec.Age, "fractional ages are not integers")
}

func TestCanonicalRecord_HasCoordinates_Zero(t *testing.T) {
	zero, lon := 0.0, -78.5
	tests := []struct {
		name string
		x, y *float64
	}{
		{"origin", &zero, &zero},
		{"zero x", &zero, &lon},
		{"zero y", &lon, &zero},
		{"missing y", &lon, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := CanonicalRecord{CoordinateX: tt.x, CoordinateY: tt.y}
			assert.False(t, rec.HasCoordinates())
		})
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "-78.5", FormatFloat(-78.5))
	assert.Equal(t, "2", FormatInt(2))
}
