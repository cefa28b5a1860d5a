package correlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoreRow struct {
	Semester string
	Prelim   *float64
	Midterm  *float64
	Finals   *float64
}

func ptr(v float64) *float64 { return &v }

func scoreField(get func(scoreRow) *float64) FieldFunc[scoreRow] {
	return func(r scoreRow) (float64, bool) {
		if v := get(r); v != nil {
			return *v, true
		}
		return 0, false
	}
}

func scoreFields() []FieldFunc[scoreRow] {
	return []FieldFunc[scoreRow]{
		scoreField(func(r scoreRow) *float64 { return r.Prelim }),
		scoreField(func(r scoreRow) *float64 { return r.Midterm }),
		scoreField(func(r scoreRow) *float64 { return r.Finals }),
	}
}

func TestGroupByPreservesOrder(t *testing.T) {
	rows := []scoreRow{
		{Semester: "Second Semester"},
		{Semester: "First Semester"},
		{Semester: "Second Semester"},
	}
	grouping := GroupBy(rows, func(r scoreRow) (string, bool) { return r.Semester, true })

	assert.Equal(t, []string{"Second Semester", "First Semester"}, grouping.Keys)
	assert.Len(t, grouping.Groups["Second Semester"], 2)
	assert.Zero(t, grouping.Skipped)
}

func TestGroupByCountsSkipped(t *testing.T) {
	rows := []scoreRow{{Semester: "x"}, {Semester: ""}}
	grouping := GroupBy(rows, func(r scoreRow) (string, bool) { return r.Semester, r.Semester != "" })
	assert.Equal(t, 1, grouping.Skipped)
	assert.Equal(t, []string{"x"}, grouping.Keys)
}

func TestReduceNumericAverageTwoLevelMean(t *testing.T) {
	// {80,85} averages 82.5 and {90} averages 90; the mean of the two
	// per-row means is 86.25, not the flat mean of all three scores.
	rows := []scoreRow{
		{Prelim: ptr(80), Midterm: ptr(85)},
		{Finals: ptr(90)},
	}
	avg, ok := ReduceNumericAverage(rows, scoreFields()...)
	require.True(t, ok)
	assert.InDelta(t, 86.25, avg, 1e-9)
}

func TestReduceNumericAverageNoDataIsNotZero(t *testing.T) {
	rows := []scoreRow{{}, {}}
	_, ok := ReduceNumericAverage(rows, scoreFields()...)
	assert.False(t, ok, "empty contribution set reports no data, never zero")

	_, ok = ReduceNumericAverage(nil, scoreFields()...)
	assert.False(t, ok)
}

func TestReduceNumericAverageZeroIsARealScore(t *testing.T) {
	rows := []scoreRow{{Prelim: ptr(0)}}
	avg, ok := ReduceNumericAverage(rows, scoreFields()...)
	require.True(t, ok)
	assert.Zero(t, avg)
}

func TestReduceNumericAverageIgnoresBlankRecords(t *testing.T) {
	rows := []scoreRow{
		{Prelim: ptr(100)},
		{}, // recorded but never graded, excluded from the denominator
	}
	avg, ok := ReduceNumericAverage(rows, scoreFields()...)
	require.True(t, ok)
	assert.InDelta(t, 100, avg, 1e-9)
}

func TestCountBy(t *testing.T) {
	rows := []scoreRow{
		{Semester: "a"}, {Semester: "a"}, {Semester: "b"}, {Semester: ""},
	}
	counts := CountBy(rows, func(r scoreRow) (string, bool) { return r.Semester, r.Semester != "" })
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, counts)
}
