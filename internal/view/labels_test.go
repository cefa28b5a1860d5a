package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1:   "1st",
		2:   "2nd",
		3:   "3rd",
		4:   "4th",
		11:  "11th",
		12:  "12th",
		13:  "13th",
		21:  "21st",
		22:  "22nd",
		101: "101st",
		111: "111th",
	}
	for n, want := range cases {
		assert.Equal(t, want, Ordinal(n), "n=%d", n)
	}
}

func TestFormatYearLabel(t *testing.T) {
	assert.Equal(t, "1st Year", FormatYearLabel("1"))
	assert.Equal(t, "2nd Year", FormatYearLabel("second"))
	assert.Equal(t, "3rd Year", FormatYearLabel(" 3rd "))
	assert.Equal(t, "graduate", FormatYearLabel(" graduate "))
}

func TestFormatSemesterLabel(t *testing.T) {
	assert.Equal(t, "First Semester", FormatSemesterLabel("1st sem"))
	assert.Equal(t, "Other Semester", FormatSemesterLabel("midyear"))
}
