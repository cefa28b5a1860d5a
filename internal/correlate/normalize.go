package correlate

import "strings"

// departmentAliases maps historical typo spellings to the canonical code.
var departmentAliases = map[string]string{
	"BSEED": "BSED",
}

var yearWords = map[string]string{
	"1": "1", "first": "1", "1st": "1", "i": "1",
	"2": "2", "second": "2", "2nd": "2", "ii": "2",
	"3": "3", "third": "3", "3rd": "3", "iii": "3",
	"4": "4", "fourth": "4", "4th": "4", "iv": "4",
}

// NormalizeYear canonicalizes a year-level value to one of "1".."4".
// Accepts bare numerals, word forms ("first".."fourth") and ordinals
// ("1st".."4th"), with or without a trailing "year" word. Values that match
// no known pattern pass through trimmed; unparseable input is data, not an
// error. Idempotent.
func NormalizeYear(v string) string {
	trimmed := strings.TrimSpace(v)
	lowered := strings.ToLower(trimmed)
	lowered = strings.TrimSuffix(lowered, "year")
	lowered = strings.TrimSpace(lowered)
	if canonical, ok := yearWords[lowered]; ok {
		return canonical
	}
	return trimmed
}

// NormalizeDepartment applies the department alias table, otherwise returns
// the value trimmed and uppercased.
func NormalizeDepartment(v string) string {
	upper := strings.ToUpper(strings.TrimSpace(v))
	if canonical, ok := departmentAliases[upper]; ok {
		return canonical
	}
	return upper
}

// NormalizeSemester folds free-text semester labels into "First Semester",
// "Second Semester" or "Other Semester".
func NormalizeSemester(v string) string {
	lowered := strings.ToLower(strings.TrimSpace(v))
	switch {
	case strings.Contains(lowered, "first") || strings.HasPrefix(lowered, "1"):
		return "First Semester"
	case strings.Contains(lowered, "second") || strings.HasPrefix(lowered, "2"):
		return "Second Semester"
	default:
		return "Other Semester"
	}
}

// SectionKey builds the composite key correlating year/section pairs across
// collections. The year half is normalized; the section name is compared
// verbatim after trimming only.
func SectionKey(year, section string) string {
	return NormalizeYear(year) + "|" + strings.TrimSpace(section)
}
