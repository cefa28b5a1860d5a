package correlate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SanctionKind classifies how a raw sanctions value was interpreted.
type SanctionKind string

const (
	SanctionNone    SanctionKind = "none"
	SanctionDays    SanctionKind = "days"
	SanctionExpired SanctionKind = "expired"
	SanctionNote    SanctionKind = "note"
)

// SanctionStatus is the evaluated form of a sanctions field.
type SanctionStatus struct {
	Kind          SanctionKind
	DaysRemaining int
	Note          string
}

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// EvaluateSanction interprets the sanctions string. Historical data entry
// mixed three encodings in one field, so resolution tries them in order: an
// embedded ISO date (future dates report whole days remaining, past dates
// report expired), a literal day count, and finally free text kept as a note.
// Blank input means no sanction.
func EvaluateSanction(raw string, now time.Time) SanctionStatus {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SanctionStatus{Kind: SanctionNone}
	}

	if match := isoDatePattern.FindString(trimmed); match != "" {
		if until, err := time.Parse("2006-01-02", match); err == nil {
			remaining := until.Sub(now)
			if remaining <= 0 {
				return SanctionStatus{Kind: SanctionExpired, Note: trimmed}
			}
			days := int(remaining / (24 * time.Hour))
			if remaining%(24*time.Hour) != 0 {
				days++
			}
			return SanctionStatus{Kind: SanctionDays, DaysRemaining: days, Note: trimmed}
		}
	}

	if days, err := strconv.Atoi(trimmed); err == nil {
		return SanctionStatus{Kind: SanctionDays, DaysRemaining: days, Note: trimmed}
	}

	return SanctionStatus{Kind: SanctionNote, Note: trimmed}
}
