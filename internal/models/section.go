package models

// SectionRecord is one active class section. The (year, name) pair should be
// unique among active sections but the source system does not enforce it, so
// duplicates must be tolerated downstream.
type SectionRecord struct {
	ID   int64  `db:"id" json:"id"`
	Year string `db:"year" json:"year"`
	Name string `db:"name" json:"name"`
}

// SectionAssignmentRecord maps a (year, section) pair to a physical room. At
// most one row is expected per pair; when duplicates appear the most recently
// saved row wins.
type SectionAssignmentRecord struct {
	ID       int64  `db:"id" json:"id"`
	Year     string `db:"year" json:"year"`
	Section  string `db:"section" json:"section"`
	Building string `db:"building" json:"building"`
	Floor    int    `db:"floor" json:"floor"`
	Room     string `db:"room" json:"room"`
}

// Located reports whether the room placement is complete. Partial data (a
// building without a room, a zero floor) counts as not assigned.
func (r SectionAssignmentRecord) Located() bool {
	return r.Building != "" && r.Floor > 0 && r.Room != ""
}
