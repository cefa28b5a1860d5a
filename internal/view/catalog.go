package view

import (
	"strings"

	"github.com/noah-isme/campus-portal-api/internal/correlate"
)

// Catalog is the static course -> majors table, injected once at wiring time
// instead of being duplicated across dashboard callers. It carries no engine
// state.
type Catalog struct {
	courseMajors map[string][]string
}

// NewCatalog builds a catalog from a course -> majors table. Course keys are
// normalized through the department alias table.
func NewCatalog(courseMajors map[string][]string) *Catalog {
	normalized := make(map[string][]string, len(courseMajors))
	for course, majors := range courseMajors {
		key := correlate.NormalizeDepartment(course)
		copied := make([]string, len(majors))
		copy(copied, majors)
		normalized[key] = copied
	}
	return &Catalog{courseMajors: normalized}
}

// DefaultCatalog returns the course table the portal ships with.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[string][]string{
		"BSED":  {"English", "Filipino", "Mathematics", "Science", "Social Studies"},
		"BEED":  {"General Education"},
		"BSIT":  {},
		"BSCS":  {},
		"BSHM":  {},
		"BSBA":  {"Marketing Management", "Financial Management"},
		"BSCRI": {},
	})
}

// Majors lists the majors offered under a course, or nil when the course is
// unknown.
func (c *Catalog) Majors(course string) []string {
	if c == nil {
		return nil
	}
	return c.courseMajors[correlate.NormalizeDepartment(course)]
}

// HasMajor reports whether major is offered under course. Courses without
// majors accept only an empty or "none" major.
func (c *Catalog) HasMajor(course, major string) bool {
	if c == nil {
		return false
	}
	majors, ok := c.courseMajors[correlate.NormalizeDepartment(course)]
	if !ok {
		return false
	}
	trimmed := strings.TrimSpace(major)
	if len(majors) == 0 {
		return trimmed == "" || strings.EqualFold(trimmed, "none")
	}
	for _, m := range majors {
		if strings.EqualFold(m, trimmed) {
			return true
		}
	}
	return false
}

// Courses returns the known course codes.
func (c *Catalog) Courses() []string {
	if c == nil {
		return nil
	}
	courses := make([]string, 0, len(c.courseMajors))
	for course := range c.courseMajors {
		courses = append(courses, course)
	}
	return courses
}
