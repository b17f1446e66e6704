package powerschool

import (
	"strings"

	"powergrades/lib/textutil"
)

// Filter narrows a course list by chained predicates. Each predicate
// returns a new filter so lookups compose without mutating the session's
// course slice.
type Filter struct {
	courses []Course
}

func NewFilter(courses []Course) Filter {
	return Filter{courses: courses}
}

func (f Filter) where(keep func(Course) bool) Filter {
	var matched []Course
	for _, course := range f.courses {
		if keep(course) {
			matched = append(matched, course)
		}
	}
	return Filter{courses: matched}
}

func (f Filter) Name(name string) Filter {
	return f.where(func(c Course) bool {
		return strings.EqualFold(c.Name, name)
	})
}

// NameContains matches on normalized names, so spacing and case
// differences in the portal's course titles do not matter.
func (f Filter) NameContains(fragment string) Filter {
	matchers := []string{textutil.NormalizeName(fragment)}
	return f.where(func(c Course) bool {
		return textutil.MatchName(c.Name, matchers)
	})
}

func (f Filter) Frequency(frequency string) Filter {
	return f.where(func(c Course) bool {
		return strings.EqualFold(c.Frequency, frequency)
	})
}

func (f Filter) FrequencyContains(fragment string) Filter {
	fragment = strings.ToLower(fragment)
	return f.where(func(c Course) bool {
		return strings.Contains(strings.ToLower(c.Frequency), fragment)
	})
}

func (f Filter) TeacherLastName(lastName string) Filter {
	return f.where(func(c Course) bool {
		return strings.EqualFold(c.TeacherLastName, lastName)
	})
}

func (f Filter) Results() []Course {
	return f.courses
}

// First returns the first remaining course, or false when the filter
// matched nothing.
func (f Filter) First() (Course, bool) {
	if len(f.courses) == 0 {
		return Course{}, false
	}
	return f.courses[0], true
}
