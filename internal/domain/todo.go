package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Domain entity: business object.
// Does not depend on Gin, Postgres, Redis.
type Todo struct {
	ID          int64
	Name        string
	Description string
	Done        bool
	DueDate     *time.Time
	Tag         Tag
	Priority    Priority

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Tag groups todos on the dashboard sidebar.
type Tag string

const (
	TagWork     Tag = "Work"
	TagPersonal Tag = "Personal"
	TagHome     Tag = "Home"
	TagHealth   Tag = "Health"
)

// Tags lists every valid tag in display order.
var Tags = []Tag{TagWork, TagPersonal, TagHome, TagHealth}

func (t Tag) Valid() bool {
	switch t {
	case TagWork, TagPersonal, TagHome, TagHealth:
		return true
	}
	return false
}

// ParseTag accepts any letter case ("work", "WORK") and returns the canonical tag.
func ParseTag(s string) (Tag, bool) {
	t := Tag(cases.Title(language.English).String(strings.TrimSpace(s)))
	return t, t.Valid()
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func ParsePriority(s string) (Priority, bool) {
	p := Priority(cases.Lower(language.English).String(strings.TrimSpace(s)))
	return p, p.Valid()
}

// Filter is the dashboard view selection. It is transient and never stored.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterDueToday  Filter = "dueToday"
	FilterCompleted Filter = "completed"
)

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterDueToday, FilterCompleted:
		return true
	}
	return false
}

// ParseFilter maps s to a Filter. Empty or unknown values fall back to FilterAll
// with ok=false; callers are expected to treat that as "show everything".
func ParseFilter(s string) (f Filter, ok bool) {
	s = strings.TrimSpace(s)
	for _, c := range []Filter{FilterAll, FilterDueToday, FilterCompleted} {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return FilterAll, false
}
