// Package seed builds the demo todo set shown on a fresh dashboard.
package seed

import (
	"time"

	dom "TodoBoard/internal/domain"
)

// Demo returns demo todos with due dates relative to now, so that every dashboard
// view (all, due today, completed) has something to show.
func Demo(now time.Time) []dom.Todo {
	y, m, d := now.Date()
	day := func(offset, hour int) *time.Time {
		t := time.Date(y, m, d+offset, hour, 0, 0, 0, now.Location())
		return &t
	}
	return []dom.Todo{
		{Name: "Finish quarterly report", Description: "Numbers for the Q3 review", DueDate: day(0, 17), Tag: dom.TagWork, Priority: dom.PriorityHigh},
		{Name: "Team standup", DueDate: day(0, 9), Done: true, Tag: dom.TagWork, Priority: dom.PriorityMedium},
		{Name: "Call mom", DueDate: day(0, 19), Tag: dom.TagPersonal, Priority: dom.PriorityMedium},
		{Name: "Fix leaking kitchen tap", Description: "Buy a new washer first", DueDate: day(1, 10), Tag: dom.TagHome, Priority: dom.PriorityLow},
		{Name: "Morning run", Description: "5 km", DueDate: day(-1, 7), Done: true, Tag: dom.TagHealth, Priority: dom.PriorityLow},
		{Name: "Book dentist appointment", DueDate: day(-2, 12), Tag: dom.TagHealth, Priority: dom.PriorityHigh},
		{Name: "Plan weekend trip", Tag: dom.TagPersonal, Priority: dom.PriorityLow},
	}
}
