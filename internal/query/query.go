// Package query selects todos for the dashboard views.
//
// All functions are pure: they read their inputs, never modify them and never read
// the wall clock. The caller passes "now", and its location defines what "today" is.
package query

import (
	"time"

	dom "TodoBoard/internal/domain"
)

// FilterTodos returns the todos visible under filter f.
// FilterAll and unknown filters return todos as is.
func FilterTodos(todos []dom.Todo, f dom.Filter, now time.Time) []dom.Todo {
	switch f {
	case dom.FilterDueToday:
		return selectTodos(todos, func(t dom.Todo) bool { return IsDueToday(t, now) })
	case dom.FilterCompleted:
		return selectTodos(todos, func(t dom.Todo) bool { return t.Done })
	default:
		return todos
	}
}

// CountTodosDueToday counts open todos due on now's calendar day.
func CountTodosDueToday(todos []dom.Todo, now time.Time) int {
	n := 0
	for i := range todos {
		if IsDueToday(todos[i], now) {
			n++
		}
	}
	return n
}

// IsDueToday reports whether t is not done and due on the same calendar day as now.
// A missing or zero due date never matches.
func IsDueToday(t dom.Todo, now time.Time) bool {
	if t.Done || t.DueDate == nil || t.DueDate.IsZero() {
		return false
	}
	return SameDay(*t.DueDate, now)
}

// SameDay compares year, month and day of a and b, both read in b's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Summary holds the dashboard card counters.
type Summary struct {
	Total     int
	DueToday  int
	Completed int
	Overdue   int
}

// Summarize computes all dashboard counters in one pass.
// Overdue means open and due before the start of now's day.
func Summarize(todos []dom.Todo, now time.Time) Summary {
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	s := Summary{Total: len(todos)}
	for i := range todos {
		t := todos[i]
		switch {
		case t.Done:
			s.Completed++
		case IsDueToday(t, now):
			s.DueToday++
		case t.DueDate != nil && !t.DueDate.IsZero() && t.DueDate.Before(startOfDay):
			s.Overdue++
		}
	}
	return s
}

func selectTodos(todos []dom.Todo, keep func(dom.Todo) bool) []dom.Todo {
	out := make([]dom.Todo, 0, len(todos))
	for i := range todos {
		if keep(todos[i]) {
			out = append(out, todos[i])
		}
	}
	return out
}
