package query

import (
	"reflect"
	"testing"
	"time"

	dom "TodoBoard/internal/domain"
)

var berlin = mustLoad("Europe/Berlin")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, 2*60*60)
	}
	return loc
}

func at(t time.Time) *time.Time { return &t }

// now is 2026-10-16 14:30 local time.
var now = time.Date(2026, 10, 16, 14, 30, 0, 0, berlin)

func scenario() []dom.Todo {
	return []dom.Todo{
		{ID: 1, Name: "standup notes", Done: false, DueDate: at(time.Date(2026, 10, 16, 9, 0, 0, 0, berlin)), Tag: dom.TagWork, Priority: dom.PriorityHigh},
		{ID: 2, Name: "gym", Done: true, DueDate: at(time.Date(2026, 10, 16, 10, 0, 0, 0, berlin)), Tag: dom.TagHealth, Priority: dom.PriorityLow},
		{ID: 3, Name: "groceries", Done: false, DueDate: at(time.Date(2026, 10, 17, 9, 0, 0, 0, berlin)), Tag: dom.TagHome, Priority: dom.PriorityMedium},
	}
}

func ids(todos []dom.Todo) []int64 {
	out := make([]int64, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterTodos(t *testing.T) {
	tests := []struct {
		name   string
		filter dom.Filter
		want   []int64
	}{
		{"all keeps everything in order", dom.FilterAll, []int64{1, 2, 3}},
		{"due today skips done and tomorrow", dom.FilterDueToday, []int64{1}},
		{"completed", dom.FilterCompleted, []int64{2}},
		{"unknown filter fails open", dom.Filter("archived"), []int64{1, 2, 3}},
		{"empty filter fails open", dom.Filter(""), []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterTodos(scenario(), tt.filter, now))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterTodosDoesNotMutateInput(t *testing.T) {
	in := scenario()
	before := scenario()
	_ = FilterTodos(in, dom.FilterDueToday, now)
	_ = FilterTodos(in, dom.FilterCompleted, now)
	if !reflect.DeepEqual(in, before) {
		t.Fatal("input slice was modified")
	}
}

func TestFilterTodosEmpty(t *testing.T) {
	for _, f := range []dom.Filter{dom.FilterAll, dom.FilterDueToday, dom.FilterCompleted} {
		if got := FilterTodos(nil, f, now); len(got) != 0 {
			t.Errorf("%s: expected empty result, got %d items", f, len(got))
		}
	}
}

func TestCountMatchesDueTodayFilter(t *testing.T) {
	sets := [][]dom.Todo{
		nil,
		scenario(),
		append(scenario(), dom.Todo{ID: 4, DueDate: at(now.Add(time.Hour))}, dom.Todo{ID: 5}),
	}
	for i, set := range sets {
		count := CountTodosDueToday(set, now)
		filtered := len(FilterTodos(set, dom.FilterDueToday, now))
		if count != filtered {
			t.Errorf("set %d: count %d != filtered %d", i, count, filtered)
		}
	}
	if got := CountTodosDueToday(scenario(), now); got != 1 {
		t.Errorf("expected 1 todo due today, got %d", got)
	}
	if got := CountTodosDueToday([]dom.Todo{}, now); got != 0 {
		t.Errorf("expected 0 for empty input, got %d", got)
	}
}

func TestIsDueToday(t *testing.T) {
	tests := []struct {
		name string
		todo dom.Todo
		want bool
	}{
		{"start of day", dom.Todo{DueDate: at(time.Date(2026, 10, 16, 0, 0, 0, 0, berlin))}, true},
		{"last second of day", dom.Todo{DueDate: at(time.Date(2026, 10, 16, 23, 59, 59, 0, berlin))}, true},
		{"yesterday", dom.Todo{DueDate: at(time.Date(2026, 10, 15, 23, 59, 59, 0, berlin))}, false},
		{"same day other year", dom.Todo{DueDate: at(time.Date(2025, 10, 16, 12, 0, 0, 0, berlin))}, false},
		{"same day other month", dom.Todo{DueDate: at(time.Date(2026, 9, 16, 12, 0, 0, 0, berlin))}, false},
		// 22:30 UTC on the 15th is already the 16th in Berlin.
		{"utc instance read in local zone", dom.Todo{DueDate: at(time.Date(2026, 10, 15, 22, 30, 0, 0, time.UTC))}, true},
		{"done", dom.Todo{Done: true, DueDate: at(now)}, false},
		{"nil due date", dom.Todo{}, false},
		{"zero due date", dom.Todo{DueDate: at(time.Time{})}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDueToday(tt.todo, now); got != tt.want {
				t.Errorf("IsDueToday = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	todos := append(scenario(),
		dom.Todo{ID: 4, DueDate: at(time.Date(2026, 10, 10, 9, 0, 0, 0, berlin))},
		dom.Todo{ID: 5},
	)
	got := Summarize(todos, now)
	want := Summary{Total: 5, DueToday: 1, Completed: 1, Overdue: 1}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}
