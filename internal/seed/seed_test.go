package seed

import (
	"testing"
	"time"

	dom "TodoBoard/internal/domain"
	"TodoBoard/internal/query"
)

func TestDemoCoversEveryView(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	todos := Demo(now)

	for _, f := range []dom.Filter{dom.FilterAll, dom.FilterDueToday, dom.FilterCompleted} {
		if len(query.FilterTodos(todos, f, now)) == 0 {
			t.Errorf("view %s is empty", f)
		}
	}
	for _, todo := range todos {
		if todo.Name == "" || !todo.Tag.Valid() || !todo.Priority.Valid() {
			t.Errorf("invalid demo todo: %+v", todo)
		}
	}
	if got := query.CountTodosDueToday(todos, now); got != 2 {
		t.Errorf("Expected 2 demo todos due today, got %d", got)
	}
}

func TestDemoMonthBoundary(t *testing.T) {
	now := time.Date(2026, 10, 31, 23, 0, 0, 0, time.UTC)
	todos := Demo(now)
	// "tomorrow" rolls into November and must not count as today.
	if got := query.CountTodosDueToday(todos, now); got != 2 {
		t.Errorf("Expected 2 demo todos due today, got %d", got)
	}
}
