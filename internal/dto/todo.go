package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	dateOnly = "2006-01-02"
	// browser <input type="datetime-local"> values, seconds optional
	localDateTime        = "2006-01-02T15:04:05"
	localDateTimeMinutes = "2006-01-02T15:04"
)

// DueDate parses due_date from JSON as date-only ("2006-01-02"), a zoneless
// local datetime ("2006-01-02T15:04[:05]") or RFC3339.
// Date-only and local values carry no zone and are resolved with In.
// JSON null or "" means "no due date".
type DueDate struct {
	t         *time.Time
	wallClock bool
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		*d = DueDate{}
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []struct {
		layout    string
		wallClock bool
	}{
		{dateOnly, true},
		{localDateTime, true},
		{localDateTimeMinutes, true},
		{time.RFC3339, false},
		{time.RFC3339Nano, false},
	}
	for _, l := range layouts {
		parsed, err := time.Parse(l.layout, s)
		if err == nil {
			*d = DueDate{t: &parsed, wallClock: l.wallClock}
			return nil
		}
	}
	return fmt.Errorf("due_date: use date (YYYY-MM-DD), local datetime (YYYY-MM-DDTHH:MM[:SS]) or RFC3339")
}

// In returns the due date. Values without a zone are read as wall-clock time
// in loc; a date-only value becomes the start of that day.
func (d DueDate) In(loc *time.Location) *time.Time {
	if d.t == nil {
		return nil
	}
	if !d.wallClock {
		return d.t
	}
	y, m, day := d.t.Date()
	hh, mm, ss := d.t.Clock()
	t := time.Date(y, m, day, hh, mm, ss, d.t.Nanosecond(), loc)
	return &t
}

// IsSet reports whether a non-empty due date was given.
func (d DueDate) IsSet() bool { return d.t != nil }

type CreateTodoRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=120"`
	Description string  `json:"description" binding:"max=1000"`
	DueDate     DueDate `json:"due_date"` // optional: "2026-02-19", "2026-02-19T09:30" or RFC3339
	Tag         string  `json:"tag" binding:"required"`
	Priority    string  `json:"priority" binding:"required"`
}

type UpdateTodoRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=120"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	DueDate     *DueDate `json:"due_date"` // absent or null = unchanged, "" = clear
	Tag         *string  `json:"tag"`
	Priority    *string  `json:"priority"`
	Done        *bool    `json:"done"`
}

type TodoResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Done        bool       `json:"done"`
	DueDate     *time.Time `json:"due_date"`
	Tag         string     `json:"tag"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListTodosResponse struct {
	Filter string         `json:"filter"`
	Items  []TodoResponse `json:"items"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type SummaryResponse struct {
	Total     int `json:"total"`
	DueToday  int `json:"due_today"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}
