package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"TodoBoard/internal/cache"
	dom "TodoBoard/internal/domain"
	"TodoBoard/internal/query"
	"TodoBoard/internal/repo"
	"TodoBoard/internal/utils"

	"github.com/go-pkgz/lgr"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	maxNameLen        = 120
	maxDescriptionLen = 1000

	listLoadTimeout = 10 * time.Second
)

// Clock returns the current time in the zone that defines "today".
type Clock func() time.Time

// LocalClock returns a Clock reading the wall clock in loc.
func LocalClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

type Option func(*TodoService)

func WithClock(c Clock) Option { return func(s *TodoService) { s.now = c } }

func WithLogger(l lgr.L) Option { return func(s *TodoService) { s.log = l } }

type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
	now   Clock
	log   lgr.L
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache, opts ...Option) *TodoService {
	s := &TodoService{repo: r, cache: c, now: LocalClock(time.Local), log: lgr.NoOp}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now exposes the service clock, e.g. to interpret date-only input.
func (s *TodoService) Now() time.Time { return s.now() }

type CreateInput struct {
	Name        string
	Description string
	DueDate     *time.Time
	Tag         dom.Tag
	Priority    dom.Priority
}

// UpdateInput is a partial update: nil fields are left unchanged.
type UpdateInput struct {
	Name         *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Tag          *dom.Tag
	Priority     *dom.Priority
	Done         *bool
}

func (s *TodoService) Create(ctx context.Context, in CreateInput) (dom.Todo, error) {
	t := dom.Todo{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		DueDate:     in.DueDate,
		Tag:         in.Tag,
		Priority:    in.Priority,
	}
	if err := validate(t); err != nil {
		return dom.Todo{}, err
	}
	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return dom.Todo{}, translate(err)
	}
	s.log.Logf("[DEBUG] created todo %d %q", created.ID, created.Name)
	s.invalidateCache(ctx)
	return created, nil
}

// All returns every todo in storage order, served from cache when possible.
func (s *TodoService) All(ctx context.Context) ([]dom.Todo, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}
	ch := s.sf.DoChan("list", func() (interface{}, error) {
		// the load is shared by every waiting caller, so none of them may cancel it
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listLoadTimeout)
		defer cancel()
		return s.loadList(lctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]dom.Todo), nil
	}
}

func (s *TodoService) loadList(ctx context.Context) ([]dom.Todo, error) {
	list, err := s.cache.GetList(ctx)
	if err != nil {
		s.log.Logf("[WARN] todo cache read: %v", err)
	}
	if err == nil && list != nil {
		return list, nil
	}
	version, verr := s.cache.Version(ctx)
	if verr != nil {
		s.log.Logf("[WARN] todo cache version: %v", verr)
	}
	list, err = s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		return list, nil
	}
	stored, err := s.cache.SetListAt(ctx, version, list)
	if err != nil {
		s.log.Logf("[WARN] todo cache write: %v", err)
	} else if !stored {
		s.log.Logf("[DEBUG] todo list changed during load, not cached")
	}
	return list, nil
}

// List returns the todos visible under filter f, evaluated against the service clock.
func (s *TodoService) List(ctx context.Context, f dom.Filter) ([]dom.Todo, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return query.FilterTodos(all, f, s.now()), nil
}

func (s *TodoService) CountDueToday(ctx context.Context) (int, error) {
	all, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	return query.CountTodosDueToday(all, s.now()), nil
}

func (s *TodoService) Summary(ctx context.Context) (query.Summary, error) {
	all, err := s.All(ctx)
	if err != nil {
		return query.Summary{}, err
	}
	return query.Summarize(all, s.now()), nil
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, translate(err)
	}
	return t, nil
}

func (s *TodoService) Update(ctx context.Context, id int64, in UpdateInput) (dom.Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, translate(err)
	}
	patch := existing
	if in.Name != nil {
		patch.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		patch.Description = strings.TrimSpace(*in.Description)
	}
	if in.ClearDueDate {
		patch.DueDate = nil
	} else if in.DueDate != nil {
		patch.DueDate = in.DueDate
	}
	if in.Tag != nil {
		patch.Tag = *in.Tag
	}
	if in.Priority != nil {
		patch.Priority = *in.Priority
	}
	if in.Done != nil {
		patch.Done = *in.Done
	}
	if err := validate(patch); err != nil {
		return dom.Todo{}, err
	}
	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return dom.Todo{}, translate(err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Toggle flips the completion flag. Concurrent toggles each apply.
func (s *TodoService) Toggle(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.Toggle(ctx, id)
	if err != nil {
		return dom.Todo{}, translate(err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) SetDone(ctx context.Context, id int64, done bool) (dom.Todo, error) {
	t, err := s.repo.MarkDone(ctx, id, done)
	if err != nil {
		return dom.Todo{}, translate(err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return translate(err)
	}
	s.invalidateCache(ctx)
	return nil
}

// SeedIfEmpty inserts todos only when storage has none. It returns how many were inserted.
func (s *TodoService) SeedIfEmpty(ctx context.Context, todos []dom.Todo) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	for i, t := range todos {
		if err := validate(t); err != nil {
			return i, fmt.Errorf("seed %q: %w", t.Name, err)
		}
		if _, err := s.repo.Create(ctx, t); err != nil {
			return i, fmt.Errorf("seed %q: %w", t.Name, err)
		}
	}
	s.invalidateCache(ctx)
	return len(todos), nil
}

func validate(t dom.Todo) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(t.Name) > maxNameLen {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, maxNameLen)
	}
	if utf8.RuneCountInString(t.Description) > maxDescriptionLen {
		return fmt.Errorf("%w: description longer than %d characters", ErrInvalidInput, maxDescriptionLen)
	}
	if !t.Tag.Valid() {
		return fmt.Errorf("%w: unknown tag %q", ErrInvalidInput, t.Tag)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, t.Priority)
	}
	return nil
}

// translate maps storage errors to service errors.
func translate(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case utils.IsCheckViolation(err):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return err
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// later readers must not join a load that started before this write
	s.sf.Forget("list")
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.log.Logf("[WARN] todo cache invalidate: %v", err)
	}
}
