// Package repotest provides an in-memory TodoRepo for service and handler tests.
package repotest

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	dom "TodoBoard/internal/domain"
)

type MemoryTodoRepo struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]dom.Todo

	// Err, when set, is returned by every call.
	Err       error
	ListCalls int
}

func NewMemoryTodoRepo() *MemoryTodoRepo {
	return &MemoryTodoRepo{todos: map[int64]dom.Todo{}}
}

func (r *MemoryTodoRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return dom.Todo{}, r.Err
	}
	r.nextID++
	now := time.Now().UTC()
	t.ID, t.CreatedAt, t.UpdatedAt, t.DeletedAt = r.nextID, now, now, nil
	r.todos[t.ID] = t
	return t, nil
}

func (r *MemoryTodoRepo) GetByID(_ context.Context, id int64) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return dom.Todo{}, r.Err
	}
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, sql.ErrNoRows
	}
	return t, nil
}

// List orders by ID, which is insertion order.
func (r *MemoryTodoRepo) List(_ context.Context) ([]dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ListCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	list := make([]dom.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryTodoRepo) Update(_ context.Context, id int64, patch dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return dom.Todo{}, r.Err
	}
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, sql.ErrNoRows
	}
	patch.ID, patch.CreatedAt, patch.UpdatedAt = id, t.CreatedAt, time.Now().UTC()
	r.todos[id] = patch
	return patch, nil
}

func (r *MemoryTodoRepo) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.todos[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.todos, id)
	return nil
}

func (r *MemoryTodoRepo) MarkDone(_ context.Context, id int64, done bool) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return dom.Todo{}, r.Err
	}
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, sql.ErrNoRows
	}
	t.Done, t.UpdatedAt = done, time.Now().UTC()
	r.todos[id] = t
	return t, nil
}

func (r *MemoryTodoRepo) Toggle(_ context.Context, id int64) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return dom.Todo{}, r.Err
	}
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, sql.ErrNoRows
	}
	t.Done, t.UpdatedAt = !t.Done, time.Now().UTC()
	r.todos[id] = t
	return t, nil
}

func (r *MemoryTodoRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return len(r.todos), nil
}
