package repo

import (
	"context"
	"time"

	dom "TodoBoard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo persists todos. Lookups of missing or deleted rows return ErrNoRows
// from the underlying driver (pgx.ErrNoRows or sql.ErrNoRows).
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	List(ctx context.Context) ([]dom.Todo, error)
	Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error)
	SoftDelete(ctx context.Context, id int64) error
	MarkDone(ctx context.Context, id int64, done bool) (dom.Todo, error)
	// Toggle flips done in a single statement.
	Toggle(ctx context.Context, id int64) (dom.Todo, error)
	Count(ctx context.Context) (int, error)
}

const todoColumns = `id, name, description, done, due_date, tag, priority, created_at, updated_at, deleted_at`

// listOrder puts dated todos first, soonest due first; ties keep insertion order.
const listOrder = `ORDER BY due_date IS NULL, due_date ASC, id ASC`

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func scanPGTodo(row pgx.Row) (dom.Todo, error) {
	var t dom.Todo
	var tag, priority string
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Done, &t.DueDate,
		&tag, &priority, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt)
	t.Tag, t.Priority = dom.Tag(tag), dom.Priority(priority)
	return t, err
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (name, description, done, due_date, tag, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + todoColumns
	return scanPGTodo(r.db.QueryRow(ctx, query,
		t.Name, t.Description, t.Done, t.DueDate, string(t.Tag), string(t.Priority)))
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND deleted_at IS NULL`
	return scanPGTodo(r.db.QueryRow(ctx, query, id))
}

func (r *PGTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE deleted_at IS NULL ` + listOrder
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Todo{}
	for rows.Next() {
		t, err := scanPGTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error) {
	query := `
		UPDATE todos SET name = $2, description = $3, due_date = $4, tag = $5, priority = $6,
			done = $7, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + todoColumns
	return scanPGTodo(r.db.QueryRow(ctx, query, id, patch.Name, patch.Description, patch.DueDate,
		string(patch.Tag), string(patch.Priority), patch.Done))
}

func (r *PGTodoRepo) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, `UPDATE todos SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PGTodoRepo) MarkDone(ctx context.Context, id int64, done bool) (dom.Todo, error) {
	query := `
		UPDATE todos SET done = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + todoColumns
	return scanPGTodo(r.db.QueryRow(ctx, query, id, done))
}

func (r *PGTodoRepo) Toggle(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		UPDATE todos SET done = NOT done, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + todoColumns
	return scanPGTodo(r.db.QueryRow(ctx, query, id))
}

func (r *PGTodoRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM todos WHERE deleted_at IS NULL`).Scan(&n)
	return n, err
}
