package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dom "TodoBoard/internal/domain"

	_ "modernc.org/sqlite"
)

// SQLite stores timestamps as fixed-width RFC3339 text in UTC so that text order is time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteTodoRepo implements TodoRepo on a local SQLite file.
type SQLiteTodoRepo struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path with WAL and foreign keys on.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return db, nil
}

func NewSQLiteTodoRepo(db *sql.DB) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteTodo(row rowScanner) (dom.Todo, error) {
	var (
		t                    dom.Todo
		tag, priority        string
		due, deleted         sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Done, &due,
		&tag, &priority, &createdAt, &updatedAt, &deleted); err != nil {
		return dom.Todo{}, err
	}
	t.Tag, t.Priority = dom.Tag(tag), dom.Priority(priority)

	var err error
	if t.DueDate, err = parseNullTime(due); err != nil {
		return dom.Todo{}, fmt.Errorf("todo %d due_date: %w", t.ID, err)
	}
	if t.DeletedAt, err = parseNullTime(deleted); err != nil {
		return dom.Todo{}, fmt.Errorf("todo %d deleted_at: %w", t.ID, err)
	}
	if t.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return dom.Todo{}, fmt.Errorf("todo %d created_at: %w", t.ID, err)
	}
	if t.UpdatedAt, err = time.Parse(sqliteTimeLayout, updatedAt); err != nil {
		return dom.Todo{}, fmt.Errorf("todo %d updated_at: %w", t.ID, err)
	}
	return t, nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(sqliteTimeLayout, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(sqliteTimeLayout), Valid: true}
}

func nowText() string { return time.Now().UTC().Format(sqliteTimeLayout) }

func (r *SQLiteTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	now := nowText()
	query := `
		INSERT INTO todos (name, description, done, due_date, tag, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + todoColumns
	return scanSQLiteTodo(r.db.QueryRowContext(ctx, query,
		t.Name, t.Description, t.Done, formatNullTime(t.DueDate), string(t.Tag), string(t.Priority), now, now))
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND deleted_at IS NULL`
	return scanSQLiteTodo(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE deleted_at IS NULL ` + listOrder
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Todo{}
	for rows.Next() {
		t, err := scanSQLiteTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error) {
	query := `
		UPDATE todos SET name = ?, description = ?, due_date = ?, tag = ?, priority = ?,
			done = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
		RETURNING ` + todoColumns
	return scanSQLiteTodo(r.db.QueryRowContext(ctx, query, patch.Name, patch.Description,
		formatNullTime(patch.DueDate), string(patch.Tag), string(patch.Priority), patch.Done, nowText(), id))
}

func (r *SQLiteTodoRepo) SoftDelete(ctx context.Context, id int64) error {
	now := nowText()
	res, err := r.db.ExecContext(ctx,
		`UPDATE todos SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`, now, now, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQLiteTodoRepo) MarkDone(ctx context.Context, id int64, done bool) (dom.Todo, error) {
	query := `
		UPDATE todos SET done = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
		RETURNING ` + todoColumns
	return scanSQLiteTodo(r.db.QueryRowContext(ctx, query, done, nowText(), id))
}

func (r *SQLiteTodoRepo) Toggle(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		UPDATE todos SET done = NOT done, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
		RETURNING ` + todoColumns
	return scanSQLiteTodo(r.db.QueryRowContext(ctx, query, nowText(), id))
}

func (r *SQLiteTodoRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE deleted_at IS NULL`).Scan(&n)
	return n, err
}
