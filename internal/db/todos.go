package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kube-rca/todo/internal/model"
)

const todoListLimit = 100

type todoRow struct {
	ID          uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r todoRow) toRecord() model.TodoRecord {
	return model.TodoRecord{
		ID:          r.ID.String(),
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(s rowScanner) (model.TodoRecord, error) {
	var row todoRow
	if err := s.Scan(&row.ID, &row.Title, &row.Description, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return model.TodoRecord{}, translate(err)
	}
	return row.toRecord(), nil
}

func (db *Postgres) CreateTodo(ctx context.Context, body model.TodoBody) (model.TodoRecord, error) {
	query := `
		INSERT INTO todos (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, title, description, created_at, updated_at
	`
	return scanTodo(db.Pool.QueryRow(ctx, query, uuid.New(), body.Title, body.Description))
}

func (db *Postgres) GetTodo(ctx context.Context, id string) (model.TodoRecord, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM todos
		WHERE id = $1
	`
	todoID, err := uuid.Parse(id)
	if err != nil {
		return model.TodoRecord{}, ErrNotFound
	}
	return scanTodo(db.Pool.QueryRow(ctx, query, todoID))
}

// ListTodos returns at most 100 todos, newest first.
func (db *Postgres) ListTodos(ctx context.Context) ([]model.TodoRecord, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM todos
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := db.Pool.Query(ctx, query, todoListLimit)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	list := []model.TodoRecord{}
	for rows.Next() {
		rec, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return list, nil
}

// UpdateTodo replaces title and description in one statement; a missing id changes nothing.
func (db *Postgres) UpdateTodo(ctx context.Context, id string, body model.TodoBody) (model.TodoRecord, error) {
	query := `
		UPDATE todos
		SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, title, description, created_at, updated_at
	`
	todoID, err := uuid.Parse(id)
	if err != nil {
		return model.TodoRecord{}, ErrNotFound
	}
	return scanTodo(db.Pool.QueryRow(ctx, query, body.Title, body.Description, todoID))
}

func (db *Postgres) DeleteTodo(ctx context.Context, id string) error {
	todoID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := db.Pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, todoID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
