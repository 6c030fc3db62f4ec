package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
)

type todosRepo struct {
	db *sql.DB
	d  Dialect
}

const todoColumns = `id, owner_id, text, completed, completed_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var (
		t                    domain.Todo
		completedAt          sql.NullInt64
		createdAt, updatedAt int64
	)
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &completedAt, &createdAt, &updatedAt); err != nil {
		return domain.Todo{}, err
	}
	t.CompletedAt = mapNullTimePtr(completedAt)
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updatedAt)
	return t, nil
}

func (r *todosRepo) CreateTodo(ctx context.Context, t domain.Todo) error {
	_, err := r.db.ExecContext(ctx,
		r.d.rebind(`INSERT INTO todos (`+todoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.OwnerID, t.Text, t.Completed, mapOptionalTime(t.CompletedAt),
		toMillis(t.CreatedAt), toMillis(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *todosRepo) ListTodos(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		r.d.rebind(`SELECT `+todoColumns+` FROM todos WHERE owner_id = ? ORDER BY id`),
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *todosRepo) GetTodo(ctx context.Context, ownerID, id string) (domain.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		r.d.rebind(`SELECT `+todoColumns+` FROM todos WHERE id = ? AND owner_id = ?`),
		id, ownerID,
	)
	t, err := scanTodo(row)
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return t, nil
}

func (r *todosRepo) UpdateTodo(ctx context.Context, ownerID, id string, p domain.TodoPatch) (domain.Todo, error) {
	sets := []string{"updated_at = ?"}
	args := []any{toMillis(p.UpdatedAt)}

	if p.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *p.Text)
	}
	if p.Completed != nil {
		sets = append(sets, "completed = ?", "completed_at = ?")
		args = append(args, *p.Completed, mapOptionalTime(p.CompletedAt))
	}
	args = append(args, id, ownerID)

	query := `UPDATE todos SET ` + strings.Join(sets, ", ") +
		` WHERE id = ? AND owner_id = ? RETURNING ` + todoColumns

	t, err := scanTodo(r.db.QueryRowContext(ctx, r.d.rebind(query), args...))
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return t, nil
}

func (r *todosRepo) DeleteTodo(ctx context.Context, ownerID, id string) (domain.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		r.d.rebind(`DELETE FROM todos WHERE id = ? AND owner_id = ? RETURNING `+todoColumns),
		id, ownerID,
	)
	t, err := scanTodo(row)
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return t, nil
}
