package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/idx"
)

// TodoUpdate is a partial update. Nil fields are left untouched.
type TodoUpdate struct {
	Text      *string
	Completed *bool
}

// TodoService manages todos on behalf of an authenticated owner. Every
// operation is scoped to ownerID, and todos belonging to someone else look
// exactly like todos that do not exist.
type TodoService struct {
	Store store.Store

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *TodoService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *TodoService) Create(ctx context.Context, ownerID, text string) (domain.Todo, error) {
	text, err := normaliseText(text)
	if err != nil {
		return domain.Todo{}, err
	}

	now := s.now()
	todo := domain.Todo{
		ID:        idx.NewAt(now).String(),
		OwnerID:   ownerID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Todos().CreateTodo(ctx, todo); err != nil {
		return domain.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	todos, err := s.Store.Todos().ListTodos(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, ownerID, id string) (domain.Todo, error) {
	if !idx.Valid(id) {
		return domain.Todo{}, ErrTodoNotFound
	}
	todo, err := s.Store.Todos().GetTodo(ctx, ownerID, id)
	return todo, mapTodoErr(err, "get todo")
}

// Update applies u. Completing a todo always stamps a fresh CompletedAt, and
// un-completing clears it.
func (s *TodoService) Update(ctx context.Context, ownerID, id string, u TodoUpdate) (domain.Todo, error) {
	if !idx.Valid(id) {
		return domain.Todo{}, ErrTodoNotFound
	}

	now := s.now()
	patch := domain.TodoPatch{UpdatedAt: now}

	if u.Text != nil {
		text, err := normaliseText(*u.Text)
		if err != nil {
			return domain.Todo{}, err
		}
		patch.Text = &text
	}

	if u.Completed != nil {
		completed := *u.Completed
		patch.Completed = &completed
		if completed {
			patch.CompletedAt = &now
		}
	}

	todo, err := s.Store.Todos().UpdateTodo(ctx, ownerID, id, patch)
	return todo, mapTodoErr(err, "update todo")
}

// Delete removes the todo and returns what it looked like.
func (s *TodoService) Delete(ctx context.Context, ownerID, id string) (domain.Todo, error) {
	if !idx.Valid(id) {
		return domain.Todo{}, ErrTodoNotFound
	}
	todo, err := s.Store.Todos().DeleteTodo(ctx, ownerID, id)
	return todo, mapTodoErr(err, "delete todo")
}

func normaliseText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalid("text", "must not be empty")
	}
	return text, nil
}

func mapTodoErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrTodoNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
