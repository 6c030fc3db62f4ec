package http

import (
	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

func toUser(u domain.User) todosdk.User {
	return todosdk.User{ID: u.ID, Email: u.Email}
}

func toTodo(t domain.Todo) todosdk.Todo {
	out := todosdk.Todo{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Creator:   t.OwnerID,
	}
	if t.CompletedAt != nil {
		ms := t.CompletedAt.UnixMilli()
		out.CompletedAt = &ms
	}
	return out
}
