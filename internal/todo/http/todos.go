package http

import (
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

type TodosHandler struct {
	TodoService *service.TodoService
}

// HandleCreate adds a todo for the authenticated user.
//
//	@Summary		Create todo
//	@Tags			Todos
//	@Security		SessionToken
//	@Accept			json
//	@Produce		json
//	@Param			body	body		todosdk.CreateTodoRequest		true	"todo text"
//	@Success		201		{object}	todosdk.Todo					"created todo"
//	@Failure		400		{object}	todosdk.ValidationErrorResponse	"empty text"
//	@Failure		401		{object}	todosdk.ErrorResponse			"missing, invalid or revoked token"
//	@Router			/todos [post].
func (h *TodosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	var body todosdk.CreateTodoRequest
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	todo, err := h.TodoService.Create(r.Context(), owner, body.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTodo(todo))
}

// HandleList returns the authenticated user's todos.
//
//	@Summary		List todos
//	@Tags			Todos
//	@Security		SessionToken
//	@Produce		json
//	@Success		200	{object}	todosdk.TodoListResponse	"todos in creation order"
//	@Failure		401	{object}	todosdk.ErrorResponse		"missing, invalid or revoked token"
//	@Router			/todos [get].
func (h *TodosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	todos, err := h.TodoService.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := todosdk.TodoListResponse{Todos: make([]todosdk.Todo, 0, len(todos))}
	for _, t := range todos {
		resp.Todos = append(resp.Todos, toTodo(t))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet returns one todo.
//
//	@Summary		Get todo
//	@Tags			Todos
//	@Security		SessionToken
//	@Produce		json
//	@Param			id	path		string					true	"todo id"
//	@Success		200	{object}	todosdk.TodoResponse	"the todo"
//	@Failure		401	{object}	todosdk.ErrorResponse	"missing, invalid or revoked token"
//	@Failure		404	{object}	todosdk.ErrorResponse	"no such todo for this user"
//	@Router			/todos/{id} [get].
func (h *TodosHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	todo, err := h.TodoService.Get(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todosdk.TodoResponse{Todo: toTodo(todo)})
}

// HandleUpdate changes the text or completion state of a todo.
//
//	@Summary		Update todo
//	@Description	Setting completed to true stamps completedAt with the current time, false clears it.
//	@Tags			Todos
//	@Security		SessionToken
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"todo id"
//	@Param			body	body		todosdk.UpdateTodoRequest		true	"fields to change"
//	@Success		200		{object}	todosdk.TodoResponse			"updated todo"
//	@Failure		400		{object}	todosdk.ValidationErrorResponse	"empty text"
//	@Failure		401		{object}	todosdk.ErrorResponse			"missing, invalid or revoked token"
//	@Failure		404		{object}	todosdk.ErrorResponse			"no such todo for this user"
//	@Router			/todos/{id} [patch].
func (h *TodosHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	var body todosdk.UpdateTodoRequest
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	todo, err := h.TodoService.Update(r.Context(), owner, r.PathValue("id"), service.TodoUpdate{
		Text:      body.Text,
		Completed: body.Completed,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todosdk.TodoResponse{Todo: toTodo(todo)})
}

// HandleDelete removes a todo and returns it.
//
//	@Summary		Delete todo
//	@Tags			Todos
//	@Security		SessionToken
//	@Produce		json
//	@Param			id	path		string					true	"todo id"
//	@Success		200	{object}	todosdk.TodoResponse	"deleted todo"
//	@Failure		401	{object}	todosdk.ErrorResponse	"missing, invalid or revoked token"
//	@Failure		404	{object}	todosdk.ErrorResponse	"no such todo for this user"
//	@Router			/todos/{id} [delete].
func (h *TodosHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	todo, err := h.TodoService.Delete(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todosdk.TodoResponse{Todo: toTodo(todo)})
}

func ownerFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := httpx.UserIDFromContext(r.Context())
	if !ok || owner == "" {
		todosdk.ErrUnauthorized.WriteError(w)
		return "", false
	}
	return owner, true
}
