package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

// writeError maps service errors onto API errors. Anything unrecognised is
// logged and reported as a server error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		todosdk.NewValidationError("request validation failed", verr.Details).WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		todosdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		todosdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrUnauthenticated):
		todosdk.ErrUnauthorized.WriteError(w)
	case errors.Is(err, service.ErrTodoNotFound):
		todosdk.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
	}
}

// writeDecodeError reports a body DecodeJSON could not read.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, httpx.ErrBodyTooLarge) {
		todosdk.ErrRequestTooLarge.WriteError(w)
		return
	}
	todosdk.ErrInvalidRequest.WriteError(w)
}
