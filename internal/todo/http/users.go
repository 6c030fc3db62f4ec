package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

type UsersHandler struct {
	SessionService *service.SessionService
	UserService    *service.UserService
}

// HandleRegister creates an account and logs it in.
//
//	@Summary		Register
//	@Description	Creates a user and returns it. The session token is in the x-auth response header.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		todosdk.Credentials				true	"email and password (min 6 characters)"
//	@Success		200		{object}	todosdk.User					"created user"
//	@Header			200		{string}	x-auth							"session token"
//	@Failure		400		{object}	todosdk.ValidationErrorResponse	"invalid email or password"
//	@Failure		400		{object}	todosdk.ErrorResponse			"email already registered"
//	@Failure		429		{object}	todosdk.ErrorResponse			"rate limit exceeded"
//	@Router			/users [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var body todosdk.Credentials
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	sess, err := h.SessionService.Register(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set(httpx.AuthHeader, sess.Token)
	httpx.WriteJSON(w, http.StatusOK, toUser(sess.User))
}

// HandleLogin starts a new session for existing credentials.
//
//	@Summary		Log in
//	@Description	Verifies credentials and issues a new session token in the x-auth response header. Every login is a separate session.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		todosdk.Credentials		true	"email and password"
//	@Success		200		{object}	todosdk.User			"logged in user"
//	@Header			200		{string}	x-auth					"session token"
//	@Failure		400		{object}	todosdk.ErrorResponse	"invalid credentials"
//	@Failure		429		{object}	todosdk.ErrorResponse	"rate limit exceeded"
//	@Router			/users/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body todosdk.Credentials
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	sess, err := h.SessionService.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set(httpx.AuthHeader, sess.Token)
	httpx.WriteJSON(w, http.StatusOK, toUser(sess.User))
}

// HandleMe returns the authenticated user.
//
//	@Summary		Current user
//	@Tags			Users
//	@Security		SessionToken
//	@Produce		json
//	@Success		200	{object}	todosdk.User			"authenticated user"
//	@Failure		401	{object}	todosdk.ErrorResponse	"missing, invalid or revoked token"
//	@Router			/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrUnauthorized.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		todosdk.ErrUnauthorized.WriteError(w)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}

// HandleLogout revokes the token used for this request.
//
//	@Summary		Log out
//	@Description	Removes the presented session token. Other sessions of the same user stay valid.
//	@Tags			Users
//	@Security		SessionToken
//	@Success		200	"token removed"
//	@Failure		401	{object}	todosdk.ErrorResponse	"missing, invalid or revoked token"
//	@Router			/users/me/token [delete].
func (h *UsersHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, _ := httpx.UserIDFromContext(ctx)
	token, ok := httpx.TokenFromContext(ctx)
	if !ok || userID == "" {
		todosdk.ErrUnauthorized.WriteError(w)
		return
	}

	if err := h.SessionService.Logout(ctx, userID, token); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
}
