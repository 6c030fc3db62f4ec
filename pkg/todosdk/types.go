package todosdk

// ============================================================================
// Users
// ============================================================================

// User is the public view of an account. The password hash and session
// tokens never leave the server.
type User struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// Credentials is the body of POST /users and POST /users/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ============================================================================
// Todos
// ============================================================================

// Todo is a single task owned by one user.
type Todo struct {
	ID        string `json:"_id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`

	// CompletedAt is Unix milliseconds, nil while the todo is open.
	CompletedAt *int64 `json:"completedAt"`

	// Creator is the owning user's id.
	Creator string `json:"_creator"`
}

// CreateTodoRequest is the body of POST /todos.
type CreateTodoRequest struct {
	Text string `json:"text"`
}

// UpdateTodoRequest is the body of PATCH /todos/{id}. Nil fields are left
// untouched.
type UpdateTodoRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TodoResponse wraps a single todo.
type TodoResponse struct {
	Todo Todo `json:"todo"`
}

// TodoListResponse wraps the caller's todos.
type TodoListResponse struct {
	Todos []Todo `json:"todos"`
}

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when request validation fails.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
