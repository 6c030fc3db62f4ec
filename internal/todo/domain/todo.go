package domain

import "time"

// Todo is a task owned by exactly one user. CompletedAt is non-nil iff
// Completed is true.
type Todo struct {
	ID          string
	OwnerID     string
	Text        string
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoPatch is a partial update applied by the store. When Completed is set,
// CompletedAt is written alongside it verbatim (including nil).
type TodoPatch struct {
	Text        *string
	Completed   *bool
	CompletedAt *time.Time
	UpdatedAt   time.Time
}
