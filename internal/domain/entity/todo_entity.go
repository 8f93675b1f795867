package entity

import (
	"time"
)

// Todo is a task owned by exactly one user. UserID is set from the
// authenticated identity at creation and is never client-writable.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnedBy is the authorization predicate checked before every mutation.
func (t *Todo) OwnedBy(userID string) bool {
	return userID != "" && t.UserID == userID
}
