// Package session keeps per-session navigation state: the ids a client
// last selected at each level of the hierarchy. Selections are explicit
// objects scoped to a session id, never process-wide state.
package session

import "github.com/google/uuid"

// Selection records the last selected id per hierarchy level. Zero means
// nothing selected at that level.
type Selection struct {
	PersonaID  int64 `json:"personaId,omitempty"`
	CategoryID int64 `json:"categoryId,omitempty"`
	ThreadID   int64 `json:"threadId,omitempty"`
	QuestionID int64 `json:"questionId,omitempty"`
	AnswerID   int64 `json:"answerId,omitempty"`
}

// SelectionStore persists selections per session id.
type SelectionStore interface {
	Get(sessionID string) (Selection, bool, error)
	Put(sessionID string, sel Selection) error
	Delete(sessionID string) error
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
