package models

import "time"

// ConversationMessage is a single turn in a user's dialogue history.
type ConversationMessage struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"` // user or assistant
	Content   string         `json:"content"`
	Actions   []ActionResult `json:"actions,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// ConversationContext is the per-user dialogue state held in the session
// store. Stage is reserved for multi-turn flow control and is not acted
// on yet.
type ConversationContext struct {
	UserID       int64                 `json:"user_id"`
	Messages     []ConversationMessage `json:"messages"`
	StartedAt    time.Time             `json:"started_at"`
	LastActivity time.Time             `json:"last_activity"`
	Stage        string                `json:"stage"`
}

// AgentResponse is the composed reply returned by the agent message path.
type AgentResponse struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	Actions     []ActionResult `json:"actions,omitempty"`
	ActionCount int            `json:"actionCount"`
	Errors      []string       `json:"errors,omitempty"`
}

// Conversation is a persisted message/response pair.
type Conversation struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
