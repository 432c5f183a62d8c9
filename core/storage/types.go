package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

// User is a tracked employee.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

// KPIRecord is a persisted target/actual pair for a user and month.
type KPIRecord struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Department string  `json:"department"`
	Month      string  `json:"month"`
	Target     float64 `json:"target"`
	Actual     float64 `json:"actual"`
	Drift      float64 `json:"drift"`
}

// MessageRecord is an outbound message that was handed to a delivery
// channel. Only the send time feeds back into the decision path, for
// the cooldown check.
type MessageRecord struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	Channel string    `json:"channel"`
	Tier    string    `json:"tier"`
	Text    string    `json:"text"`
	SentAt  time.Time `json:"sent_at"`
}

// PromptRecord is a persisted prompt template override for an agent.
type PromptRecord struct {
	ID        string            `json:"id"`
	AgentType string            `json:"agent_type"`
	Name      string            `json:"prompt_name"`
	Template  string            `json:"template"`
	Variables map[string]string `json:"variables"`
	Active    bool              `json:"is_active"`
	UpdatedAt time.Time         `json:"updated_at"`
}
