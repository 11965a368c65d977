package models

import (
	"time"
)

// Chat message roles. Admin-originated messages are recorded as assistant.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one entry in a user's support transcript. Append-only.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	AdminID   string    `json:"admin_id,omitempty"`
	Mensagem  string    `gorm:"type:text;not null" json:"mensagem"`
	Role      string    `gorm:"not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSummary is one row of the chat list view: the latest message per user.
type ChatSummary struct {
	UserID    string    `json:"user_id"`
	Mensagem  string    `json:"mensagem"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
