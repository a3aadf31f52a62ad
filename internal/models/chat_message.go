package models

import "time"

const (
	// ChatRoleUser marks a message written by the user.
	ChatRoleUser = "user"
	// ChatRoleAssistant marks a tutor reply generated by the AI.
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn in a user's conversation with the tutor.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
