package dto

import (
	"time"

	"github.com/bandscore/bandscore-api/internal/models"
)

// ChatSendRequest is the payload for sending one message to the tutor.
type ChatSendRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// ChatMessageResponse is the API shape of one stored conversation turn.
type ChatMessageResponse struct {
	ID        uint      `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatMessageResponse converts a stored message into its API shape.
func NewChatMessageResponse(message models.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        message.ID,
		Role:      message.Role,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}

// ChatExchangeResponse pairs the user's message with the tutor's reply.
type ChatExchangeResponse struct {
	Message ChatMessageResponse `json:"message"`
	Reply   ChatMessageResponse `json:"reply"`
}
