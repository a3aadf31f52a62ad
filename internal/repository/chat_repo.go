package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bandscore/bandscore-api/internal/models"
)

// ChatRepository defines data operations for tutor chat messages.
type ChatRepository interface {
	Save(ctx context.Context, message *models.ChatMessage) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository instantiates the repository.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Save(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListByUser returns the user's most recent messages in chronological order.
func (r *chatRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.ChatMessage, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []models.ChatMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}

	// Reverse into chronological order for conversation replay.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
