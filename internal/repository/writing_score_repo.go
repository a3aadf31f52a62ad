package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bandscore/bandscore-api/internal/models"
)

// WritingScoreRepository defines data operations for writing score records.
type WritingScoreRepository interface {
	Create(ctx context.Context, score *models.WritingScore) error
	GetByID(ctx context.Context, id uint, userID uint) (models.WritingScore, error)
	ListByUser(ctx context.Context, userID uint) ([]models.WritingScore, error)
	LatestByUserAndTask(ctx context.Context, userID uint, taskType models.TaskType) (models.WritingScore, error)
}

type writingScoreRepository struct {
	db *gorm.DB
}

// NewWritingScoreRepository instantiates the repository.
func NewWritingScoreRepository(db *gorm.DB) WritingScoreRepository {
	return &writingScoreRepository{db: db}
}

func (r *writingScoreRepository) Create(ctx context.Context, score *models.WritingScore) error {
	return r.db.WithContext(ctx).Create(score).Error
}

func (r *writingScoreRepository) GetByID(ctx context.Context, id uint, userID uint) (models.WritingScore, error) {
	var score models.WritingScore
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		First(&score).Error; err != nil {
		return models.WritingScore{}, err
	}

	return score, nil
}

func (r *writingScoreRepository) ListByUser(ctx context.Context, userID uint) ([]models.WritingScore, error) {
	var scores []models.WritingScore
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&scores).Error; err != nil {
		return nil, err
	}

	return scores, nil
}

func (r *writingScoreRepository) LatestByUserAndTask(ctx context.Context, userID uint, taskType models.TaskType) (models.WritingScore, error) {
	var score models.WritingScore
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("task_type = ?", taskType).
		Order("created_at DESC, id DESC").
		First(&score).Error; err != nil {
		return models.WritingScore{}, err
	}

	return score, nil
}
