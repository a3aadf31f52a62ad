package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bandscore/bandscore-api/internal/models"
)

// CombinedScoreRepository defines data operations for combined score records.
type CombinedScoreRepository interface {
	Create(ctx context.Context, combined *models.CombinedWritingScore) error
	ExistsForPair(ctx context.Context, userID, task1ScoreID, task2ScoreID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]models.CombinedWritingScore, error)
}

type combinedScoreRepository struct {
	db *gorm.DB
}

// NewCombinedScoreRepository instantiates the repository.
func NewCombinedScoreRepository(db *gorm.DB) CombinedScoreRepository {
	return &combinedScoreRepository{db: db}
}

// Create inserts a combined record. The unique index on the score pair makes
// a duplicate insert fail rather than produce a second record when two
// evaluations race through the existence check.
func (r *combinedScoreRepository) Create(ctx context.Context, combined *models.CombinedWritingScore) error {
	return r.db.WithContext(ctx).Create(combined).Error
}

func (r *combinedScoreRepository) ExistsForPair(ctx context.Context, userID, task1ScoreID, task2ScoreID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CombinedWritingScore{}).
		Where("user_id = ?", userID).
		Where("task1_score_id = ?", task1ScoreID).
		Where("task2_score_id = ?", task2ScoreID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *combinedScoreRepository) ListByUser(ctx context.Context, userID uint) ([]models.CombinedWritingScore, error) {
	var combined []models.CombinedWritingScore
	if err := r.db.WithContext(ctx).
		Preload("Task1Score").
		Preload("Task2Score").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&combined).Error; err != nil {
		return nil, err
	}

	return combined, nil
}
