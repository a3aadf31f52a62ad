package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bandscore/bandscore-api/internal/models"
)

// ErrUnknownUser indicates no credit balance record exists for the user.
var ErrUnknownUser = errors.New("user credits not found")

// ErrInsufficientCredits indicates the balance is too low for the requested
// deduction.
var ErrInsufficientCredits = errors.New("insufficient credits")

// CreditsRepository manages consumable evaluation credits.
type CreditsRepository interface {
	Get(ctx context.Context, userID uint) (models.UserCredits, error)
	Consume(ctx context.Context, userID uint, amount int) error
	Grant(ctx context.Context, userID uint, amount int) (models.UserCredits, error)
}

type creditsRepository struct {
	db *gorm.DB
}

// NewCreditsRepository instantiates the repository.
func NewCreditsRepository(db *gorm.DB) CreditsRepository {
	return &creditsRepository{db: db}
}

func (r *creditsRepository) Get(ctx context.Context, userID uint) (models.UserCredits, error) {
	var credits models.UserCredits
	if err := r.db.WithContext(ctx).First(&credits, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserCredits{}, ErrUnknownUser
		}
		return models.UserCredits{}, err
	}

	return credits, nil
}

// Consume deducts amount credits in a single conditional update so that
// check-and-deduct is indivisible with respect to concurrent callers: two
// simultaneous calls against a balance of one yield exactly one success.
func (r *creditsRepository) Consume(ctx context.Context, userID uint, amount int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UserCredits{}).
			Where("user_id = ? AND available_credits >= ?", userID, amount).
			UpdateColumns(map[string]interface{}{
				"available_credits": gorm.Expr("available_credits - ?", amount),
				"last_updated":      time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.UserCredits{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrUnknownUser
			}
			return ErrInsufficientCredits
		}

		return nil
	})
}

// Grant adds amount credits to the user's balance, creating the balance
// record if it does not exist yet.
func (r *creditsRepository) Grant(ctx context.Context, userID uint, amount int) (models.UserCredits, error) {
	credits := models.UserCredits{
		UserID:           userID,
		AvailableCredits: amount,
		LastUpdated:      time.Now(),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"available_credits": gorm.Expr("available_credits + ?", amount),
			"last_updated":      time.Now(),
		}),
	}).Create(&credits).Error
	if err != nil {
		return models.UserCredits{}, err
	}

	return r.Get(ctx, userID)
}
