package dto

import (
	"time"

	"github.com/bandscore/bandscore-api/internal/models"
)

// CreditBalanceResponse reports a user's remaining evaluation credits.
type CreditBalanceResponse struct {
	UserID           uint      `json:"user_id"`
	AvailableCredits int       `json:"available_credits"`
	LastUpdated      time.Time `json:"last_updated"`
}

// NewCreditBalanceResponse converts a balance record into its API shape.
func NewCreditBalanceResponse(credits models.UserCredits) CreditBalanceResponse {
	return CreditBalanceResponse{
		UserID:           credits.UserID,
		AvailableCredits: credits.AvailableCredits,
		LastUpdated:      credits.LastUpdated,
	}
}

// GrantCreditsRequest is the admin payload for topping up a user's credits.
type GrantCreditsRequest struct {
	UserID uint `json:"user_id" validate:"required"`
	Amount int  `json:"amount" validate:"required,min=1"`
}
