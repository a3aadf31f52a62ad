package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bandscore/bandscore-api/internal/dto"
	"github.com/bandscore/bandscore-api/internal/repository"
)

// CreditsService exposes credit balance operations.
type CreditsService interface {
	Balance(ctx context.Context, userID uint) (dto.CreditBalanceResponse, error)
	Grant(ctx context.Context, payload dto.GrantCreditsRequest) (dto.CreditBalanceResponse, error)
}

type creditsService struct {
	credits   repository.CreditsRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCreditsService constructs the credits service.
func NewCreditsService(creditsRepo repository.CreditsRepository, validate *validator.Validate, logger zerolog.Logger) CreditsService {
	return &creditsService{
		credits:   creditsRepo,
		validator: validate,
		logger:    logger.With().Str("component", "credits_service").Logger(),
	}
}

// Balance reports the user's remaining credits. A user without a balance
// record reads as zero rather than an error.
func (s *creditsService) Balance(ctx context.Context, userID uint) (dto.CreditBalanceResponse, error) {
	credits, err := s.credits.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownUser) {
			return dto.CreditBalanceResponse{UserID: userID}, nil
		}
		return dto.CreditBalanceResponse{}, err
	}

	return dto.NewCreditBalanceResponse(credits), nil
}

func (s *creditsService) Grant(ctx context.Context, payload dto.GrantCreditsRequest) (dto.CreditBalanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CreditBalanceResponse{}, err
	}

	credits, err := s.credits.Grant(ctx, payload.UserID, payload.Amount)
	if err != nil {
		return dto.CreditBalanceResponse{}, err
	}

	s.logger.Info().Uint("user_id", payload.UserID).Int("amount", payload.Amount).Msg("credits granted")
	return dto.NewCreditBalanceResponse(credits), nil
}
