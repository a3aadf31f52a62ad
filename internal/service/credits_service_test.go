package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bandscore/bandscore-api/internal/dto"
	"github.com/bandscore/bandscore-api/internal/models"
	"github.com/bandscore/bandscore-api/internal/repository"
)

type stubBalanceRepo struct {
	getFn   func(ctx context.Context, userID uint) (models.UserCredits, error)
	grantFn func(ctx context.Context, userID uint, amount int) (models.UserCredits, error)
}

func (s *stubBalanceRepo) Get(ctx context.Context, userID uint) (models.UserCredits, error) {
	if s.getFn != nil {
		return s.getFn(ctx, userID)
	}
	return models.UserCredits{}, repository.ErrUnknownUser
}

func (s *stubBalanceRepo) Consume(ctx context.Context, userID uint, amount int) error {
	return nil
}

func (s *stubBalanceRepo) Grant(ctx context.Context, userID uint, amount int) (models.UserCredits, error) {
	if s.grantFn != nil {
		return s.grantFn(ctx, userID, amount)
	}
	return models.UserCredits{UserID: userID, AvailableCredits: amount, LastUpdated: time.Now()}, nil
}

func TestBalanceTreatsUnknownUserAsZero(t *testing.T) {
	svc := NewCreditsService(&stubBalanceRepo{}, validator.New(), zerolog.Nop())

	balance, err := svc.Balance(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, uint(9), balance.UserID)
	require.Zero(t, balance.AvailableCredits)
}

func TestBalanceReturnsExistingRecord(t *testing.T) {
	repo := &stubBalanceRepo{
		getFn: func(ctx context.Context, userID uint) (models.UserCredits, error) {
			return models.UserCredits{UserID: userID, AvailableCredits: 4}, nil
		},
	}
	svc := NewCreditsService(repo, validator.New(), zerolog.Nop())

	balance, err := svc.Balance(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 4, balance.AvailableCredits)
}

func TestGrantValidatesPayload(t *testing.T) {
	svc := NewCreditsService(&stubBalanceRepo{}, validator.New(), zerolog.Nop())

	_, err := svc.Grant(context.Background(), dto.GrantCreditsRequest{UserID: 1, Amount: 0})
	require.Error(t, err)
}

func TestGrantReturnsNewBalance(t *testing.T) {
	svc := NewCreditsService(&stubBalanceRepo{}, validator.New(), zerolog.Nop())

	balance, err := svc.Grant(context.Background(), dto.GrantCreditsRequest{UserID: 1, Amount: 5})
	require.NoError(t, err)
	require.Equal(t, 5, balance.AvailableCredits)
}
