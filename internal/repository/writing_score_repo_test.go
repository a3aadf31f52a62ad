package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bandscore/bandscore-api/internal/models"
)

func TestWritingScoreRepositoryCreateAndGet(t *testing.T) {
	repo := NewWritingScoreRepository(setupTestDB(t))
	ctx := context.Background()

	score := &models.WritingScore{
		UserID:        1,
		TaskType:      models.TaskType2,
		EssayText:     "essay body",
		WordCount:     260,
		OverallScore:  6.5,
		AdjustedScore: 6.5,
	}
	require.NoError(t, repo.Create(ctx, score))
	require.NotZero(t, score.ID)

	got, err := repo.GetByID(ctx, score.ID, 1)
	require.NoError(t, err)
	require.Equal(t, models.TaskType2, got.TaskType)
	require.Equal(t, 6.5, got.AdjustedScore)
}

func TestWritingScoreRepositoryGetScopedToOwner(t *testing.T) {
	repo := NewWritingScoreRepository(setupTestDB(t))
	ctx := context.Background()

	score := &models.WritingScore{UserID: 1, TaskType: models.TaskType1, EssayText: "mine"}
	require.NoError(t, repo.Create(ctx, score))

	_, err := repo.GetByID(ctx, score.ID, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWritingScoreRepositoryListNewestFirst(t *testing.T) {
	repo := NewWritingScoreRepository(setupTestDB(t))
	ctx := context.Background()

	old := &models.WritingScore{UserID: 1, TaskType: models.TaskType1, EssayText: "old", CreatedAt: time.Now().Add(-time.Hour)}
	recent := &models.WritingScore{UserID: 1, TaskType: models.TaskType2, EssayText: "recent", CreatedAt: time.Now()}
	other := &models.WritingScore{UserID: 2, TaskType: models.TaskType1, EssayText: "other user"}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, recent))
	require.NoError(t, repo.Create(ctx, other))

	scores, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	require.Equal(t, "recent", scores[0].EssayText)
	require.Equal(t, "old", scores[1].EssayText)
}

func TestWritingScoreRepositoryLatestByUserAndTask(t *testing.T) {
	repo := NewWritingScoreRepository(setupTestDB(t))
	ctx := context.Background()

	first := &models.WritingScore{UserID: 1, TaskType: models.TaskType1, EssayText: "first", CreatedAt: time.Now().Add(-time.Hour)}
	second := &models.WritingScore{UserID: 1, TaskType: models.TaskType1, EssayText: "second", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	latest, err := repo.LatestByUserAndTask(ctx, 1, models.TaskType1)
	require.NoError(t, err)
	require.Equal(t, "second", latest.EssayText)

	_, err = repo.LatestByUserAndTask(ctx, 1, models.TaskType2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
