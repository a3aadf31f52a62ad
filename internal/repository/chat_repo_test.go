package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bandscore/bandscore-api/internal/models"
)

func TestChatRepositorySaveAndList(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		msg := &models.ChatMessage{
			UserID:    1,
			Role:      models.ChatRoleUser,
			Content:   fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Save(ctx, msg))
	}

	messages, err := repo.ListByUser(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.Equal(t, "message 0", messages[0].Content)
	require.Equal(t, "message 2", messages[2].Content)
}

func TestChatRepositoryListLimitKeepsNewest(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		msg := &models.ChatMessage{
			UserID:    1,
			Role:      models.ChatRoleAssistant,
			Content:   fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Save(ctx, msg))
	}

	messages, err := repo.ListByUser(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, "message 3", messages[0].Content)
	require.Equal(t, "message 4", messages[1].Content)
}

func TestChatRepositoryListScopedToUser(t *testing.T) {
	repo := NewChatRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.ChatMessage{UserID: 1, Role: models.ChatRoleUser, Content: "mine"}))
	require.NoError(t, repo.Save(ctx, &models.ChatMessage{UserID: 2, Role: models.ChatRoleUser, Content: "theirs"}))

	messages, err := repo.ListByUser(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "mine", messages[0].Content)
}
