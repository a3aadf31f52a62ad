package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bandscore/bandscore-api/internal/dto"
	"github.com/bandscore/bandscore-api/internal/models"
	"github.com/bandscore/bandscore-api/pkg/ai"
)

type stubChatRepo struct {
	saved []*models.ChatMessage
}

func (s *stubChatRepo) Save(ctx context.Context, message *models.ChatMessage) error {
	message.ID = uint(len(s.saved) + 1)
	s.saved = append(s.saved, message)
	return nil
}

func (s *stubChatRepo) ListByUser(ctx context.Context, userID uint, limit int) ([]models.ChatMessage, error) {
	messages := make([]models.ChatMessage, 0, len(s.saved))
	for _, message := range s.saved {
		if message.UserID == userID {
			messages = append(messages, *message)
		}
	}
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

type stubCompleter struct {
	reply    string
	err      error
	received []ai.ChatMessage
}

func (s *stubCompleter) Complete(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	s.received = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestChatSendStoresBothTurns(t *testing.T) {
	repo := &stubChatRepo{}
	completer := &stubCompleter{reply: "Focus on topic sentences."}
	svc := NewChatService(repo, completer, validator.New(), zerolog.Nop())

	exchange, err := svc.Send(context.Background(), 1, dto.ChatSendRequest{Message: "How do I improve coherence?"})
	require.NoError(t, err)

	require.Equal(t, models.ChatRoleUser, exchange.Message.Role)
	require.Equal(t, "How do I improve coherence?", exchange.Message.Content)
	require.Equal(t, models.ChatRoleAssistant, exchange.Reply.Role)
	require.Equal(t, "Focus on topic sentences.", exchange.Reply.Content)
	require.Len(t, repo.saved, 2)
}

func TestChatSendStripsMarkup(t *testing.T) {
	repo := &stubChatRepo{}
	completer := &stubCompleter{reply: "ok"}
	svc := NewChatService(repo, completer, validator.New(), zerolog.Nop())

	exchange, err := svc.Send(context.Background(), 1, dto.ChatSendRequest{Message: "<script>alert(1)</script>hello"})
	require.NoError(t, err)
	require.Equal(t, "hello", exchange.Message.Content)
}

func TestChatSendRejectsMarkupOnlyMessage(t *testing.T) {
	svc := NewChatService(&stubChatRepo{}, &stubCompleter{reply: "ok"}, validator.New(), zerolog.Nop())

	_, err := svc.Send(context.Background(), 1, dto.ChatSendRequest{Message: "<b></b>"})
	require.ErrorIs(t, err, ErrEmptyChatMessage)
}

func TestChatSendIncludesHistoryWindow(t *testing.T) {
	repo := &stubChatRepo{}
	completer := &stubCompleter{reply: "second answer"}
	svc := NewChatService(repo, completer, validator.New(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Send(ctx, 1, dto.ChatSendRequest{Message: "first question"})
	require.NoError(t, err)

	_, err = svc.Send(ctx, 1, dto.ChatSendRequest{Message: "second question"})
	require.NoError(t, err)

	require.Len(t, completer.received, 3)
	require.Equal(t, "first question", completer.received[0].Content)
	require.Equal(t, models.ChatRoleAssistant, completer.received[1].Role)
	require.Equal(t, "second question", completer.received[2].Content)
}

func TestChatSendPropagatesCompleterFailure(t *testing.T) {
	repo := &stubChatRepo{}
	completer := &stubCompleter{err: errors.New("rate limited")}
	svc := NewChatService(repo, completer, validator.New(), zerolog.Nop())

	_, err := svc.Send(context.Background(), 1, dto.ChatSendRequest{Message: "hello"})
	require.Error(t, err)
	require.Len(t, repo.saved, 1)
}

func TestChatSendWithoutCompleter(t *testing.T) {
	svc := NewChatService(&stubChatRepo{}, nil, validator.New(), zerolog.Nop())

	_, err := svc.Send(context.Background(), 1, dto.ChatSendRequest{Message: "hello"})
	require.ErrorIs(t, err, ErrTutorUnavailable)
}

func TestChatHistoryReturnsAllTurns(t *testing.T) {
	repo := &stubChatRepo{}
	svc := NewChatService(repo, &stubCompleter{reply: "answer"}, validator.New(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Send(ctx, 1, dto.ChatSendRequest{Message: "question"})
	require.NoError(t, err)

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, models.ChatRoleUser, history[0].Role)
	require.Equal(t, models.ChatRoleAssistant, history[1].Role)
}
