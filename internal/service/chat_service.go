package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/bandscore/bandscore-api/internal/dto"
	"github.com/bandscore/bandscore-api/internal/models"
	"github.com/bandscore/bandscore-api/internal/repository"
	"github.com/bandscore/bandscore-api/pkg/ai"
)

// ErrEmptyChatMessage indicates the message contains nothing after sanitization.
var ErrEmptyChatMessage = errors.New("chat message is empty")

// ErrTutorUnavailable indicates no tutor backend is configured.
var ErrTutorUnavailable = errors.New("tutor unavailable")

const chatHistoryWindow = 20

// ChatService exposes the tutor conversation operations.
type ChatService interface {
	Send(ctx context.Context, userID uint, payload dto.ChatSendRequest) (dto.ChatExchangeResponse, error)
	History(ctx context.Context, userID uint) ([]dto.ChatMessageResponse, error)
}

type chatService struct {
	messages  repository.ChatRepository
	completer ai.ChatCompleter
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewChatService constructs the tutor chat service.
func NewChatService(chatRepo repository.ChatRepository, completer ai.ChatCompleter, validate *validator.Validate, logger zerolog.Logger) ChatService {
	return &chatService{
		messages:  chatRepo,
		completer: completer,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "chat_service").Logger(),
	}
}

// Send stores the user's message, asks the tutor for a reply using the recent
// conversation window and stores that reply as well.
func (s *chatService) Send(ctx context.Context, userID uint, payload dto.ChatSendRequest) (dto.ChatExchangeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChatExchangeResponse{}, err
	}
	if s.completer == nil {
		return dto.ChatExchangeResponse{}, ErrTutorUnavailable
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Message))
	if content == "" {
		return dto.ChatExchangeResponse{}, ErrEmptyChatMessage
	}

	userMessage := models.ChatMessage{
		UserID:  userID,
		Role:    models.ChatRoleUser,
		Content: content,
	}
	if err := s.messages.Save(ctx, &userMessage); err != nil {
		return dto.ChatExchangeResponse{}, err
	}

	history, err := s.messages.ListByUser(ctx, userID, chatHistoryWindow)
	if err != nil {
		return dto.ChatExchangeResponse{}, err
	}

	conversation := make([]ai.ChatMessage, 0, len(history))
	for _, message := range history {
		conversation = append(conversation, ai.ChatMessage{Role: message.Role, Content: message.Content})
	}

	reply, err := s.completer.Complete(ctx, conversation)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("tutor completion failed")
		return dto.ChatExchangeResponse{}, err
	}

	assistantMessage := models.ChatMessage{
		UserID:  userID,
		Role:    models.ChatRoleAssistant,
		Content: reply,
	}
	if err := s.messages.Save(ctx, &assistantMessage); err != nil {
		return dto.ChatExchangeResponse{}, err
	}

	return dto.ChatExchangeResponse{
		Message: dto.NewChatMessageResponse(userMessage),
		Reply:   dto.NewChatMessageResponse(assistantMessage),
	}, nil
}

func (s *chatService) History(ctx context.Context, userID uint) ([]dto.ChatMessageResponse, error) {
	messages, err := s.messages.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, dto.NewChatMessageResponse(message))
	}

	return responses, nil
}
