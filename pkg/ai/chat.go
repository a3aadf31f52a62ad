package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const tutorSystemMessage = `You are an expert English and IELTS tutor with extensive experience. You can:
1. Answer questions about English grammar, vocabulary, and usage
2. Explain IELTS exam formats and requirements
3. Provide IELTS preparation strategies
4. Give feedback on English writing and speaking
5. Help with IELTS reading and listening practice
6. Share study tips and resources for English learning

Please provide clear, detailed, and helpful responses to help users improve their English and prepare for IELTS.`

// ChatMessage is one turn of a tutor conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatCompleter produces a tutor reply for a conversation.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// OpenAIChat implements ChatCompleter against the OpenAI chat completion API.
type OpenAIChat struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewOpenAIChat builds a tutor chat client.
func NewOpenAIChat(apiKey, model string, logger zerolog.Logger) (*OpenAIChat, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = "gpt-3.5-turbo"
	}

	return &OpenAIChat{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}, nil
}

// Complete prepends the tutor system message and requests a reply.
func (c *OpenAIChat) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   1000,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)+1),
	}

	request.Messages = append(request.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: tutorSystemMessage,
	})
	for _, message := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    message.Role,
			Content: message.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
