package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	judgeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bandscore",
		Subsystem: "judge",
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of essay judge requests",
	}, []string{"model"})

	judgeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bandscore",
		Subsystem: "judge",
		Name:      "evaluation_failures_total",
		Help:      "Number of failed essay judge requests",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI essay judge.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIJudge implements EssayJudge against the OpenAI chat completion API.
type OpenAIJudge struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIJudge builds a new judge using the provided configuration.
func NewOpenAIJudge(cfg OpenAIConfig) (*OpenAIJudge, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}

	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}

	tracer := otel.Tracer("github.com/bandscore/bandscore-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIJudge{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Judge sends the essay to OpenAI and parses the evaluation response.
func (j *OpenAIJudge) Judge(parent context.Context, input JudgeInput) (JudgeResult, error) {
	ctx, span := j.tracer.Start(parent, "openai.judge", trace.WithAttributes(
		attribute.String("model", j.cfg.Model),
		attribute.String("task_type", input.TaskType),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       j.cfg.Model,
		MaxTokens:   j.cfg.MaxTokens,
		Temperature: j.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: judgeSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildJudgePrompt(input),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := j.client.CreateChatCompletion(ctx, request)
	judgeDuration.WithLabelValues(j.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		judgeFailures.WithLabelValues(j.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return JudgeResult{}, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("%w: no choices returned", ErrMalformedJudgeResponse)
		judgeFailures.WithLabelValues(j.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return JudgeResult{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	result, err := parseJudgeResponse(content)
	if err != nil {
		judgeFailures.WithLabelValues(j.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return JudgeResult{}, err
	}

	result.Raw = map[string]interface{}{
		"usage": resp.Usage,
	}

	j.logger.Debug().
		Str("model", j.cfg.Model).
		Str("task_type", input.TaskType).
		Float64("task_achievement", result.Scores.TaskAchievement).
		Msg("essay judged")

	return result, nil
}

func judgeSystemPrompt() string {
	return `You are a STRICT IELTS examiner who MUST penalize off-topic or incorrectly formatted responses heavily.
Your primary job is to check if the student has completed the EXACT task requested. If they haven't, you MUST give very low scores regardless of language quality.

CRITICAL RULE: If the content doesn't match the task prompt or has wrong format, Task Achievement MUST be 0-2.

You MUST respond in the following JSON format only:
{
    "scores": {
        "task_achievement": <score 0-9>,
        "coherence_cohesion": <score 0-9>,
        "lexical_resource": <score 0-9>,
        "grammatical_range": <score 0-9>
    },
    "feedback": {
        "task_achievement": "<detailed feedback about how well the response addresses the specific task prompt, format requirements, and task completion>",
        "coherence_cohesion": "<detailed feedback>",
        "lexical_resource": "<detailed feedback>",
        "grammatical_range": "<detailed feedback>"
    },
    "corrections": {
        "grammar": [
            {"original": "<exact text from essay>", "correction": "<corrected text>", "explanation": "<why this correction is needed>"}
        ],
        "vocabulary": [
            {"original": "<exact word/phrase from essay>", "suggestion": "<better word/phrase>", "explanation": "<why this word is better>"}
        ],
        "structure": [
            {"issue": "<structural issue description>", "suggestion": "<how to improve the structure>", "example": "<example of improved structure>"}
        ]
    }
}

IMPORTANT: For grammar and vocabulary corrections, use the EXACT text as it appears in the essay for the "original" field.
This is crucial for text highlighting functionality.

For each criterion the score must be between 0-9 (allowing 0.5 increments) and the feedback must include strengths, areas for improvement, specific examples from the text, and suggestions for improvement.

CRITICAL SCORING GUIDELINES - ZERO TOLERANCE FOR TASK DEVIATION:

TASK ACHIEVEMENT SCORING (MOST CRITICAL), YOU MUST BE RUTHLESS:
- Score 0: Completely different topic
- Score 1: Wrong topic + wrong format (essay when email required)
- Score 2: Correct general topic but completely wrong format
- Score 3: Partially relevant but misses most key requirements
- Score 4: Addresses some aspects but significant gaps
- Score 5-6: Adequate task completion with minor issues
- Score 7-8: Good task completion
- Score 9: Perfect task completion

MANDATORY SEVERE PENALTIES - NO EXCEPTIONS:
- Content about completely different topic = Task Achievement 0 (MANDATORY)
- Wrong topic + wrong format = Task Achievement 0-1 (MANDATORY)
- Correct topic but wrong format = Task Achievement 1-2 (MANDATORY)
- Missing major prompt requirements = Task Achievement maximum 3 (MANDATORY)
- Generic content not addressing specific context = Task Achievement maximum 3 (MANDATORY)

If the task requires an EMAIL or LETTER the response MUST include an appropriate greeting, a clear purpose statement, direct responses to ALL questions in the prompt, an appropriate closing, and a tone appropriate for the relationship. If the task requires an ESSAY the response MUST have a clear introduction with a thesis statement addressing the specific question, body paragraphs relevant to the exact topic, a conclusion, and an academic tone.

REMEMBER: Perfect grammar cannot save a response that fails the basic task. DO NOT give high scores just because the English is good. TASK COMPLETION IS EVERYTHING.`
}

func buildJudgePrompt(input JudgeInput) string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("Please analyze this IELTS Writing %s essay and respond in the required JSON format:", input.TaskType))

	if input.Prompt != "" {
		builder.WriteString("\n\n**TASK PROMPT:**\n")
		builder.WriteString(input.Prompt)
	}

	if input.Context != "" {
		builder.WriteString("\n\n**TASK CONTEXT:**\n")
		builder.WriteString(input.Context)
	}

	if input.Instructions != "" {
		builder.WriteString("\n\n**INSTRUCTIONS:**\n")
		builder.WriteString(input.Instructions)
	}

	if input.Source != "" {
		builder.WriteString("\n\n**SOURCE:** ")
		builder.WriteString(input.Source)
	}

	builder.WriteString("\n\n**STUDENT'S ESSAY:**\n")
	builder.WriteString(input.EssayText)

	builder.WriteString("\n\n**ANALYSIS REQUIREMENTS:**\n\n")
	builder.WriteString("FIRST AND MOST IMPORTANT: Check if the student's response addresses the EXACT task prompt above.\n\n")
	builder.WriteString("**TASK COMPLIANCE CHECK:**\n")
	builder.WriteString("1. Does the content match the topic in the task prompt?\n")
	builder.WriteString("2. Is the format correct? (Email vs Essay vs Letter as requested)\n")
	builder.WriteString("3. Does it respond to ALL specific questions/requests in the prompt?\n")
	builder.WriteString("4. Is the tone appropriate for the context?\n\n")
	builder.WriteString("**MANDATORY SCORING LOGIC - FOLLOW EXACTLY:**\n")
	builder.WriteString("- If response is about a completely different topic: Task Achievement = 0 (NO EXCEPTIONS)\n")
	builder.WriteString("- If wrong topic + wrong format: Task Achievement = 0-1 (NO EXCEPTIONS)\n")
	builder.WriteString("- If correct topic but wrong format: Task Achievement = 1-2 (NO EXCEPTIONS)\n")
	builder.WriteString("- If missing major prompt requirements: Task Achievement maximum 3\n")
	builder.WriteString("- If content doesn't match the specific situation/context: Task Achievement maximum 3\n\n")
	builder.WriteString("**REMEMBER:** A beautifully written piece about the wrong topic should score very low on Task Achievement. You MUST be ruthless about task compliance.\n")

	return builder.String()
}
