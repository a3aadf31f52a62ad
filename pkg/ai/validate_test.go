package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validJudgePayload = `{
	"scores": {
		"task_achievement": 6.5,
		"coherence_cohesion": 7,
		"lexical_resource": 6,
		"grammatical_range": 6.5
	},
	"feedback": {
		"task_achievement": "Addresses the prompt.",
		"coherence_cohesion": "Well organised.",
		"lexical_resource": "Adequate range.",
		"grammatical_range": "Mostly accurate."
	},
	"corrections": {
		"grammar": [{"original": "he go", "correction": "he goes", "explanation": "subject-verb agreement"}],
		"vocabulary": [{"original": "very good", "suggestion": "excellent", "explanation": "stronger word choice"}],
		"structure": [{"issue": "abrupt conclusion", "suggestion": "summarise the argument", "example": "In conclusion, ..."}]
	}
}`

func TestParseJudgeResponseAcceptsFullPayload(t *testing.T) {
	result, err := parseJudgeResponse(validJudgePayload)
	require.NoError(t, err)
	require.InDelta(t, 6.5, result.Scores.TaskAchievement, 0.001)
	require.InDelta(t, 7.0, result.Scores.CoherenceCohesion, 0.001)
	require.Equal(t, "Well organised.", result.Feedback.CoherenceCohesion)
	require.Len(t, result.Corrections.Grammar, 1)
	require.Equal(t, "he go", result.Corrections.Grammar[0].Original)
	require.Len(t, result.Corrections.Structure, 1)
}

func TestParseJudgeResponseRejectsInvalidJSON(t *testing.T) {
	_, err := parseJudgeResponse("I would give this essay a 6.5 overall.")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedJudgeResponse))
}

func TestParseJudgeResponseRejectsMissingScoreKey(t *testing.T) {
	payload := strings.Replace(validJudgePayload, `"lexical_resource": 6,`, "", 1)
	_, err := parseJudgeResponse(payload)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedJudgeResponse))
}

func TestParseJudgeResponseRejectsMissingFeedbackKey(t *testing.T) {
	payload := strings.Replace(validJudgePayload, `"grammatical_range": "Mostly accurate."`, `"unrelated": "x"`, 1)
	_, err := parseJudgeResponse(payload)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedJudgeResponse))
}

func TestParseJudgeResponseRejectsMissingCorrections(t *testing.T) {
	payload := strings.Replace(validJudgePayload, `"corrections"`, `"suggestions"`, 1)
	_, err := parseJudgeResponse(payload)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedJudgeResponse))
}

func TestParseJudgeResponsePassesScoresThroughUnclamped(t *testing.T) {
	payload := strings.Replace(validJudgePayload, `"task_achievement": 6.5`, `"task_achievement": 11.5`, 1)
	result, err := parseJudgeResponse(payload)
	require.NoError(t, err)
	require.InDelta(t, 11.5, result.Scores.TaskAchievement, 0.001)
}

func TestBuildJudgePromptIncludesTaskContext(t *testing.T) {
	prompt := buildJudgePrompt(JudgeInput{
		EssayText: "Dear Brianna, thank you for your email.",
		TaskType:  "task1",
		Prompt:    "Write an email to Brianna about house-sitting.",
		Context:   "Brianna is a friend going abroad.",
	})

	require.Contains(t, prompt, "task1")
	require.Contains(t, prompt, "**TASK PROMPT:**")
	require.Contains(t, prompt, "house-sitting")
	require.Contains(t, prompt, "**STUDENT'S ESSAY:**")
	require.Contains(t, prompt, "Dear Brianna")
	require.NotContains(t, prompt, "**INSTRUCTIONS:**")
}
