package dto

import (
	"encoding/json"
	"time"

	"github.com/bandscore/bandscore-api/internal/models"
	"github.com/bandscore/bandscore-api/pkg/ai"
)

// ScoreEssayRequest is the payload for submitting an essay for evaluation.
type ScoreEssayRequest struct {
	EssayText    string `json:"essay_text" validate:"required"`
	TaskType     string `json:"task_type" validate:"required,oneof=task1 task2"`
	Prompt       string `json:"prompt"`
	Context      string `json:"context"`
	Instructions string `json:"instructions"`
	Source       string `json:"source"`
	TimeSpent    *int   `json:"time_spent" validate:"omitempty,min=0"`
}

// WritingScoreResponse is the API shape of one evaluated essay.
type WritingScoreResponse struct {
	ID        uint   `json:"id"`
	TaskType  string `json:"task_type"`
	WordCount int    `json:"word_count"`
	TimeSpent *int   `json:"time_spent,omitempty"`

	TaskAchievement   float64 `json:"task_achievement"`
	CoherenceCohesion float64 `json:"coherence_cohesion"`
	LexicalResource   float64 `json:"lexical_resource"`
	GrammaticalRange  float64 `json:"grammatical_range"`

	OverallScore     float64 `json:"overall_score"`
	WordCountPenalty float64 `json:"word_count_penalty"`
	TimePenalty      float64 `json:"time_penalty"`
	AdjustedScore    float64 `json:"adjusted_score"`

	TaskAchievementFeedback   string `json:"task_achievement_feedback,omitempty"`
	CoherenceCohesionFeedback string `json:"coherence_cohesion_feedback,omitempty"`
	LexicalResourceFeedback   string `json:"lexical_resource_feedback,omitempty"`
	GrammaticalRangeFeedback  string `json:"grammatical_range_feedback,omitempty"`

	Corrections *ai.Corrections `json:"corrections,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewWritingScoreResponse converts a persisted score into its API shape.
func NewWritingScoreResponse(score models.WritingScore) WritingScoreResponse {
	response := WritingScoreResponse{
		ID:                        score.ID,
		TaskType:                  string(score.TaskType),
		WordCount:                 score.WordCount,
		TimeSpent:                 score.TimeSpent,
		TaskAchievement:           score.TaskAchievement,
		CoherenceCohesion:         score.CoherenceCohesion,
		LexicalResource:           score.LexicalResource,
		GrammaticalRange:          score.GrammaticalRange,
		OverallScore:              score.OverallScore,
		WordCountPenalty:          score.WordCountPenalty,
		TimePenalty:               score.TimePenalty,
		AdjustedScore:             score.AdjustedScore,
		TaskAchievementFeedback:   score.TaskAchievementFeedback,
		CoherenceCohesionFeedback: score.CoherenceCohesionFeedback,
		LexicalResourceFeedback:   score.LexicalResourceFeedback,
		GrammaticalRangeFeedback:  score.GrammaticalRangeFeedback,
		CreatedAt:                 score.CreatedAt,
	}

	if len(score.Corrections) > 0 {
		var corrections ai.Corrections
		if err := json.Unmarshal(score.Corrections, &corrections); err == nil {
			response.Corrections = &corrections
		}
	}

	return response
}

// CombinedScoreResponse is the API shape of a weighted task pair score.
type CombinedScoreResponse struct {
	ID            uint      `json:"id"`
	Task1ScoreID  uint      `json:"task1_score_id"`
	Task2ScoreID  uint      `json:"task2_score_id"`
	Task1Score    float64   `json:"task1_score"`
	Task2Score    float64   `json:"task2_score"`
	CombinedScore float64   `json:"combined_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewCombinedScoreResponse converts a persisted combined score into its API shape.
func NewCombinedScoreResponse(combined models.CombinedWritingScore) CombinedScoreResponse {
	return CombinedScoreResponse{
		ID:            combined.ID,
		Task1ScoreID:  combined.Task1ScoreID,
		Task2ScoreID:  combined.Task2ScoreID,
		Task1Score:    combined.Task1Score.AdjustedScore,
		Task2Score:    combined.Task2Score.AdjustedScore,
		CombinedScore: combined.CombinedScore,
		CreatedAt:     combined.CreatedAt,
	}
}
