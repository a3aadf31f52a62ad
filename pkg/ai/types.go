package ai

import (
	"context"
	"errors"
)

// ErrJudgeUnavailable indicates the judge could not be reached or did not
// answer in time.
var ErrJudgeUnavailable = errors.New("essay judge unavailable")

// ErrMalformedJudgeResponse indicates the judge answered with something
// other than the required response shape.
var ErrMalformedJudgeResponse = errors.New("malformed judge response")

// JudgeInput carries one essay and its task metadata to the judge.
type JudgeInput struct {
	EssayText    string
	TaskType     string
	Prompt       string
	Context      string
	Instructions string
	Source       string
}

// CriterionScores holds the four raw band scores returned by the judge.
type CriterionScores struct {
	TaskAchievement   float64 `json:"task_achievement"`
	CoherenceCohesion float64 `json:"coherence_cohesion"`
	LexicalResource   float64 `json:"lexical_resource"`
	GrammaticalRange  float64 `json:"grammatical_range"`
}

// CriterionFeedback holds the free-text feedback for each criterion.
type CriterionFeedback struct {
	TaskAchievement   string `json:"task_achievement"`
	CoherenceCohesion string `json:"coherence_cohesion"`
	LexicalResource   string `json:"lexical_resource"`
	GrammaticalRange  string `json:"grammatical_range"`
}

// TextPosition is one occurrence of a flagged substring inside the essay,
// expressed as half-open rune offsets.
type TextPosition struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// GrammarCorrection flags a grammatical error with its fix.
type GrammarCorrection struct {
	Original    string         `json:"original"`
	Correction  string         `json:"correction"`
	Explanation string         `json:"explanation"`
	Positions   []TextPosition `json:"positions,omitempty"`
}

// VocabularyCorrection suggests a better word or phrase.
type VocabularyCorrection struct {
	Original    string         `json:"original"`
	Suggestion  string         `json:"suggestion"`
	Explanation string         `json:"explanation"`
	Positions   []TextPosition `json:"positions,omitempty"`
}

// StructureCorrection describes a structural issue. Structure entries never
// carry text positions.
type StructureCorrection struct {
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	Example    string `json:"example"`
}

// Corrections groups the three correction categories of a judge result.
type Corrections struct {
	Grammar    []GrammarCorrection    `json:"grammar"`
	Vocabulary []VocabularyCorrection `json:"vocabulary"`
	Structure  []StructureCorrection  `json:"structure"`
}

// JudgeResult is the validated, strongly-shaped evaluation of one essay.
type JudgeResult struct {
	Scores      CriterionScores   `json:"scores"`
	Feedback    CriterionFeedback `json:"feedback"`
	Corrections Corrections       `json:"corrections"`
	Raw         map[string]interface{} `json:"raw,omitempty"`
}

// EssayJudge describes an external service able to evaluate an essay.
type EssayJudge interface {
	Judge(ctx context.Context, input JudgeInput) (JudgeResult, error)
}
