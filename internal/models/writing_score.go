package models

import (
	"time"

	"gorm.io/datatypes"
)

// TaskType identifies which of the two IELTS writing tasks an essay answers.
type TaskType string

const (
	// TaskType1 is the short task: letters, emails, chart descriptions.
	TaskType1 TaskType = "task1"
	// TaskType2 is the long-form discursive essay task.
	TaskType2 TaskType = "task2"
)

// Valid reports whether the task type is one of the two known tasks.
func (t TaskType) Valid() bool {
	return t == TaskType1 || t == TaskType2
}

// MinWords returns the minimum word count expected for the task.
func (t TaskType) MinWords() int {
	if t == TaskType1 {
		return 150
	}
	return 250
}

// TimeLimit returns the allotted writing time for the task.
func (t TaskType) TimeLimit() time.Duration {
	if t == TaskType1 {
		return 20 * time.Minute
	}
	return 40 * time.Minute
}

// WritingScore is the persisted outcome of one essay evaluation.
type WritingScore struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UserID    uint     `gorm:"not null;index" json:"user_id"`
	TaskType  TaskType `gorm:"size:20;not null" json:"task_type"`
	EssayText string   `gorm:"type:text;not null" json:"essay_text"`
	WordCount int      `gorm:"not null" json:"word_count"`
	TimeSpent *int     `json:"time_spent"`

	TaskAchievement   float64 `gorm:"not null" json:"task_achievement"`
	CoherenceCohesion float64 `gorm:"not null" json:"coherence_cohesion"`
	LexicalResource   float64 `gorm:"not null" json:"lexical_resource"`
	GrammaticalRange  float64 `gorm:"not null" json:"grammatical_range"`

	OverallScore     float64 `gorm:"not null" json:"overall_score"`
	WordCountPenalty float64 `gorm:"not null" json:"word_count_penalty"`
	TimePenalty      float64 `gorm:"not null" json:"time_penalty"`
	AdjustedScore    float64 `gorm:"not null" json:"adjusted_score"`

	TaskAchievementFeedback   string `gorm:"type:text" json:"task_achievement_feedback"`
	CoherenceCohesionFeedback string `gorm:"type:text" json:"coherence_cohesion_feedback"`
	LexicalResourceFeedback   string `gorm:"type:text" json:"lexical_resource_feedback"`
	GrammaticalRangeFeedback  string `gorm:"type:text" json:"grammatical_range_feedback"`

	// Corrections stores the judge's correction lists with highlight
	// positions attached, serialized as JSON.
	Corrections datatypes.JSON `json:"corrections"`

	CreatedAt time.Time `json:"created_at"`
}
