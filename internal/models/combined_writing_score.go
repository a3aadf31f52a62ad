package models

import "time"

// CombinedWritingScore is the weighted merge of one task1 and one task2
// score for the same user. The composite unique index on the score pair
// guarantees at most one combined record per (task1, task2) pair even when
// two evaluations finish concurrently.
type CombinedWritingScore struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Task1ScoreID  uint      `gorm:"not null;uniqueIndex:idx_combined_score_pair" json:"task1_score_id"`
	Task2ScoreID  uint      `gorm:"not null;uniqueIndex:idx_combined_score_pair" json:"task2_score_id"`
	CombinedScore float64   `gorm:"not null" json:"combined_score"`
	CreatedAt     time.Time `json:"created_at"`

	Task1Score WritingScore `gorm:"foreignKey:Task1ScoreID" json:"task1_score"`
	Task2Score WritingScore `gorm:"foreignKey:Task2ScoreID" json:"task2_score"`
}
