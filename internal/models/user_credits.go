package models

import "time"

// UserCredits tracks the consumable evaluation credits of one user.
// The balance is only ever changed through conditional updates so it can
// never go negative.
type UserCredits struct {
	UserID           uint      `gorm:"primaryKey" json:"user_id"`
	AvailableCredits int       `gorm:"not null;default:0" json:"available_credits"`
	LastUpdated      time.Time `json:"last_updated"`
}
