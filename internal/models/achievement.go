package models

import "time"

// Achievement marks a badge earned by a learner.
type Achievement struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index" json:"user_id"`
	Code     string    `gorm:"size:64;not null" json:"code"`
	Title    string    `gorm:"size:255" json:"title"`
	EarnedAt time.Time `gorm:"not null" json:"earned_at"`
}
