package models

import (
	"time"
)

// ExploreHistory is the append-only ledger of discovery exposures, one row
// per (viewer, viewed) pair. Recency order drives the previous() cursor and
// the rows are bulk-deleted when the viewer exhausts the candidate pool.
type ExploreHistory struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index"`
	ViewedUserID uint      `gorm:"not null"`
	ViewedAt     time.Time `gorm:"autoCreateTime;index"`
}

func (ExploreHistory) TableName() string {
	return "explore_history"
}
