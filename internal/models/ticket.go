package models

import (
	"time"
)

type SupportTicket struct {
	ID        uint      `gorm:"primaryKey"`
	Reference string    `gorm:"uniqueIndex;type:varchar(36);not null"`
	UserID    uint      `gorm:"not null;index"`
	Subject   string    `gorm:"type:varchar(200);not null"`
	Message   string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(20);default:'open'"`
	Priority  string    `gorm:"type:varchar(10);default:'normal'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Ticket status constants
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusClosed     = "closed"
)

// Ticket priority constants
const (
	TicketPriorityLow    = "low"
	TicketPriorityNormal = "normal"
	TicketPriorityHigh   = "high"
)

func (SupportTicket) TableName() string {
	return "support_tickets"
}
