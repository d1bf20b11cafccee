package models

import (
	"time"
)

type ChatMessage struct {
	ID         uint       `gorm:"primaryKey"`
	SenderID   uint       `gorm:"not null;index:idx_chat_pair"`
	ReceiverID uint       `gorm:"not null;index:idx_chat_pair"`
	Content    string     `gorm:"type:varchar(2000)"`
	Type       string     `gorm:"type:varchar(10);default:'TEXT'"`
	SentAt     time.Time  `gorm:"autoCreateTime;index"`
	Delivered  bool       `gorm:"default:false"`
	Seen       bool       `gorm:"default:false"`
	SeenAt     *time.Time `gorm:"default:NULL"`
	Deleted    bool       `gorm:"default:false"`
}

// Message type constants
const (
	MessageTypeText  = "TEXT"
	MessageTypeImage = "IMAGE"
	MessageTypeVideo = "VIDEO"
)

func (ChatMessage) TableName() string {
	return "chat_messages"
}
