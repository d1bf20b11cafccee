package models

import (
	"time"

	"github.com/rishtahub/rishta_backend/pkg/utils"
	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;type:varchar(255);not null"`
	PhoneNumber  string    `gorm:"type:varchar(20)"`
	PasswordHash string    `gorm:"type:varchar(255)"`
	PublicID     string    `gorm:"uniqueIndex;type:varchar(8)"`
	Active       bool      `gorm:"default:true;not null"`
	LastActivity time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate hook to generate PublicID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.PublicID == "" {
		u.PublicID = utils.GenerateRandomID(8)
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
