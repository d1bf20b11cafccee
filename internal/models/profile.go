package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds the matrimonial profile of a user. Gender, DateOfBirth and
// PhotoURL stay optional until the profile is completed; the explore feed
// skips profiles that are still missing them.
type Profile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// Basic details
	FullName    string     `gorm:"type:varchar(255)"`
	Gender      string     `gorm:"type:varchar(10)"`
	DateOfBirth *time.Time `gorm:"type:date"`
	Height      float64
	City        string `gorm:"type:varchar(100)"`

	// Religious details
	Religion      string `gorm:"type:varchar(50)"`
	Community     string `gorm:"type:varchar(100)"`
	Caste         string `gorm:"type:varchar(100)"`
	ManglikStatus string `gorm:"type:varchar(30)"`

	// Education and career
	HighestEducation string `gorm:"type:varchar(100)"`
	Occupation       string `gorm:"type:varchar(100)"`
	AnnualIncome     int64

	// Family
	FamilyType   string `gorm:"type:varchar(30)"`
	FamilyValues string `gorm:"type:varchar(30)"`

	// Lifestyle
	DietPreference string `gorm:"type:varchar(30)"`
	Drinking       bool
	Smoking        bool

	AboutMe  string `gorm:"type:varchar(1000)"`
	PhotoURL string `gorm:"type:varchar(500)"`

	Latitude  float64 `gorm:"type:float"`
	Longitude float64 `gorm:"type:float"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// BeforeSave hook for validation
func (p *Profile) BeforeSave(tx *gorm.DB) error {
	// Gender stays empty until the user picks one
	if p.Gender != "" && p.Gender != GenderMale && p.Gender != GenderFemale {
		return gorm.ErrInvalidData
	}

	if p.DateOfBirth != nil && p.DateOfBirth.After(time.Now()) {
		return gorm.ErrInvalidData
	}

	return nil
}

// Complete reports whether the profile carries everything the discovery
// feed needs to show it to other users.
func (p *Profile) Complete() bool {
	return p.Gender != "" && p.DateOfBirth != nil && p.PhotoURL != ""
}

// Age computes full years from the date of birth at the given time.
func (p *Profile) Age(now time.Time) int {
	if p.DateOfBirth == nil {
		return 0
	}
	dob := *p.DateOfBirth
	years := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func (Profile) TableName() string {
	return "user_profiles"
}
