package model

import "gorm.io/gorm"

type WaitlistEntry struct {
	gorm.Model
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Name         string `json:"name"`
	ReferralCode string `json:"referral_code" gorm:"size:36"`
	Position     int    `json:"position"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}
