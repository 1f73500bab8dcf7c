package model

import "time"

type Preferences struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"-"`
	UserID             string    `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	EmailNotifications bool      `gorm:"not null" json:"email_notifications"`
	PushNotifications  bool      `gorm:"not null" json:"push_notifications"`
	DarkMode           bool      `gorm:"not null" json:"dark_mode"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultPreferences is what a user sees before saving anything.
func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:             userID,
		EmailNotifications: true,
		PushNotifications:  false,
		DarkMode:           false,
	}
}
