package model

import "time"

type Profile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"-"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Bio       string    `json:"bio"`
	Email     string    `gorm:"size:255" json:"email"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}
