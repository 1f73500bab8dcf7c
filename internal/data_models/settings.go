package dto

type PreferencesRequest struct {
	EmailNotifications bool `json:"email_notifications"`
	PushNotifications  bool `json:"push_notifications"`
	DarkMode           bool `json:"dark_mode"`
}

type ProfileRequest struct {
	FullName  string  `json:"full_name" validate:"max=255"`
	Bio       string  `json:"bio" validate:"max=2000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}
