package dto

import "time"

// UpdateProfileRequest partial patch of the caller's profile. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	FullName   *string `json:"full_name" validate:"omitempty,min=1"`
	Phone      *string `json:"phone"`
	AvatarURL  *string `json:"avatar_url" validate:"omitempty,url"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
}

// ProfileResponse view of a user profile.
type ProfileResponse struct {
	UserID     string    `json:"user_id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
