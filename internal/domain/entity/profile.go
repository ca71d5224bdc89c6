package entity

import "time"

// Profile holds the contact and display attributes of a user (1:1 with User).
type Profile struct {
	UserID     string
	FullName   string
	Phone      string
	AvatarURL  string
	Address    string
	City       string
	State      string
	PostalCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
