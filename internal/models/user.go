package models

import "time"

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	IsActive     bool      `json:"isActive"`
	IsAdmin      bool      `json:"isAdmin"`
	FullName     string    `json:"fullName,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Department   string    `json:"department,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Username   *string `json:"username"`
	Email      *string `json:"email"`
	FullName   *string `json:"fullName"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
}
