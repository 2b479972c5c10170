package model

import "time"

// User represents a user in the system
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Name         *string   `json:"name"`
	Phone        *string   `json:"phone"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the projection returned by the auth endpoints.
type PublicUser struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      *string    `json:"name"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// UserSummary is the contact projection used by the admin listings.
type UserSummary struct {
	ID        int64     `json:"id"`
	Name      *string   `json:"name"`
	Phone     *string   `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserDetail aggregates a user with everything they submitted.
type UserDetail struct {
	User          UserSummary    `json:"user"`
	Results       []Result       `json:"results"`
	Consultations []Consultation `json:"consultations"`
}

// Public strips credentials from u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
}

// Identity is what a verified bearer token carries.
type Identity struct {
	UserID int64
	Email  string
}
