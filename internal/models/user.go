package models

import "time"

// User captures application-facing fields for a registered account. The
// username doubles as the account's e-mail address and never changes after
// registration.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
