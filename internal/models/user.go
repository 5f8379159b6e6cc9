package models

import "time"

// Settings holds per-user preferences.
type Settings struct {
	PreferredCurrency  Currency `json:"preferred_currency"`
	EmailNotifications bool     `json:"email_notifications"`
	PushNotifications  bool     `json:"push_notifications"`
}

// User represents a registered account. PasswordHash is a one-way bcrypt
// hash; the clear password is never stored. The struct is serialized only
// into the backing file, never handed to clients as-is.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Settings     Settings  `json:"settings"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Key returns the store key.
func (u User) Key() string { return u.ID }

// WithKey returns a copy of the user with the given key set.
func (u User) WithKey(key string) User {
	u.ID = key
	return u
}
