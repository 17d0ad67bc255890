package models

import "time"

// User is a stored account. PasswordHash is a bcrypt string and must never
// leave the server.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
