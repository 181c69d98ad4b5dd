package models

import "time"

// User is a registered account able to hold a session.
type User struct {
	ID           int64     `json:"-"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
