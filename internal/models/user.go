package models

import "time"

// User's Password holds the argon2id hash, never the plaintext.
// It must not leak into any response body; the delivery layer
// serializes its own view types instead of this struct.
type User struct {
	ID        string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
