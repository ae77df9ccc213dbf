package model

import "time"

// Buyer represents a registered marketplace customer. The email doubles as
// the correlation fallback key for asynchronous payment notifications.
type Buyer struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
