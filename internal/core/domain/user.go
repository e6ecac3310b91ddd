package domain

import "time"

// User models a registered account. Email is stored lowercase and is unique
// across all users; PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Claims is the identity asserted by a verified auth token.
type Claims struct {
	UserID string
	Email  string
}
