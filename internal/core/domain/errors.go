package domain

import "errors"

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingFields      = errors.New("missing required fields")
	ErrTaskNotFound       = errors.New("task not found")
)
