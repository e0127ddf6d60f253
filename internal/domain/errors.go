package domain

import "errors"

var (
	ErrConflictNotFound = errors.New("conflict not found")
	ErrInvalidState     = errors.New("invalid conflict state")
	ErrPersistence      = errors.New("persistence failure")
	ErrRoomNotFound     = errors.New("room not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrValidation       = errors.New("validation failed")
)
