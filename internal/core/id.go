package core

import "github.com/google/uuid"

// NewID generates a UUID v7 (time-ordered), used for request ids.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
