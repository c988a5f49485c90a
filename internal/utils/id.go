package util

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7, so ordering by id follows creation order.
func NewID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// EnsureID assigns a new id when id is nil.
func EnsureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = NewID()
	}
}
