package id

import "github.com/google/uuid"

// Generator produces opaque identifiers.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewUUIDGenerator returns a Generator emitting random (v4) UUIDs.
func NewUUIDGenerator() Generator { return uuidGenerator{} }

func (uuidGenerator) NewID() string { return uuid.NewString() }
