package id

import (
	"github.com/google/uuid"
)

// Generator creates opaque identifiers for cascade runs and requests.
type Generator interface {
	NewID() string
}

// UUIDGenerator issues time-ordered UUIDv7 values, falling back to v4 if the
// clock source fails.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewID() string {
	if v, err := uuid.NewV7(); err == nil {
		return v.String()
	}
	return uuid.NewString()
}

// Static always returns the same id; useful in tests that assert on log fields.
type Static string

func (s Static) NewID() string {
	return string(s)
}
