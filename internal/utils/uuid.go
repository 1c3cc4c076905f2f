package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered identifiers.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random v4 when the
// clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// FileName returns a collision-free name for an uploaded file that keeps the
// lower-cased extension of original.
func (g *UUIDGenerator) FileName(original string) string {
	return g.Generate() + strings.ToLower(filepath.Ext(original))
}
