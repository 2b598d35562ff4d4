package shared

import (
	"github.com/google/uuid"
)

// Minimal snapshots for command read operations
type ProductSnapshot struct {
	ID   uuid.UUID
	Name string
}
