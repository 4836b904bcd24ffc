// Package roster provides persistence for the creature roster record
package roster

//go:generate mockgen -destination=mock/mock_repository.go -package=rostermock github.com/KirkDiggler/doodle-garden/internal/repositories/roster Repository

import (
	"context"
)

// DefaultKey is the store key the roster record lives under
const DefaultKey = "garden:roster"

// Repository stores the whole roster as one record under one key
type Repository interface {
	// Load reads the roster record
	// Returns Found=false with an empty record when the key is missing
	// Returns errors.DataLoss if the stored record is malformed
	// Returns errors.Internal for storage failures
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save replaces the roster record in a single all-or-nothing write
	// Returns errors.InvalidArgument for a nil record
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}

// LoadInput defines the input for loading the roster
type LoadInput struct{}

// LoadOutput defines the output for loading the roster
type LoadOutput struct {
	Record *Record
	Found  bool
}

// SaveInput defines the input for saving the roster
type SaveInput struct {
	Record *Record
}

// SaveOutput defines the output for saving the roster
type SaveOutput struct {
	Bytes int
}
