package roster

import (
	"context"
	"sync"
)

// InMemoryRepository keeps the encoded record in memory. It round-trips
// through the same codec as the durable stores.
type InMemoryRepository struct {
	mu   sync.RWMutex
	data []byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Load decodes the stored record
func (r *InMemoryRepository) Load(_ context.Context, _ LoadInput) (*LoadOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.data == nil {
		return &LoadOutput{Record: &Record{}}, nil
	}

	record, err := Decode(r.data)
	if err != nil {
		return nil, err
	}
	return &LoadOutput{Record: record, Found: true}, nil
}

// Save encodes and stores the record
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	data, err := Encode(input.Record)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data

	return &SaveOutput{Bytes: len(data)}, nil
}

// SetRaw replaces the stored bytes without validation
func (r *InMemoryRepository) SetRaw(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append([]byte(nil), data...)
}
