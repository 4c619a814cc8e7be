package properties

import (
	"context"
	"fmt"
	"sync"

	"github.com/homespark/campaigner/pkg/models"
)

// MemorySource is an in-memory Source for tests and local development.
type MemorySource struct {
	mu         sync.RWMutex
	properties map[string]*models.Property
}

func NewMemorySource() *MemorySource {
	return &MemorySource{
		properties: make(map[string]*models.Property),
	}
}

// Add stores a property, replacing any existing one with the same id.
func (s *MemorySource) Add(property *models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.properties[property.ID] = property
}

func (s *MemorySource) Property(_ context.Context, id string) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	property, ok := s.properties[id]
	if !ok {
		return nil, fmt.Errorf("property %s: %w", id, ErrPropertyNotFound)
	}

	return property, nil
}
