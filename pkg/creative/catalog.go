package creative

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/homespark/campaigner/pkg/models"
)

// ErrTemplateNotFound indicates no creative template exists for the id.
var ErrTemplateNotFound = errors.New("template not found")

// Catalog resolves creative templates referenced by campaign configs.
type Catalog interface {
	Template(ctx context.Context, id string) (*models.CreativeTemplate, error)
}

// MemoryCatalog is an in-memory Catalog for tests and seeded deployments.
type MemoryCatalog struct {
	mu        sync.RWMutex
	templates map[string]*models.CreativeTemplate
}

func NewMemoryCatalog(templates ...*models.CreativeTemplate) *MemoryCatalog {
	catalog := &MemoryCatalog{
		templates: make(map[string]*models.CreativeTemplate, len(templates)),
	}

	for _, template := range templates {
		catalog.templates[template.ID] = template
	}

	return catalog
}

// Add stores a template, replacing any existing one with the same id.
func (c *MemoryCatalog) Add(template *models.CreativeTemplate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.templates[template.ID] = template
}

func (c *MemoryCatalog) Template(_ context.Context, id string) (*models.CreativeTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	template, ok := c.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %s: %w", id, ErrTemplateNotFound)
	}

	return template, nil
}
