package creative

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/homespark/campaigner/pkg/models"
)

// LoadCatalog reads a JSON array of creative templates from disk and returns
// an in-memory catalog over them. An empty path yields an empty catalog.
func LoadCatalog(path string) (*MemoryCatalog, error) {
	if path == "" {
		return NewMemoryCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template catalog %s: %w", path, err)
	}

	var templates []*models.CreativeTemplate
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog %s: %w", path, err)
	}

	return NewMemoryCatalog(templates...), nil
}
