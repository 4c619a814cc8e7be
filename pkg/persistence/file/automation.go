package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/persistence"
)

// AutomationRepository handles automation-related file operations.
type AutomationRepository struct {
	root string
}

// NewAutomationRepository creates a new automation repository.
func NewAutomationRepository(root string) *AutomationRepository {
	return &AutomationRepository{root: root}
}

func (ar *AutomationRepository) dir() string {
	return filepath.Join(ar.root, "automations")
}

func (ar *AutomationRepository) path(id string) string {
	return filepath.Join(ar.dir(), id+".json")
}

// validateID rejects identifiers that would escape the storage directory.
func validateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if strings.Contains(id, "..") || strings.Contains(id, "/") || strings.Contains(id, "\\") {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ListAutomations returns paginated and filtered automations with in-memory
// operations.
func (ar *AutomationRepository) ListAutomations(ctx context.Context, opts persistence.ListAutomationsOptions) (*persistence.AutomationListResult, error) {
	// Set defaults
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}

	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}

	if opts.SortOrder == "" {
		opts.SortOrder = "desc"
	}

	allowedSorts := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	}
	if !allowedSorts[opts.SortBy] {
		return nil, fmt.Errorf("%w: %s", persistence.ErrInvalidSortField, opts.SortBy)
	}

	root := os.DirFS(ar.dir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list automation files: %w", err)
	}

	allAutomations := make([]*models.Automation, 0, len(jsonFiles))

	for _, fileName := range jsonFiles {
		automationID := strings.TrimSuffix(fileName, ".json")

		automation, err := ar.GetByID(ctx, automationID)
		if err != nil {
			return nil, fmt.Errorf("failed to load automation %s: %w", automationID, err)
		}

		allAutomations = append(allAutomations, automation)
	}

	filtered := make([]*models.Automation, 0, len(allAutomations))

	for _, automation := range allAutomations {
		if opts.OwnerID != "" && automation.Owner != opts.OwnerID {
			continue
		}

		if opts.Status != nil && automation.Status != *opts.Status {
			continue
		}

		filtered = append(filtered, automation)
	}

	sortAutomations(filtered, opts.SortBy, opts.SortOrder)

	totalCount := int64(len(filtered))
	startIdx := opts.Offset
	endIdx := opts.Offset + opts.Limit

	if startIdx >= len(filtered) {
		return &persistence.AutomationListResult{
			Automations: make([]*models.Automation, 0),
			TotalCount:  totalCount,
			HasNextPage: false,
		}, nil
	}

	if endIdx > len(filtered) {
		endIdx = len(filtered)
	}

	return &persistence.AutomationListResult{
		Automations: filtered[startIdx:endIdx],
		TotalCount:  totalCount,
		HasNextPage: endIdx < len(filtered),
	}, nil
}

func sortAutomations(automations []*models.Automation, sortBy, sortOrder string) {
	sort.Slice(automations, func(i, j int) bool {
		var less bool

		switch sortBy {
		case "updated_at":
			less = automations[i].UpdatedAt.Before(automations[j].UpdatedAt)
		case "name":
			less = automations[i].Name < automations[j].Name
		default:
			less = automations[i].CreatedAt.Before(automations[j].CreatedAt)
		}

		if sortOrder == "asc" {
			return less
		}

		return !less
	})
}

// GetByID loads one automation from disk.
func (ar *AutomationRepository) GetByID(_ context.Context, id string) (*models.Automation, error) {
	if err := validateID(id); err != nil {
		return nil, persistence.NewAutomationError("GetByID", id, err)
	}

	data, err := os.ReadFile(ar.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewAutomationError("GetByID", id, persistence.ErrAutomationNotFound)
		}

		return nil, persistence.NewAutomationError("GetByID", id, err)
	}

	var automation models.Automation
	if err := json.Unmarshal(data, &automation); err != nil {
		return nil, persistence.NewAutomationError("GetByID", id, err)
	}

	return &automation, nil
}

// Save writes an automation to disk, creating the storage directory on first
// use.
func (ar *AutomationRepository) Save(_ context.Context, automation *models.Automation) error {
	if err := validateID(automation.ID); err != nil {
		return persistence.NewAutomationError("Save", automation.ID, err)
	}

	if err := os.MkdirAll(ar.dir(), 0o755); err != nil {
		return persistence.NewAutomationError("Save", automation.ID, err)
	}

	data, err := json.MarshalIndent(automation, "", "  ")
	if err != nil {
		return persistence.NewAutomationError("Save", automation.ID, err)
	}

	if err := os.WriteFile(ar.path(automation.ID), data, 0o644); err != nil {
		return persistence.NewAutomationError("Save", automation.ID, err)
	}

	return nil
}

// Delete removes an automation from disk.
func (ar *AutomationRepository) Delete(_ context.Context, id string) error {
	if err := validateID(id); err != nil {
		return persistence.NewAutomationError("Delete", id, err)
	}

	err := os.Remove(ar.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return persistence.NewAutomationError("Delete", id, persistence.ErrAutomationNotFound)
		}

		return persistence.NewAutomationError("Delete", id, err)
	}

	return nil
}
