// Package persistence provides the data storage abstraction for automations
// and execution records.
package persistence

import (
	"context"

	"github.com/homespark/campaigner/pkg/models"
)

type Persistence interface {
	AutomationRepository() AutomationRepository
	ExecutionRepository() ExecutionRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// ListAutomationsOptions controls filtering, sorting and pagination.
type ListAutomationsOptions struct {
	Limit  int
	Offset int

	OwnerID string
	Status  *models.AutomationStatus

	SortBy    string // created_at, updated_at or name
	SortOrder string // asc or desc
}

// AutomationListResult is a page of automations plus paging metadata.
type AutomationListResult struct {
	Automations []*models.Automation
	TotalCount  int64
	HasNextPage bool
}

type AutomationRepository interface {
	ListAutomations(ctx context.Context, opts ListAutomationsOptions) (*AutomationListResult, error)
	GetByID(ctx context.Context, id string) (*models.Automation, error)
	Save(ctx context.Context, automation *models.Automation) error
	Delete(ctx context.Context, id string) error
}

type ExecutionRepository interface {
	GetByID(ctx context.Context, id string) (*models.Execution, error)
	Save(ctx context.Context, execution *models.Execution) error
	ListByAutomation(ctx context.Context, automationID string) ([]*models.Execution, error)
}
