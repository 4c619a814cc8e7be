package models

import "time"

// AutomationStatus represents the lifecycle state of an automation.
type AutomationStatus string

const (
	AutomationStatusDraft    AutomationStatus = "draft"    // Editable, never fires
	AutomationStatusActive   AutomationStatus = "active"   // Live, fires on trigger events
	AutomationStatusArchived AutomationStatus = "archived" // Historical, never fires
)

// Automation is a persisted trigger + conditions + action definition.
// Policy facts (allowed campaign types, disabled categories, locks) are
// derived from the trigger on every edit and never stored.
type Automation struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"        validate:"required,min=3"`
	Description string           `json:"description"`
	Status      AutomationStatus `json:"status"      validate:"required"`
	Trigger     Trigger          `json:"trigger"`
	Conditions  []Condition      `json:"conditions"  validate:"dive"`
	Action      Action           `json:"action"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
	Owner       string           `json:"owner"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   *time.Time       `json:"deleted_at,omitempty"`
}
