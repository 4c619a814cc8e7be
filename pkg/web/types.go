// Package web provides HTTP request and response types for the automation API.
package web

import (
	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/policy"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// CreateAutomationRequest represents the request body for creating a new automation.
type CreateAutomationRequest struct {
	Name        string              `json:"name"               validate:"required,min=3"`
	Description string              `json:"description"`
	Status      string              `json:"status"             validate:"omitempty,oneof=draft active archived"`
	Trigger     models.Trigger      `json:"trigger"            validate:"required"`
	Conditions  []models.Condition  `json:"conditions"`
	Action      models.Action       `json:"action"`
	Metadata    map[string]any      `json:"metadata,omitempty"`
	Owner       string              `json:"owner"              validate:"required"`
}

// UpdateAutomationRequest represents the request body for updating an existing
// automation. All fields are optional to support partial updates.
type UpdateAutomationRequest struct {
	Name        *string             `json:"name,omitempty"        validate:"omitempty,min=3"`
	Description *string             `json:"description,omitempty"`
	Status      *string             `json:"status,omitempty"      validate:"omitempty,oneof=draft active archived"`
	Trigger     *models.Trigger     `json:"trigger,omitempty"`
	Conditions  *[]models.Condition `json:"conditions,omitempty"`
	Action      *models.Action      `json:"action,omitempty"`
	Metadata    map[string]any      `json:"metadata,omitempty"`
}

// FireExecutionRequest represents the request body for firing an automation.
type FireExecutionRequest struct {
	ContactID   string         `json:"contact_id"   validate:"required"`
	TriggerData map[string]any `json:"trigger_data,omitempty"`
}

// FailExecutionRequest represents the request body for failing an execution.
type FailExecutionRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// AdvanceExecutionRequest represents the request body for advancing an
// execution to a node.
type AdvanceExecutionRequest struct {
	NodeID string `json:"node_id" validate:"required"`
}

// NodeErrorRequest represents the request body for recording a tolerated
// node-level failure.
type NodeErrorRequest struct {
	NodeID  string `json:"node_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ResolveCampaignRequest represents the request body for resolving an
// automation into a campaign payload. PropertyIDs overrides the action's
// configured selection when present.
type ResolveCampaignRequest struct {
	PropertyIDs []string `json:"property_ids,omitempty"`
}

// ValidationResponse reports the outcome of a full configuration check.
type ValidationResponse struct {
	Valid  bool                `json:"valid"`
	Errors []policy.FieldError `json:"errors"`
}

// TriggerPolicyResponse represents the policy row derived from a trigger
// kind. SelectionWithPropertyCondition reports what the selection source
// becomes once a property_data condition is added, for kinds where that
// matters.
type TriggerPolicyResponse struct {
	TriggerKind                    string                     `json:"trigger_kind"`
	AllowedCampaignTypes           policy.CampaignTypes       `json:"allowed_campaign_types"`
	LockedCampaignType             string                     `json:"locked_campaign_type,omitempty"`
	DisabledConditionCategories    []models.ConditionCategory `json:"disabled_condition_categories"`
	SubjectToggle                  bool                       `json:"subject_toggle"`
	SelectionSource                models.SelectionSource     `json:"selection_source"`
	SelectionWithPropertyCondition models.SelectionSource     `json:"selection_with_property_condition"`
}

// TransformTriggerPolicyResponse derives the API view of a trigger's policy.
func TransformTriggerPolicyResponse(trigger models.Trigger) TriggerPolicyResponse {
	row := policy.ForTrigger(trigger)

	propertyCondition := []models.Condition{{Category: models.CategoryPropertyData}}

	categories := row.DisabledCategories
	if categories == nil {
		categories = []models.ConditionCategory{}
	}

	return TriggerPolicyResponse{
		TriggerKind:                    string(trigger.Kind),
		AllowedCampaignTypes:           row.Allowed,
		LockedCampaignType:             string(row.LockedCampaignType),
		DisabledConditionCategories:    categories,
		SubjectToggle:                  row.SubjectToggle,
		SelectionSource:                row.SelectionSource(nil),
		SelectionWithPropertyCondition: row.SelectionSource(propertyCondition),
	}
}
