package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/homespark/campaigner/pkg/creative"
	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/persistence"
	"github.com/homespark/campaigner/pkg/policy"
)

// ErrAutomationNotFound is returned when an automation is not found.
var ErrAutomationNotFound = persistence.ErrAutomationNotFound

// Automation is the authoring service: CRUD plus full policy re-validation
// on every edit. Policy facts are recomputed from the trigger each time and
// never stored with the automation.
type Automation struct {
	persistence persistence.Persistence
	templates   creative.Catalog
	validate    *validator.Validate
}

// NewAutomation creates a new automation service.
func NewAutomation(persistence persistence.Persistence, templates creative.Catalog) *Automation {
	return &Automation{
		persistence: persistence,
		templates:   templates,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// HealthCheck checks the health of the persistence layer.
func (a *Automation) HealthCheck(ctx context.Context) (string, bool) {
	if a.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := a.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// ListAutomationsRequest contains options for listing automations.
type ListAutomationsRequest struct {
	Limit  int
	Offset int

	OwnerID string
	Status  *models.AutomationStatus

	SortBy    string
	SortOrder string
}

// ListAutomationsResponse contains the result of listing automations.
type ListAutomationsResponse struct {
	Automations []*models.Automation `json:"automations"`
	TotalCount  int64                `json:"total_count"`
	HasNextPage bool                 `json:"has_next_page"`
}

// ListAutomations retrieves automations with filtering, sorting, and
// pagination.
func (a *Automation) ListAutomations(ctx context.Context, req ListAutomationsRequest) (*ListAutomationsResponse, error) {
	if err := a.validateListRequest(&req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	opts := persistence.ListAutomationsOptions{
		Limit:     req.Limit,
		Offset:    req.Offset,
		OwnerID:   req.OwnerID,
		Status:    req.Status,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	result, err := a.persistence.AutomationRepository().ListAutomations(ctx, opts)
	if err != nil {
		if persistence.IsInvalidSortField(err) {
			return nil, ErrInvalidSortField
		}

		return nil, fmt.Errorf("failed to list automations: %w", err)
	}

	return &ListAutomationsResponse{
		Automations: result.Automations,
		TotalCount:  result.TotalCount,
		HasNextPage: result.HasNextPage,
	}, nil
}

func (a *Automation) validateListRequest(req *ListAutomationsRequest) error {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	if req.Limit > 100 {
		req.Limit = 100
	}

	if req.Offset < 0 {
		req.Offset = 0
	}

	if req.SortBy == "" {
		req.SortBy = "created_at"
	}

	if req.SortOrder == "" {
		req.SortOrder = "desc"
	}

	switch req.SortBy {
	case "created_at", "updated_at", "name":
	default:
		return ErrInvalidSortField
	}

	switch req.SortOrder {
	case "asc", "desc":
	default:
		return ErrInvalidSortOrder
	}

	if req.Status != nil {
		switch *req.Status {
		case models.AutomationStatusDraft, models.AutomationStatusActive, models.AutomationStatusArchived:
		default:
			return ErrInvalidStatus
		}
	}

	return nil
}

// GetByID fetches one automation.
func (a *Automation) GetByID(ctx context.Context, id string) (*models.Automation, error) {
	return a.persistence.AutomationRepository().GetByID(ctx, id)
}

// Create validates and stores a new automation. Drafts may carry incomplete
// action configs; policy validation still runs so authoring surfaces can
// show the failures, but only struct-level validity blocks creation of a
// draft.
func (a *Automation) Create(ctx context.Context, automation *models.Automation) (*models.Automation, error) {
	if automation == nil {
		return nil, ErrAutomationNil
	}

	if automation.ID == "" {
		automation.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	automation.CreatedAt = now
	automation.UpdatedAt = now

	if automation.Status == "" {
		automation.Status = models.AutomationStatusDraft
	}

	if err := a.checkEditable(automation); err != nil {
		return nil, err
	}

	if err := a.validateForStatus(ctx, automation); err != nil {
		return nil, err
	}

	if err := a.persistence.AutomationRepository().Save(ctx, automation); err != nil {
		return nil, err
	}

	return automation, nil
}

// Update re-validates and stores an edited automation. Every edit recomputes
// the trigger policy facts from scratch.
func (a *Automation) Update(ctx context.Context, id string, automation *models.Automation) (*models.Automation, error) {
	if automation == nil {
		return nil, ErrAutomationNil
	}

	existing, err := a.persistence.AutomationRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status == models.AutomationStatusArchived {
		return nil, fmt.Errorf("update automation %s: %w", id, ErrCannotModifyArchived)
	}

	automation.ID = id
	automation.CreatedAt = existing.CreatedAt
	automation.UpdatedAt = time.Now().UTC()

	if automation.Status == "" {
		automation.Status = existing.Status
	}

	if err := a.validateForStatus(ctx, automation); err != nil {
		return nil, err
	}

	if err := a.persistence.AutomationRepository().Save(ctx, automation); err != nil {
		return nil, err
	}

	return automation, nil
}

// Delete removes an automation.
func (a *Automation) Delete(ctx context.Context, id string) error {
	return a.persistence.AutomationRepository().Delete(ctx, id)
}

// checkEditable enforces struct-level validity on any stored automation.
func (a *Automation) checkEditable(automation *models.Automation) error {
	if err := a.validate.Struct(automation); err != nil {
		return NewValidationError("ValidateAutomation", "invalid_automation", err.Error(), ErrInvalidRequest)
	}

	return nil
}

// validateForStatus applies struct validation always and full policy
// validation for active automations. Draft automations may be incomplete.
func (a *Automation) validateForStatus(ctx context.Context, automation *models.Automation) error {
	if err := a.checkEditable(automation); err != nil {
		return err
	}

	if automation.Status != models.AutomationStatusActive {
		return nil
	}

	fieldErrors, err := a.Validate(ctx, automation)
	if err != nil {
		return err
	}

	return fieldErrors.OrNil()
}

// Validate runs the full configuration check: trigger config schema,
// condition category guard, and action cross-checks. The returned list is
// empty when the automation is fully consistent; infrastructure failures
// (template catalog unreachable) are returned as the second value.
func (a *Automation) Validate(ctx context.Context, automation *models.Automation) (policy.ValidationErrors, error) {
	if automation == nil {
		return nil, ErrAutomationNil
	}

	var fieldErrors policy.ValidationErrors

	fieldErrors = append(fieldErrors, a.checkTriggerConfig(automation.Trigger)...)
	fieldErrors = append(fieldErrors, policy.CheckConditions(automation.Trigger, automation.Conditions)...)

	template, err := a.lookupTemplate(ctx, automation.Action.Config.EmailTemplateID)
	if err != nil {
		return nil, err
	}

	if template == nil && automation.Action.Config.EmailTemplateID != "" {
		fieldErrors = append(fieldErrors, policy.FieldError{
			Field:   "action.config.email_template_id",
			Message: fmt.Sprintf("unknown template %q", automation.Action.Config.EmailTemplateID),
		})
	}

	fieldErrors = append(fieldErrors,
		policy.CheckAction(automation.Trigger, automation.Conditions, automation.Action, template)...)

	return fieldErrors, nil
}

func (a *Automation) lookupTemplate(ctx context.Context, templateID string) (*models.CreativeTemplate, error) {
	if templateID == "" {
		return nil, nil
	}

	template, err := a.templates.Template(ctx, templateID)
	if err != nil {
		if errors.Is(err, creative.ErrTemplateNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to load template %s: %w", templateID, err)
	}

	return template, nil
}

// checkTriggerConfig validates the trigger's config against its kind's JSON
// schema, plus the cron expression for time_based triggers.
func (a *Automation) checkTriggerConfig(trigger models.Trigger) policy.ValidationErrors {
	var fieldErrors policy.ValidationErrors

	schema := policy.TriggerConfigSchema(trigger.Kind)

	configJSON, err := json.Marshal(trigger.Config)
	if err != nil {
		fieldErrors = append(fieldErrors, policy.FieldError{
			Field:   "trigger.config",
			Message: "config is not serializable: " + err.Error(),
		})

		return fieldErrors
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewBytesLoader(configJSON),
	)
	if err != nil {
		fieldErrors = append(fieldErrors, policy.FieldError{
			Field:   "trigger.config",
			Message: "schema validation failed: " + err.Error(),
		})

		return fieldErrors
	}

	if !result.Valid() {
		for _, desc := range result.Errors() {
			fieldErrors = append(fieldErrors, policy.FieldError{
				Field:   "trigger.config." + desc.Field(),
				Message: desc.Description(),
			})
		}
	}

	if trigger.Kind == models.TriggerTimeBased && trigger.Config.CronExpression != "" {
		if err := models.ValidateCronExpression(trigger.Config.CronExpression); err != nil {
			fieldErrors = append(fieldErrors, policy.FieldError{
				Field:   "trigger.config.cron_expression",
				Message: "invalid cron expression: " + err.Error(),
			})
		}
	}

	return fieldErrors
}
