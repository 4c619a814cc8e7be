// Package resolver materializes the final campaign payload for an
// automation: per-property financing plans, creative slot assignments, and
// the overall send-readiness verdict.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/homespark/campaigner/pkg/creative"
	"github.com/homespark/campaigner/pkg/financing"
	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/policy"
	"github.com/homespark/campaigner/pkg/properties"
)

const defaultWorkerLimit = 8

// ErrInvalidAutomation wraps the validation failures found while resolving.
var ErrInvalidAutomation = errors.New("automation failed validation")

// PropertyCampaign is the resolved payload for one target property.
type PropertyCampaign struct {
	PropertyID string `json:"property_id"`

	// Property is nil when the listing fetch failed; the failure is
	// tolerated and recorded in FetchError.
	Property *models.Property `json:"property,omitempty"`

	// Plan is the selected financing plan; nil means the property is
	// financing-ineligible for this campaign.
	Plan                *models.Plan `json:"plan,omitempty"`
	PendingManualChoice bool         `json:"pending_manual_choice,omitempty"`

	Slots creative.Assignment `json:"slots"`

	FetchError string `json:"fetch_error,omitempty"`
}

// Campaign is the fully materialized campaign for an automation.
type Campaign struct {
	AutomationID string              `json:"automation_id"`
	CampaignType models.CampaignType `json:"campaign_type"`
	Properties   []PropertyCampaign  `json:"properties"`

	// Ready is the single explicit send-readiness verdict: financing
	// disabled, no financed properties, or every financed property has a
	// plan with a positive monthly payment.
	Ready bool `json:"ready"`
}

// Resolver turns validated automations into campaign payloads.
type Resolver struct {
	source      properties.Source
	catalog     creative.Catalog
	workerLimit int
	logger      *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithWorkerLimit bounds the number of concurrent property fetches.
func WithWorkerLimit(limit int) Option {
	return func(r *Resolver) {
		if limit > 0 {
			r.workerLimit = limit
		}
	}
}

func New(source properties.Source, catalog creative.Catalog, logger *slog.Logger, opts ...Option) *Resolver {
	resolver := &Resolver{
		source:      source,
		catalog:     catalog,
		workerLimit: defaultWorkerLimit,
		logger:      logger.With("module", "campaign_resolver"),
	}

	for _, opt := range opts {
		opt(resolver)
	}

	return resolver
}

// Resolve validates the automation against its trigger policy and
// materializes the campaign for the given target properties. propertyIDs may
// be nil for manual selection, in which case the action's configured ids are
// used. Re-running with unchanged inputs yields identical output.
func (r *Resolver) Resolve(ctx context.Context, automation *models.Automation, propertyIDs []string) (*Campaign, error) {
	config := automation.Action.Config

	template, err := r.catalog.Template(ctx, config.EmailTemplateID)
	if err != nil && !errors.Is(err, creative.ErrTemplateNotFound) {
		return nil, fmt.Errorf("failed to load template %s: %w", config.EmailTemplateID, err)
	}

	var errs policy.ValidationErrors
	errs = append(errs, policy.CheckConditions(automation.Trigger, automation.Conditions)...)
	errs = append(errs, policy.CheckAction(automation.Trigger, automation.Conditions, automation.Action, template)...)

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAutomation, errs.Error())
	}

	if template == nil {
		return nil, fmt.Errorf("failed to load template %s: %w", config.EmailTemplateID, creative.ErrTemplateNotFound)
	}

	if len(propertyIDs) == 0 {
		propertyIDs = config.PropertySelection.PropertyIDs
	}

	resolved := r.resolveProperties(ctx, propertyIDs, config, template)

	selections := make([]financing.Selection, 0, len(resolved))
	for _, propertyCampaign := range resolved {
		selections = append(selections, financing.Selection{
			Plan:                propertyCampaign.Plan,
			PendingManualChoice: propertyCampaign.PendingManualChoice,
		})
	}

	return &Campaign{
		AutomationID: automation.ID,
		CampaignType: config.CampaignType,
		Properties:   resolved,
		Ready:        financing.Ready(config.FinancingEnabled, selections),
	}, nil
}

// resolveProperties fetches and resolves every target property under the
// worker limit. A property whose fetch fails is treated as having no
// financing data and no images; it never aborts the batch.
func (r *Resolver) resolveProperties(
	ctx context.Context,
	propertyIDs []string,
	config models.CampaignConfig,
	template *models.CreativeTemplate,
) []PropertyCampaign {
	resolved := make([]PropertyCampaign, len(propertyIDs))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, r.workerLimit)

	for i, propertyID := range propertyIDs {
		waitGroup.Add(1)

		go func(idx int, id string) {
			defer waitGroup.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			resolved[idx] = r.resolveProperty(ctx, id, config, template)
		}(i, propertyID)
	}

	waitGroup.Wait()

	return resolved
}

func (r *Resolver) resolveProperty(
	ctx context.Context,
	propertyID string,
	config models.CampaignConfig,
	template *models.CreativeTemplate,
) PropertyCampaign {
	propertyCampaign := PropertyCampaign{PropertyID: propertyID}

	property, err := r.source.Property(ctx, propertyID)
	if err != nil {
		r.logger.WarnContext(ctx, "Property fetch failed, continuing without listing data",
			"property_id", propertyID, "error", err)

		propertyCampaign.FetchError = err.Error()
		propertyCampaign.Slots = creative.AssignSlots(template.Slots, 0, config.ImageSelections)

		return propertyCampaign
	}

	propertyCampaign.Property = property
	propertyCampaign.Slots = creative.AssignSlots(template.Slots, len(property.ImageURLs), config.ImageSelections)

	if config.FinancingEnabled {
		var override *int
		if value, ok := config.CustomPlanSelections[propertyID]; ok {
			override = &value
		}

		selection := financing.SelectPlan(property.AvailablePlans(), config.PlanStrategy, override)
		propertyCampaign.Plan = selection.Plan
		propertyCampaign.PendingManualChoice = selection.PendingManualChoice
	}

	return propertyCampaign
}
