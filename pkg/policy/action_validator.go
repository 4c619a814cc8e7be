package policy

import (
	"fmt"

	"github.com/homespark/campaigner/pkg/models"
)

// CheckAction cross-checks a finished action config against the trigger's
// policy. Template may be nil when the referenced creative template could not
// be loaded; the capability check is skipped in that case and left to the
// template lookup's own error path.
func CheckAction(
	trigger models.Trigger,
	conditions []models.Condition,
	action models.Action,
	template *models.CreativeTemplate,
) ValidationErrors {
	triggerPolicy := ForTrigger(trigger)

	var errs ValidationErrors

	config := action.Config

	if triggerPolicy.IsCampaignTypeLocked() && config.CampaignType != triggerPolicy.LockedCampaignType {
		errs = append(errs, FieldError{
			Field: "action.config.campaign_type",
			Message: fmt.Sprintf("trigger %q locks the campaign type to %q",
				trigger.Kind, triggerPolicy.LockedCampaignType),
		})
	}

	if !campaignTypeAllowed(triggerPolicy.Allowed, config.CampaignType) {
		errs = append(errs, FieldError{
			Field:   "action.config.campaign_type",
			Message: fmt.Sprintf("campaign type %q is not allowed for trigger %q", config.CampaignType, trigger.Kind),
		})
	}

	expectedSource := triggerPolicy.SelectionSource(conditions)
	if config.PropertySelection.Source != expectedSource {
		errs = append(errs, FieldError{
			Field: "action.config.property_selection.source",
			Message: fmt.Sprintf("property selection source must be %q for this trigger and condition set, got %q",
				expectedSource, config.PropertySelection.Source),
		})
	}

	if config.PropertySelection.Source == models.SelectionManual && len(config.PropertySelection.PropertyIDs) == 0 {
		errs = append(errs, FieldError{
			Field:   "action.config.property_selection.property_ids",
			Message: "manual property selection requires at least one property id",
		})
	}

	if template != nil && !template.SupportsCampaignType(config.CampaignType) {
		errs = append(errs, FieldError{
			Field: "action.config.email_template_id",
			Message: fmt.Sprintf("template %q does not support %q campaigns",
				template.ID, config.CampaignType),
		})
	}

	if config.FinancingEnabled && !config.PlanStrategy.IsValid() {
		errs = append(errs, FieldError{
			Field:   "action.config.plan_strategy",
			Message: fmt.Sprintf("unknown plan strategy %q", config.PlanStrategy),
		})
	}

	return errs
}

func campaignTypeAllowed(allowed CampaignTypes, campaignType models.CampaignType) bool {
	switch campaignType {
	case models.CampaignSingleProperty:
		return allowed.Single
	case models.CampaignMultiProperty:
		return allowed.Multi
	default:
		return false
	}
}
