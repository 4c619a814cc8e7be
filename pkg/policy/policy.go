// Package policy derives the per-trigger facts that gate campaign
// configuration: which campaign types are legal, where target properties come
// from, and which condition categories the trigger already covers.
package policy

import (
	"github.com/homespark/campaigner/pkg/models"
)

// CampaignTypes reports which campaign types a trigger permits.
type CampaignTypes struct {
	Single bool `json:"single"`
	Multi  bool `json:"multi"`
}

// selectionMode captures how the property-selection source is resolved.
// Some trigger kinds resolve differently depending on whether a
// property_data condition is present.
type selectionMode int

const (
	selectFromTrigger selectionMode = iota
	selectFromCondition
	selectConditionElseTrigger
	selectConditionElseManual
)

// TriggerPolicy is the immutable set of facts derived from one trigger.
// It is a pure function of the trigger kind and config; build it with
// ForTrigger and never mutate it.
type TriggerPolicy struct {
	Allowed            CampaignTypes
	LockedCampaignType models.CampaignType // empty when the type is not locked
	DisabledCategories []models.ConditionCategory
	SubjectToggle      bool

	selection selectionMode
}

// ForTrigger resolves the policy row for a trigger. Unknown trigger kinds
// fall back to the permissive default row; this never fails.
func ForTrigger(trigger models.Trigger) TriggerPolicy {
	switch trigger.Kind {
	case models.TriggerPropertyUploaded:
		return TriggerPolicy{
			Allowed:            CampaignTypes{Single: true},
			LockedCampaignType: models.CampaignSingleProperty,
			DisabledCategories: []models.ConditionCategory{models.CategoryPropertyData},
			SubjectToggle:      true,
			selection:          selectFromTrigger,
		}

	case models.TriggerPropertyViewed:
		return TriggerPolicy{
			Allowed:            CampaignTypes{Single: true, Multi: true},
			DisabledCategories: []models.ConditionCategory{models.CategoryPropertyData},
			SubjectToggle:      true,
			selection:          selectFromTrigger,
		}

	case models.TriggerPropertyUpdated:
		if trigger.Config.UpdateType == models.UpdateTypeDiscount {
			return TriggerPolicy{
				Allowed:            CampaignTypes{Single: true},
				LockedCampaignType: models.CampaignSingleProperty,
				DisabledCategories: []models.ConditionCategory{models.CategoryPropertyData},
				SubjectToggle:      true,
				selection:          selectFromTrigger,
			}
		}

		return TriggerPolicy{
			Allowed:            CampaignTypes{Single: true, Multi: true},
			DisabledCategories: []models.ConditionCategory{models.CategoryPropertyData},
			SubjectToggle:      true,
			selection:          selectFromTrigger,
		}

	case models.TriggerClosingDate:
		return TriggerPolicy{
			Allowed:       CampaignTypes{Single: true, Multi: true},
			SubjectToggle: true,
			selection:     selectConditionElseTrigger,
		}

	case models.TriggerTimeBased:
		return TriggerPolicy{
			Allowed:            CampaignTypes{Multi: true},
			LockedCampaignType: models.CampaignMultiProperty,
			DisabledCategories: []models.ConditionCategory{models.CategoryCampaignData},
			selection:          selectFromCondition,
		}

	default:
		return TriggerPolicy{
			Allowed:   CampaignTypes{Single: true, Multi: true},
			selection: selectConditionElseManual,
		}
	}
}

// IsCampaignTypeLocked reports whether the trigger fixes the campaign type.
func (p TriggerPolicy) IsCampaignTypeLocked() bool {
	return p.LockedCampaignType != ""
}

// DisablesCategory reports whether the trigger already guarantees the filter
// the category would express, making conditions of that category redundant.
func (p TriggerPolicy) DisablesCategory(category models.ConditionCategory) bool {
	for _, disabled := range p.DisabledCategories {
		if disabled == category {
			return true
		}
	}

	return false
}

// SelectionSource resolves where the campaign's target properties come from.
// This is the only policy fact that may depend on the condition list: some
// kinds switch to condition-driven selection when a property_data condition
// is present.
func (p TriggerPolicy) SelectionSource(conditions []models.Condition) models.SelectionSource {
	switch p.selection {
	case selectFromTrigger:
		return models.SelectionFromTrigger
	case selectFromCondition:
		return models.SelectionFromCondition
	case selectConditionElseTrigger:
		if hasPropertyDataCondition(conditions) {
			return models.SelectionFromCondition
		}

		return models.SelectionFromTrigger
	case selectConditionElseManual:
		if hasPropertyDataCondition(conditions) {
			return models.SelectionFromCondition
		}

		return models.SelectionManual
	default:
		return models.SelectionManual
	}
}

func hasPropertyDataCondition(conditions []models.Condition) bool {
	for _, condition := range conditions {
		if condition.Category == models.CategoryPropertyData {
			return true
		}
	}

	return false
}
