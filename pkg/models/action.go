package models

// ActionKind identifies the effect executed once trigger and conditions are
// satisfied. Sending a campaign is the only action currently supported.
type ActionKind string

const ActionSendCampaign ActionKind = "send_campaign"

// CampaignType distinguishes single-property from multi-property campaigns.
type CampaignType string

const (
	CampaignSingleProperty CampaignType = "single_property"
	CampaignMultiProperty  CampaignType = "multi_property"
)

// SelectionSource says where the campaign's target properties come from.
type SelectionSource string

const (
	SelectionFromTrigger   SelectionSource = "trigger"
	SelectionFromCondition SelectionSource = "condition"
	SelectionManual        SelectionSource = "manual"
)

// Action is the configured effect of an automation.
type Action struct {
	Kind   ActionKind     `json:"kind"   validate:"required,oneof=send_campaign"`
	Config CampaignConfig `json:"config"`
}

// PropertySelection describes how target properties are chosen. PropertyIDs
// is only consulted when Source is manual.
type PropertySelection struct {
	Source      SelectionSource `json:"source" validate:"required,oneof=trigger condition manual"`
	PropertyIDs []string        `json:"property_ids,omitempty"`
}

// ImageSelection is a user's pick of one property image for a template slot.
type ImageSelection struct {
	ImageIndex int `json:"image_index"`
	Order      int `json:"order"`
}

// CampaignConfig is the send_campaign action configuration.
type CampaignConfig struct {
	CampaignType      CampaignType      `json:"campaign_type"      validate:"required,oneof=single_property multi_property"`
	PropertySelection PropertySelection `json:"property_selection"`
	EmailListID       string            `json:"email_list_id"      validate:"required"`
	EmailTemplateID   string            `json:"email_template_id"  validate:"required"`
	Schedule          string            `json:"schedule,omitempty"`
	Subject           string            `json:"subject"`

	// UseSourceSubject reuses the source value verbatim as the subject line.
	// Only offered for trigger kinds whose policy allows the toggle.
	UseSourceSubject bool `json:"use_source_subject,omitempty"`

	FinancingEnabled bool         `json:"financing_enabled"`
	PlanStrategy     PlanStrategy `json:"plan_strategy,omitempty"`

	// CustomPlanSelections holds per-property manual plan overrides, keyed by
	// property id. Consulted only by the plan-3 strategy when the property
	// lacks a native plan #3 and has more than one plan.
	CustomPlanSelections map[string]int `json:"custom_plan_selections,omitempty"`

	// ImageSelections holds per-slot creative image picks, keyed by slot id.
	ImageSelections map[string]ImageSelection `json:"image_selections,omitempty"`
}
