// Package models defines the core domain models for campaign automation.
package models

// TriggerKind identifies the event class that starts an automation.
type TriggerKind string

const (
	TriggerPropertyUploaded      TriggerKind = "property_uploaded"
	TriggerPropertyViewed        TriggerKind = "property_viewed"
	TriggerPropertyUpdated       TriggerKind = "property_updated"
	TriggerClosingDate           TriggerKind = "closing_date"
	TriggerTimeBased             TriggerKind = "time_based"
	TriggerCampaignStatusChanged TriggerKind = "campaign_status_changed"
	TriggerEmailTrackingStatus   TriggerKind = "email_tracking_status"
	TriggerUnsubscribe           TriggerKind = "unsubscribe"
)

// UpdateTypeDiscount narrows the property_updated trigger to discount events,
// which locks the campaign type to single_property.
const UpdateTypeDiscount = "discount"

// Trigger is the event class plus its kind-specific configuration.
type Trigger struct {
	Kind   TriggerKind   `json:"kind"   validate:"required"`
	Config TriggerConfig `json:"config"`
}

// TriggerConfig carries the kind-specific settings. Only the fields relevant
// to the trigger kind are populated; the rest stay at their zero value.
type TriggerConfig struct {
	// UpdateType narrows property_updated triggers ("discount" or empty).
	UpdateType string `json:"update_type,omitempty"`

	// CronExpression defines when a time_based trigger fires.
	// Uses standard 5-field cron format (minute hour day month weekday).
	CronExpression string `json:"cron_expression,omitempty"`

	// DaysBefore sets how far ahead of the closing date the trigger fires.
	DaysBefore int `json:"days_before,omitempty"`

	// CampaignStatus filters campaign_status_changed triggers.
	CampaignStatus string `json:"campaign_status,omitempty"`

	// TrackingEvent filters email_tracking_status triggers (open, click, bounce).
	TrackingEvent string `json:"tracking_event,omitempty"`
}
