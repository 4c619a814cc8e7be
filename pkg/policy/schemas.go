package policy

import "github.com/homespark/campaigner/pkg/models"

// TriggerConfigSchema returns the JSON schema the trigger kind's config must
// satisfy. Unknown kinds get an open object schema: config for kinds this
// service does not understand is passed through untouched.
func TriggerConfigSchema(kind models.TriggerKind) *models.JSONSchema {
	switch kind {
	case models.TriggerPropertyUpdated:
		return &models.JSONSchema{
			Type:  "object",
			Title: "Property updated trigger configuration",
			Properties: map[string]*models.SchemaProperty{
				"update_type": {
					Type:        "string",
					Description: "Narrows the trigger to one update class",
					Enum:        []any{"", "discount"},
				},
			},
		}

	case models.TriggerTimeBased:
		minLength := 9 // shortest valid 5-field cron expression
		return &models.JSONSchema{
			Type:     "object",
			Title:    "Time based trigger configuration",
			Required: []string{"cron_expression"},
			Properties: map[string]*models.SchemaProperty{
				"cron_expression": {
					Type:        "string",
					Description: "Standard 5-field cron expression",
					MinLength:   &minLength,
				},
			},
		}

	case models.TriggerClosingDate:
		minimum := 0.0
		return &models.JSONSchema{
			Type:  "object",
			Title: "Closing date trigger configuration",
			Properties: map[string]*models.SchemaProperty{
				"days_before": {
					Type:        "integer",
					Description: "How many days before the closing date the trigger fires",
					Minimum:     &minimum,
				},
			},
		}

	case models.TriggerCampaignStatusChanged:
		return &models.JSONSchema{
			Type:  "object",
			Title: "Campaign status changed trigger configuration",
			Properties: map[string]*models.SchemaProperty{
				"campaign_status": {
					Type:        "string",
					Description: "Status value that fires the trigger",
				},
			},
		}

	case models.TriggerEmailTrackingStatus:
		return &models.JSONSchema{
			Type:  "object",
			Title: "Email tracking trigger configuration",
			Properties: map[string]*models.SchemaProperty{
				"tracking_event": {
					Type:        "string",
					Description: "Tracking event that fires the trigger",
					Enum:        []any{"open", "click", "bounce"},
				},
			},
		}

	default:
		return &models.JSONSchema{Type: "object"}
	}
}
