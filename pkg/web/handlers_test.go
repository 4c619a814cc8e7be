package web_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homespark/campaigner/pkg/creative"
	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/persistence/file"
	"github.com/homespark/campaigner/pkg/properties"
	"github.com/homespark/campaigner/pkg/resolver"
	"github.com/homespark/campaigner/pkg/services"
	"github.com/homespark/campaigner/pkg/web"
)

func setupTestApp(t *testing.T) (*fiber.App, *services.Automation, *services.Execution) {
	t.Helper()

	store := file.NewPersistence(t.TempDir())
	catalog := creative.NewMemoryCatalog(
		&models.CreativeTemplate{ID: "tpl-single", Name: "Single listing"},
		&models.CreativeTemplate{
			ID:            "tpl-multi",
			Name:          "Portfolio digest",
			MultiProperty: true,
			Slots:         []models.ImageSlot{{ID: "hero", Name: "Hero", Order: 0}},
		},
	)

	source := properties.NewMemorySource()
	source.Add(&models.Property{ID: "prop-1", ImageURLs: []string{"https://img.example/1"}})

	automationService := services.NewAutomation(store, catalog)
	executionService := services.NewExecution(store, nil, slog.Default())
	campaignResolver := resolver.New(source, catalog, slog.Default())

	handlers := web.NewAPIHandlers(
		automationService,
		executionService,
		campaignResolver,
		validator.New(validator.WithRequiredStructEnabled()),
	)

	app := fiber.New()

	automations := app.Group("/automations")
	automations.Get("/", handlers.GetAutomations)
	automations.Post("/", handlers.CreateAutomation)
	automations.Get("/:id", handlers.GetAutomation)
	automations.Patch("/:id", handlers.UpdateAutomation)
	automations.Delete("/:id", handlers.DeleteAutomation)
	automations.Post("/:id/validate", handlers.ValidateAutomation)
	automations.Post("/:id/resolve", handlers.ResolveCampaign)
	automations.Post("/:id/executions", handlers.FireExecution)
	automations.Get("/:id/executions", handlers.ListExecutions)

	executions := app.Group("/executions")
	executions.Get("/:id", handlers.GetExecution)
	executions.Post("/:id/pause", handlers.PauseExecution)
	executions.Post("/:id/resume", handlers.ResumeExecution)
	executions.Post("/:id/complete", handlers.CompleteExecution)

	app.Get("/triggers/:kind/policy", handlers.GetTriggerPolicy)
	app.Get("/health", handlers.HealthCheck)

	return app, automationService, executionService
}

func createRequestBody(t *testing.T, status string) web.CreateAutomationRequest {
	t.Helper()

	return web.CreateAutomationRequest{
		Name:   "New listing announcement",
		Owner:  "owner-1",
		Status: status,
		Trigger: models.Trigger{
			Kind: models.TriggerPropertyUploaded,
		},
		Action: models.Action{
			Kind: models.ActionSendCampaign,
			Config: models.CampaignConfig{
				CampaignType: models.CampaignSingleProperty,
				PropertySelection: models.PropertySelection{
					Source: models.SelectionFromTrigger,
				},
				EmailListID:     "list-1",
				EmailTemplateID: "tpl-single",
			},
		},
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)

		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	})

	return resp
}

func TestAPIHandlers_CreateAutomation(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/automations/", createRequestBody(t, ""))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Automation

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.AutomationStatusDraft, created.Status)
}

func TestAPIHandlers_CreateAutomation_ShortName(t *testing.T) {
	app, _, _ := setupTestApp(t)

	body := createRequestBody(t, "")
	body.Name = "ab"

	resp := doJSON(t, app, http.MethodPost, "/automations/", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_CreateAutomation_PolicyViolationOnActive(t *testing.T) {
	app, _, _ := setupTestApp(t)

	body := createRequestBody(t, "active")
	body.Conditions = []models.Condition{{
		Category: models.CategoryPropertyData,
		Clauses:  []models.Clause{{Field: "price", Operator: models.OperatorLessThan, Value: 500000}},
	}}

	resp := doJSON(t, app, http.MethodPost, "/automations/", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_GetAutomation_NotFound(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/automations/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_UpdateAutomation_Partial(t *testing.T) {
	app, automations, _ := setupTestApp(t)

	created, err := automations.Create(t.Context(), requestToModel(createRequestBody(t, "")))
	require.NoError(t, err)

	newName := "Renamed announcement"
	resp := doJSON(t, app, http.MethodPatch, "/automations/"+created.ID, web.UpdateAutomationRequest{
		Name: &newName,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Automation

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, created.Trigger.Kind, updated.Trigger.Kind)
}

func TestAPIHandlers_UpdateAutomation_ArchivedConflict(t *testing.T) {
	app, automations, _ := setupTestApp(t)

	created, err := automations.Create(t.Context(), requestToModel(createRequestBody(t, "archived")))
	require.NoError(t, err)

	newName := "Too late"
	resp := doJSON(t, app, http.MethodPatch, "/automations/"+created.ID, web.UpdateAutomationRequest{
		Name: &newName,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPIHandlers_DeleteAutomation(t *testing.T) {
	app, automations, _ := setupTestApp(t)

	created, err := automations.Create(t.Context(), requestToModel(createRequestBody(t, "")))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodDelete, "/automations/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/automations/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_ValidateAutomation(t *testing.T) {
	app, automations, _ := setupTestApp(t)

	body := createRequestBody(t, "")
	body.Action.Config.EmailTemplateID = "tpl-ghost"

	created, err := automations.Create(t.Context(), requestToModel(body))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/automations/"+created.ID+"/validate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result web.ValidationResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestAPIHandlers_ResolveCampaign(t *testing.T) {
	app, automations, _ := setupTestApp(t)

	body := createRequestBody(t, "")
	body.Trigger = models.Trigger{Kind: models.TriggerCampaignStatusChanged}
	body.Action.Config.CampaignType = models.CampaignMultiProperty
	body.Action.Config.EmailTemplateID = "tpl-multi"
	body.Action.Config.PropertySelection = models.PropertySelection{
		Source:      models.SelectionManual,
		PropertyIDs: []string{"prop-1"},
	}

	created, err := automations.Create(t.Context(), requestToModel(body))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/automations/"+created.ID+"/resolve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var campaign resolver.Campaign

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&campaign))
	require.Len(t, campaign.Properties, 1)
	assert.Equal(t, "prop-1", campaign.Properties[0].PropertyID)
	assert.True(t, campaign.Ready)
}

func TestAPIHandlers_ResolveCampaign_InvalidConfig(t *testing.T) {
	app, automations, _ := setupTestApp(t)

	// Selection source contradicts the trigger policy; drafts may hold this
	// state but resolution must refuse it.
	body := createRequestBody(t, "")
	body.Action.Config.PropertySelection = models.PropertySelection{
		Source:      models.SelectionManual,
		PropertyIDs: []string{"prop-1"},
	}

	created, err := automations.Create(t.Context(), requestToModel(body))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/automations/"+created.ID+"/resolve", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_GetTriggerPolicy(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/triggers/property_uploaded/policy", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var policyResponse web.TriggerPolicyResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&policyResponse))
	assert.Equal(t, "property_uploaded", policyResponse.TriggerKind)
	assert.Equal(t, string(models.CampaignSingleProperty), policyResponse.LockedCampaignType)
	assert.Equal(t, models.SelectionFromTrigger, policyResponse.SelectionSource)
}

func TestAPIHandlers_GetTriggerPolicy_UpdateType(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/triggers/property_updated/policy?update_type=discount", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var policyResponse web.TriggerPolicyResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&policyResponse))
	assert.Equal(t, string(models.CampaignSingleProperty), policyResponse.LockedCampaignType)
}

func TestAPIHandlers_ExecutionLifecycle(t *testing.T) {
	app, automations, _ := setupTestApp(t)

	created, err := automations.Create(t.Context(), requestToModel(createRequestBody(t, "active")))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/automations/"+created.ID+"/executions", web.FireExecutionRequest{
		ContactID: "contact-1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var execution models.Execution

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&execution))
	require.NotEmpty(t, execution.ID)

	resp = doJSON(t, app, http.MethodPost, "/executions/"+execution.ID+"/pause", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/executions/"+execution.ID+"/resume", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/executions/"+execution.ID+"/complete", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Completing twice maps the state machine conflict to 409.
	resp = doJSON(t, app, http.MethodPost, "/executions/"+execution.ID+"/complete", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/automations/"+created.ID+"/executions", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIHandlers_FireExecution_DraftConflict(t *testing.T) {
	app, automations, _ := setupTestApp(t)

	created, err := automations.Create(t.Context(), requestToModel(createRequestBody(t, "")))
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/automations/"+created.ID+"/executions", web.FireExecutionRequest{
		ContactID: "contact-1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPIHandlers_GetExecution_NotFound(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/executions/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_HealthCheck(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func requestToModel(req web.CreateAutomationRequest) *models.Automation {
	return &models.Automation{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.AutomationStatus(req.Status),
		Trigger:     req.Trigger,
		Conditions:  req.Conditions,
		Action:      req.Action,
		Metadata:    req.Metadata,
		Owner:       req.Owner,
	}
}
