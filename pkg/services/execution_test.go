package services

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homespark/campaigner/pkg/creative"
	"github.com/homespark/campaigner/pkg/eventbus"
	"github.com/homespark/campaigner/pkg/events"
	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/persistence/file"
)

// recordingEventBus captures published events for assertions.
type recordingEventBus struct {
	mu        sync.Mutex
	published []eventbus.Event
	nextID    int
}

func (b *recordingEventBus) Publish(_ context.Context, _ string, event eventbus.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.published = append(b.published, event)

	return nil
}

func (b *recordingEventBus) Handle(_ events.EventType, _ eventbus.EventHandler) error {
	return nil
}

func (b *recordingEventBus) Subscribe(_ context.Context) error {
	return nil
}

func (b *recordingEventBus) GenerateID() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++

	return string(rune('0' + b.nextID))
}

func (b *recordingEventBus) Close() error { return nil }

func (b *recordingEventBus) types() []events.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()

	eventTypes := make([]events.EventType, 0, len(b.published))
	for _, event := range b.published {
		eventTypes = append(eventTypes, event.GetType())
	}

	return eventTypes
}

func newTestExecutionService(t *testing.T) (*Automation, *Execution, *recordingEventBus) {
	t.Helper()

	store := file.NewPersistence(t.TempDir())
	catalog := creative.NewMemoryCatalog(
		&models.CreativeTemplate{ID: "tpl-single", Name: "Single listing"},
	)
	bus := &recordingEventBus{}

	return NewAutomation(store, catalog), NewExecution(store, bus, slog.Default()), bus
}

func createActiveAutomation(t *testing.T, automations *Automation) *models.Automation {
	t.Helper()

	automation := validAutomation()
	automation.Status = models.AutomationStatusActive

	created, err := automations.Create(t.Context(), automation)
	require.NoError(t, err)

	return created
}

func TestExecution_Fire(t *testing.T) {
	automations, executions, bus := newTestExecutionService(t)
	automation := createActiveAutomation(t, automations)

	execution, err := executions.Fire(t.Context(), automation.ID, "contact-1", map[string]any{"property_id": "prop-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, execution.ID)
	assert.Equal(t, automation.ID, execution.AutomationID)
	assert.Equal(t, models.ExecutionStatusRunning, execution.Status)

	assert.Equal(t, []events.EventType{
		events.AutomationTriggeredEvent,
		events.ExecutionStartedEvent,
	}, bus.types())

	loaded, err := executions.GetByID(t.Context(), execution.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusRunning, loaded.Status)
}

func TestExecution_Fire_InactiveAutomation(t *testing.T) {
	automations, executions, bus := newTestExecutionService(t)

	draft, err := automations.Create(t.Context(), validAutomation())
	require.NoError(t, err)

	_, err = executions.Fire(t.Context(), draft.ID, "contact-1", nil)
	require.ErrorIs(t, err, ErrAutomationNotActive)
	assert.True(t, IsConflictError(err))
	assert.Empty(t, bus.types())
}

func TestExecution_CompleteLifecycle(t *testing.T) {
	automations, executions, bus := newTestExecutionService(t)
	automation := createActiveAutomation(t, automations)

	execution, err := executions.Fire(t.Context(), automation.ID, "contact-1", nil)
	require.NoError(t, err)

	_, err = executions.Advance(t.Context(), execution.ID, "send-email")
	require.NoError(t, err)

	completed, err := executions.Complete(t.Context(), execution.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	assert.Contains(t, bus.types(), events.ExecutionCompletedEvent)

	// Completing again conflicts.
	_, err = executions.Complete(t.Context(), execution.ID)
	require.ErrorIs(t, err, ErrExecutionFinished)
	assert.True(t, IsConflictError(err))
}

func TestExecution_FailRecordsReason(t *testing.T) {
	automations, executions, bus := newTestExecutionService(t)
	automation := createActiveAutomation(t, automations)

	execution, err := executions.Fire(t.Context(), automation.ID, "contact-1", nil)
	require.NoError(t, err)

	failed, err := executions.Fail(t.Context(), execution.ID, "smtp relay refused connection")
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusFailed, failed.Status)
	require.Len(t, failed.Errors, 1)
	assert.Equal(t, "smtp relay refused connection", failed.Errors[0].Message)

	assert.Contains(t, bus.types(), events.ExecutionFailedEvent)
}

func TestExecution_PauseResume(t *testing.T) {
	automations, executions, bus := newTestExecutionService(t)
	automation := createActiveAutomation(t, automations)

	execution, err := executions.Fire(t.Context(), automation.ID, "contact-1", nil)
	require.NoError(t, err)

	paused, err := executions.Pause(t.Context(), execution.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusPaused, paused.Status)

	// Pausing a paused execution is a conflict, not an internal error.
	_, err = executions.Pause(t.Context(), execution.ID)
	require.Error(t, err)
	assert.True(t, IsConflictError(err))

	resumed, err := executions.Resume(t.Context(), execution.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusRunning, resumed.Status)

	assert.Contains(t, bus.types(), events.ExecutionPausedEvent)
	assert.Contains(t, bus.types(), events.ExecutionResumedEvent)
}

func TestExecution_RecordNodeError(t *testing.T) {
	automations, executions, bus := newTestExecutionService(t)
	automation := createActiveAutomation(t, automations)

	execution, err := executions.Fire(t.Context(), automation.ID, "contact-1", nil)
	require.NoError(t, err)

	updated, err := executions.RecordNodeError(t.Context(), execution.ID, "render-creative", "image fetch timed out")
	require.NoError(t, err)

	require.Len(t, updated.Errors, 1)
	assert.Equal(t, models.ExecutionStatusRunning, updated.Status)
	assert.Contains(t, bus.types(), events.ExecutionNodeFailedEvent)
}

func TestExecution_ListByAutomation(t *testing.T) {
	automations, executions, _ := newTestExecutionService(t)
	automation := createActiveAutomation(t, automations)

	for range 3 {
		_, err := executions.Fire(t.Context(), automation.ID, "contact-1", nil)
		require.NoError(t, err)
	}

	list, err := executions.ListByAutomation(t.Context(), automation.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestExecution_NilEventBus(t *testing.T) {
	store := file.NewPersistence(t.TempDir())
	catalog := creative.NewMemoryCatalog(&models.CreativeTemplate{ID: "tpl-single", Name: "Single listing"})
	automations := NewAutomation(store, catalog)
	executions := NewExecution(store, nil, slog.Default())

	automation := createActiveAutomation(t, automations)

	execution, err := executions.Fire(t.Context(), automation.ID, "contact-1", nil)
	require.NoError(t, err)

	_, err = executions.Complete(t.Context(), execution.ID)
	require.NoError(t, err)
}
