package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/homespark/campaigner/pkg/eventbus"
	"github.com/homespark/campaigner/pkg/events"
	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/persistence"
)

// ErrExecutionNotFound is returned when an execution record is not found.
var ErrExecutionNotFound = persistence.ErrExecutionNotFound

// Execution tracks execution records on behalf of the interpreter: it
// creates the record when an automation fires, persists every state
// transition, and publishes lifecycle events. The interpreter itself lives
// outside this service.
type Execution struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventBus // may be nil; events are then skipped
	logger      *slog.Logger
}

// NewExecution creates a new execution service.
func NewExecution(persistence persistence.Persistence, eventBus eventbus.EventBus, logger *slog.Logger) *Execution {
	return &Execution{
		persistence: persistence,
		eventBus:    eventBus,
		logger:      logger.With("module", "execution_service"),
	}
}

// Fire creates a running execution record for an active automation and
// publishes automation.triggered and execution.started.
func (s *Execution) Fire(ctx context.Context, automationID, contactID string, triggerData map[string]any) (*models.Execution, error) {
	automation, err := s.persistence.AutomationRepository().GetByID(ctx, automationID)
	if err != nil {
		return nil, err
	}

	if automation.Status != models.AutomationStatusActive {
		return nil, fmt.Errorf("fire automation %s: %w", automationID, ErrAutomationNotActive)
	}

	execution := models.NewExecution(uuid.New().String(), automationID, contactID)

	if err := s.persistence.ExecutionRepository().Save(ctx, execution); err != nil {
		return nil, err
	}

	s.publish(ctx, execution.ID, events.AutomationTriggered{
		BaseEvent:   s.baseEvent(events.AutomationTriggeredEvent, automationID),
		TriggerKind: string(automation.Trigger.Kind),
		ContactID:   contactID,
		TriggerData: triggerData,
	})

	s.publish(ctx, execution.ID, events.ExecutionStarted{
		BaseEvent:   s.baseEvent(events.ExecutionStartedEvent, automationID),
		ExecutionID: execution.ID,
		ContactID:   contactID,
	})

	return execution, nil
}

// GetByID fetches one execution record.
func (s *Execution) GetByID(ctx context.Context, id string) (*models.Execution, error) {
	return s.persistence.ExecutionRepository().GetByID(ctx, id)
}

// ListByAutomation returns every execution record for an automation.
func (s *Execution) ListByAutomation(ctx context.Context, automationID string) ([]*models.Execution, error) {
	return s.persistence.ExecutionRepository().ListByAutomation(ctx, automationID)
}

// Advance records the node the interpreter is currently executing.
func (s *Execution) Advance(ctx context.Context, id, nodeID string) (*models.Execution, error) {
	return s.mutate(ctx, id, func(execution *models.Execution) error {
		return execution.AdvanceTo(nodeID)
	})
}

// Complete marks an execution as successfully finished.
func (s *Execution) Complete(ctx context.Context, id string) (*models.Execution, error) {
	execution, err := s.mutate(ctx, id, func(execution *models.Execution) error {
		return execution.Complete()
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, execution.ID, events.ExecutionCompleted{
		BaseEvent:   s.baseEvent(events.ExecutionCompletedEvent, execution.AutomationID),
		ExecutionID: execution.ID,
		Duration:    execution.CompletedAt.Sub(execution.StartedAt),
	})

	return execution, nil
}

// Fail marks an execution as terminally failed.
func (s *Execution) Fail(ctx context.Context, id, reason string) (*models.Execution, error) {
	execution, err := s.mutate(ctx, id, func(execution *models.Execution) error {
		return execution.Fail(reason)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, execution.ID, events.ExecutionFailed{
		BaseEvent:   s.baseEvent(events.ExecutionFailedEvent, execution.AutomationID),
		ExecutionID: execution.ID,
		Error:       reason,
		Duration:    execution.CompletedAt.Sub(execution.StartedAt),
	})

	return execution, nil
}

// Pause suspends a running execution.
func (s *Execution) Pause(ctx context.Context, id string) (*models.Execution, error) {
	execution, err := s.mutate(ctx, id, func(execution *models.Execution) error {
		return execution.Pause()
	})
	if err != nil {
		return nil, err
	}

	nodeID := ""
	if execution.CurrentNodeID != nil {
		nodeID = *execution.CurrentNodeID
	}

	s.publish(ctx, execution.ID, events.ExecutionPaused{
		BaseEvent:   s.baseEvent(events.ExecutionPausedEvent, execution.AutomationID),
		ExecutionID: execution.ID,
		NodeID:      nodeID,
	})

	return execution, nil
}

// Resume returns a paused execution to running.
func (s *Execution) Resume(ctx context.Context, id string) (*models.Execution, error) {
	execution, err := s.mutate(ctx, id, func(execution *models.Execution) error {
		return execution.Resume()
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, execution.ID, events.ExecutionResumed{
		BaseEvent:   s.baseEvent(events.ExecutionResumedEvent, execution.AutomationID),
		ExecutionID: execution.ID,
	})

	return execution, nil
}

// RecordNodeError appends a tolerated node-level failure to a running
// execution.
func (s *Execution) RecordNodeError(ctx context.Context, id, nodeID, message string) (*models.Execution, error) {
	execution, err := s.mutate(ctx, id, func(execution *models.Execution) error {
		return execution.AppendNodeError(nodeID, message)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, execution.ID, events.ExecutionNodeFailed{
		BaseEvent:   s.baseEvent(events.ExecutionNodeFailedEvent, execution.AutomationID),
		ExecutionID: execution.ID,
		NodeID:      nodeID,
		Error:       message,
	})

	return execution, nil
}

// mutate loads, transitions and persists an execution record.
func (s *Execution) mutate(ctx context.Context, id string, transition func(*models.Execution) error) (*models.Execution, error) {
	execution, err := s.persistence.ExecutionRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := transition(execution); err != nil {
		if errors.Is(err, models.ErrExecutionFinished) {
			return nil, fmt.Errorf("%w: %s", ErrExecutionFinished, id)
		}

		return nil, err
	}

	if err := s.persistence.ExecutionRepository().Save(ctx, execution); err != nil {
		return nil, err
	}

	return execution, nil
}

func (s *Execution) baseEvent(eventType events.EventType, automationID string) events.BaseEvent {
	id := ""
	if s.eventBus != nil {
		id = s.eventBus.GenerateID()
	}

	return events.BaseEvent{
		ID:           id,
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		AutomationID: automationID,
	}
}

func (s *Execution) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.Publish(ctx, key, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}
