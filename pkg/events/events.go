// Package events defines event types for automation lifecycle notifications.
package events

import (
	"time"
)

type EventType string

// Topic is the Kafka topic automation lifecycle events are published to.
const Topic = "campaigner.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Automation lifecycle events.
	AutomationTriggeredEvent EventType = "automation.triggered"

	// Execution lifecycle events.
	ExecutionStartedEvent    EventType = "execution.started"
	ExecutionCompletedEvent  EventType = "execution.completed"
	ExecutionFailedEvent     EventType = "execution.failed"
	ExecutionPausedEvent     EventType = "execution.paused"
	ExecutionResumedEvent    EventType = "execution.resumed"
	ExecutionNodeFailedEvent EventType = "execution.node.failed"
)

type BaseEvent struct {
	ID           string         `json:"id"`
	Type         EventType      `json:"type"`
	Timestamp    time.Time      `json:"timestamp"`
	AutomationID string         `json:"automation_id"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// AutomationTriggered is published when a trigger event matches an active
// automation, before the interpreter starts executing it.
type AutomationTriggered struct {
	BaseEvent

	TriggerKind string         `json:"trigger_kind"`
	ContactID   string         `json:"contact_id,omitempty"`
	TriggerData map[string]any `json:"trigger_data,omitempty"`
}

func (e AutomationTriggered) GetType() EventType {
	return AutomationTriggeredEvent
}

type ExecutionStarted struct {
	BaseEvent

	ExecutionID string `json:"execution_id"`
	ContactID   string `json:"contact_id"`
}

func (e ExecutionStarted) GetType() EventType {
	return ExecutionStartedEvent
}

type ExecutionCompleted struct {
	BaseEvent

	ExecutionID string        `json:"execution_id"`
	Duration    time.Duration `json:"duration"`
}

func (e ExecutionCompleted) GetType() EventType {
	return ExecutionCompletedEvent
}

type ExecutionFailed struct {
	BaseEvent

	ExecutionID string        `json:"execution_id"`
	Error       string        `json:"error"`
	Duration    time.Duration `json:"duration"`
}

func (e ExecutionFailed) GetType() EventType {
	return ExecutionFailedEvent
}

type ExecutionPaused struct {
	BaseEvent

	ExecutionID string `json:"execution_id"`
	NodeID      string `json:"node_id,omitempty"`
}

func (e ExecutionPaused) GetType() EventType {
	return ExecutionPausedEvent
}

type ExecutionResumed struct {
	BaseEvent

	ExecutionID string `json:"execution_id"`
}

func (e ExecutionResumed) GetType() EventType {
	return ExecutionResumedEvent
}

// ExecutionNodeFailed is published for node-level failures that the
// execution tolerates; the execution keeps running.
type ExecutionNodeFailed struct {
	BaseEvent

	ExecutionID string `json:"execution_id"`
	NodeID      string `json:"node_id"`
	Error       string `json:"error"`
}

func (e ExecutionNodeFailed) GetType() EventType {
	return ExecutionNodeFailedEvent
}
