package models

import (
	"errors"
	"fmt"
	"time"
)

// ExecutionStatus defines the possible states of an automation execution.
type ExecutionStatus string

const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
	ExecutionStatusPaused    ExecutionStatus = "paused"
)

var (
	// ErrExecutionFinished is returned when a transition is attempted on an
	// execution that already reached completed or failed.
	ErrExecutionFinished = errors.New("execution already finished")

	// ErrExecutionNotPaused is returned when resuming an execution that is
	// not paused.
	ErrExecutionNotPaused = errors.New("execution is not paused")

	// ErrExecutionNotRunning is returned when pausing an execution that is
	// not running.
	ErrExecutionNotRunning = errors.New("execution is not running")
)

// NodeError records a single node-level failure during an execution. Node
// errors accumulate while the execution keeps running; they never force a
// terminal state on their own.
type NodeError struct {
	NodeID    string    `json:"node_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Execution is the record an interpreter mutates while running an automation
// for one contact. Exactly one interpreter instance owns the record per
// execution id until it reaches a terminal state.
//
// Invariant: CompletedAt is set iff Status is completed or failed.
type Execution struct {
	ID            string          `json:"id"`
	AutomationID  string          `json:"automation_id" validate:"required"`
	ContactID     string          `json:"contact_id"    validate:"required"`
	Status        ExecutionStatus `json:"status"`
	CurrentNodeID *string         `json:"current_node_id,omitempty"`
	StartedAt     time.Time       `json:"started_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	Results       map[string]any  `json:"results,omitempty"`
	Errors        []NodeError     `json:"errors,omitempty"`
}

// NewExecution creates a running execution record for one automation/contact
// pair.
func NewExecution(id, automationID, contactID string) *Execution {
	return &Execution{
		ID:           id,
		AutomationID: automationID,
		ContactID:    contactID,
		Status:       ExecutionStatusRunning,
		StartedAt:    time.Now().UTC(),
		Results:      make(map[string]any),
	}
}

// IsFinished reports whether the execution reached a terminal state.
func (e *Execution) IsFinished() bool {
	return e.Status == ExecutionStatusCompleted || e.Status == ExecutionStatusFailed
}

// Complete marks the execution as successfully finished.
func (e *Execution) Complete() error {
	if e.IsFinished() {
		return fmt.Errorf("complete execution %s: %w", e.ID, ErrExecutionFinished)
	}

	now := time.Now().UTC()
	e.Status = ExecutionStatusCompleted
	e.CompletedAt = &now
	e.CurrentNodeID = nil

	return nil
}

// Fail marks the execution as terminally failed.
func (e *Execution) Fail(reason string) error {
	if e.IsFinished() {
		return fmt.Errorf("fail execution %s: %w", e.ID, ErrExecutionFinished)
	}

	now := time.Now().UTC()
	e.Status = ExecutionStatusFailed
	e.CompletedAt = &now

	if reason != "" {
		nodeID := ""
		if e.CurrentNodeID != nil {
			nodeID = *e.CurrentNodeID
		}

		e.Errors = append(e.Errors, NodeError{
			NodeID:    nodeID,
			Message:   reason,
			Timestamp: now,
		})
	}

	return nil
}

// Pause suspends a running execution so it can be resumed later.
func (e *Execution) Pause() error {
	if e.IsFinished() {
		return fmt.Errorf("pause execution %s: %w", e.ID, ErrExecutionFinished)
	}

	if e.Status != ExecutionStatusRunning {
		return fmt.Errorf("pause execution %s: %w", e.ID, ErrExecutionNotRunning)
	}

	e.Status = ExecutionStatusPaused

	return nil
}

// Resume returns a paused execution to the running state.
func (e *Execution) Resume() error {
	if e.Status != ExecutionStatusPaused {
		return fmt.Errorf("resume execution %s: %w", e.ID, ErrExecutionNotPaused)
	}

	e.Status = ExecutionStatusRunning

	return nil
}

// AdvanceTo records the node the interpreter is currently executing.
func (e *Execution) AdvanceTo(nodeID string) error {
	if e.IsFinished() {
		return fmt.Errorf("advance execution %s: %w", e.ID, ErrExecutionFinished)
	}

	e.CurrentNodeID = &nodeID

	return nil
}

// AppendNodeError records a node-level failure without terminating the
// execution. The interpreter decides separately whether accumulated errors
// warrant failing the whole execution.
func (e *Execution) AppendNodeError(nodeID, message string) error {
	if e.IsFinished() {
		return fmt.Errorf("append error to execution %s: %w", e.ID, ErrExecutionFinished)
	}

	e.Errors = append(e.Errors, NodeError{
		NodeID:    nodeID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})

	return nil
}

// SetResult stores a node result in the execution's result map.
func (e *Execution) SetResult(nodeID string, result any) error {
	if e.IsFinished() {
		return fmt.Errorf("set result on execution %s: %w", e.ID, ErrExecutionFinished)
	}

	if e.Results == nil {
		e.Results = make(map[string]any)
	}

	e.Results[nodeID] = result

	return nil
}
