package domain

import (
	"time"
)

// StepStatus represents the status of an individual step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepType identifies the type of step
type StepType string

const (
	StepTypeCreateTag      StepType = "create_tag"
	StepTypePushTag        StepType = "push_tag"
	StepTypePublishRelease StepType = "publish_release"
)

// RunStatus represents the overall status of an invocation
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run tracks the steps of one invocation. It lives in memory only.
type Run struct {
	ID        string
	Tag       string
	StartedAt time.Time
	UpdatedAt time.Time
	Steps     []StepRecord
	Status    RunStatus
	Error     string
}

// StepRecord represents a single step in the run
type StepRecord struct {
	Type        StepType
	Status      StepStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}

// NewRun creates a new run record
func NewRun(id string, now time.Time) *Run {
	return &Run{
		ID:        id,
		StartedAt: now,
		UpdatedAt: now,
		Steps:     []StepRecord{},
		Status:    RunStatusPending,
	}
}

// AddStep adds a pending step record
func (r *Run) AddStep(stepType StepType) *StepRecord {
	r.Steps = append(r.Steps, StepRecord{
		Type:   stepType,
		Status: StepStatusPending,
	})
	return &r.Steps[len(r.Steps)-1]
}

// Step returns the record for stepType, or nil.
func (r *Run) Step(stepType StepType) *StepRecord {
	for i := range r.Steps {
		if r.Steps[i].Type == stepType {
			return &r.Steps[i]
		}
	}
	return nil
}

// CompletedSteps returns all completed steps in execution order
func (r *Run) CompletedSteps() []StepRecord {
	var completed []StepRecord
	for _, s := range r.Steps {
		if s.Status == StepStatusCompleted {
			completed = append(completed, s)
		}
	}
	return completed
}

// MarkStarted marks a pending step as running
func (r *Run) MarkStarted(stepType StepType, now time.Time) {
	if s := r.Step(stepType); s != nil && s.Status == StepStatusPending {
		s.Status = StepStatusRunning
		s.StartedAt = now
		r.UpdatedAt = now
	}
	r.Status = RunStatusRunning
}

// MarkCompleted marks a running step as completed
func (r *Run) MarkCompleted(stepType StepType, now time.Time) {
	if s := r.Step(stepType); s != nil && s.Status == StepStatusRunning {
		s.Status = StepStatusCompleted
		s.CompletedAt = &now
		r.UpdatedAt = now
	}
}

// MarkFailed marks a running step as failed and fails the run.
// Steps still pending are marked skipped since they will never run.
func (r *Run) MarkFailed(stepType StepType, err error, now time.Time) {
	for i := range r.Steps {
		s := &r.Steps[i]
		switch {
		case s.Type == stepType && s.Status == StepStatusRunning:
			s.Status = StepStatusFailed
			s.CompletedAt = &now
			s.Error = err.Error()
		case s.Status == StepStatusPending:
			s.Status = StepStatusSkipped
		}
	}
	r.UpdatedAt = now
	r.Status = RunStatusFailed
	r.Error = err.Error()
}

// MarkFinished completes the run.
func (r *Run) MarkFinished(now time.Time) {
	r.UpdatedAt = now
	r.Status = RunStatusCompleted
}
