package orchestrator

import (
	"context"
	"time"

	"github.com/compozy/tagdeploy/internal/domain"
	"go.uber.org/zap"
)

// Step is a single mutating action of a deployment.
type Step struct {
	Name    string
	Type    domain.StepType
	Execute func(ctx context.Context) error
}

// StepExecutor runs steps in order and stops at the first failure.
// Completed steps are never undone.
type StepExecutor struct {
	run    *domain.Run
	steps  []Step
	now    func() time.Time
	logger *zap.Logger
}

// NewStepExecutor creates an executor for the run identified by runID.
func NewStepExecutor(runID string, clock domain.Clock, logger *zap.Logger) *StepExecutor {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	now := func() time.Time { return clock.Now().UTC() }
	return &StepExecutor{
		run:    domain.NewRun(runID, now()),
		now:    now,
		logger: logger,
	}
}

// AddStep appends a step to the run
func (s *StepExecutor) AddStep(step Step) {
	s.steps = append(s.steps, step)
	s.run.AddStep(step.Type)
}

// Execute runs every step. Steps after a failed one are marked skipped.
func (s *StepExecutor) Execute(ctx context.Context) error {
	defer s.logSummary()
	for _, step := range s.steps {
		if err := ctx.Err(); err != nil {
			s.run.MarkStarted(step.Type, s.now())
			s.run.MarkFailed(step.Type, err, s.now())
			return err
		}
		s.run.MarkStarted(step.Type, s.now())
		s.logger.Debug("step started", zap.String("step", step.Name))
		if err := step.Execute(ctx); err != nil {
			s.run.MarkFailed(step.Type, err, s.now())
			s.logger.Error("step failed", zap.String("step", step.Name), zap.Error(err))
			return err
		}
		s.run.MarkCompleted(step.Type, s.now())
		s.logger.Debug("step completed", zap.String("step", step.Name))
	}
	s.run.MarkFinished(s.now())
	return nil
}

// logSummary writes the final status of the run and of every step.
func (s *StepExecutor) logSummary() {
	fields := []zap.Field{
		zap.String("tag", s.run.Tag),
		zap.String("status", string(s.run.Status)),
		zap.Int("completed", len(s.run.CompletedSteps())),
		zap.Duration("elapsed", s.run.UpdatedAt.Sub(s.run.StartedAt)),
	}
	for _, step := range s.run.Steps {
		fields = append(fields, zap.String(string(step.Type), string(step.Status)))
	}
	if s.run.Status == domain.RunStatusFailed {
		s.logger.Warn("run finished", append(fields, zap.String("error", s.run.Error))...)
		return
	}
	s.logger.Info("run finished", fields...)
}

// Run returns the record of the run
func (s *StepExecutor) Run() *domain.Run {
	return s.run
}

// SetTag records the tag the run materializes
func (s *StepExecutor) SetTag(tag string) {
	s.run.Tag = tag
}
