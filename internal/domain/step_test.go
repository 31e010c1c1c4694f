package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	t.Run("Should track completed steps in order", func(t *testing.T) {
		run := NewRun("run-1", now)
		run.AddStep(StepTypeCreateTag)
		run.AddStep(StepTypePushTag)
		run.MarkStarted(StepTypeCreateTag, now)
		run.MarkCompleted(StepTypeCreateTag, now)
		run.MarkStarted(StepTypePushTag, now)
		run.MarkCompleted(StepTypePushTag, now)
		run.MarkFinished(now)
		completed := run.CompletedSteps()
		require.Len(t, completed, 2)
		assert.Equal(t, StepTypeCreateTag, completed[0].Type)
		assert.Equal(t, StepTypePushTag, completed[1].Type)
		assert.Equal(t, RunStatusCompleted, run.Status)
	})
	t.Run("Should skip pending steps after a failure", func(t *testing.T) {
		run := NewRun("run-2", now)
		run.AddStep(StepTypeCreateTag)
		run.AddStep(StepTypePushTag)
		run.MarkStarted(StepTypeCreateTag, now)
		run.MarkFailed(StepTypeCreateTag, errors.New("tag exists"), now)
		assert.Equal(t, StepStatusFailed, run.Step(StepTypeCreateTag).Status)
		assert.Equal(t, "tag exists", run.Step(StepTypeCreateTag).Error)
		assert.Equal(t, StepStatusSkipped, run.Step(StepTypePushTag).Status)
		assert.Equal(t, RunStatusFailed, run.Status)
		assert.Empty(t, run.CompletedSteps())
	})
	t.Run("Should return nil for unknown step", func(t *testing.T) {
		run := NewRun("run-3", now)
		assert.Nil(t, run.Step(StepTypePublishRelease))
	})
}
