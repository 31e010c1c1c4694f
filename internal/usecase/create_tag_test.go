package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testTag() domain.Tag {
	return domain.NewTag(domain.EnvironmentStaging, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), 4)
}

func TestCreateTagUseCase_Execute(t *testing.T) {
	t.Run("Should create the tag with the configured message", func(t *testing.T) {
		repo := new(mockTagRepository)
		repo.On("CreateTag", mock.Anything, "staging-2024-03-v4", "deploy").Return(nil)
		uc := &CreateTagUseCase{TagRepo: repo, Message: "deploy"}
		require.NoError(t, uc.Execute(context.Background(), testTag()))
		repo.AssertExpectations(t)
	})

	t.Run("Should wrap creation failures", func(t *testing.T) {
		repo := new(mockTagRepository)
		repo.On("CreateTag", mock.Anything, "staging-2024-03-v4", "").
			Return(errors.New("tag 'staging-2024-03-v4' already exists"))
		uc := &CreateTagUseCase{TagRepo: repo}
		err := uc.Execute(context.Background(), testTag())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTagCreateFailed)
		assert.ErrorContains(t, err, "already exists")
	})
}

func TestPushTagUseCase_Execute(t *testing.T) {
	t.Run("Should push the tag", func(t *testing.T) {
		repo := new(mockTagRepository)
		repo.On("PushTag", mock.Anything, "staging-2024-03-v4").Return(nil)
		uc := &PushTagUseCase{TagRepo: repo}
		require.NoError(t, uc.Execute(context.Background(), testTag()))
		repo.AssertExpectations(t)
	})

	t.Run("Should report that the local tag is left in place", func(t *testing.T) {
		repo := new(mockTagRepository)
		repo.On("PushTag", mock.Anything, "staging-2024-03-v4").Return(errors.New("rejected"))
		repo.On("Remote").Return("upstream")
		uc := &PushTagUseCase{TagRepo: repo}
		err := uc.Execute(context.Background(), testTag())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTagPushFailed)
		assert.ErrorContains(t, err, "upstream")
		assert.ErrorContains(t, err, "local tag left in place")
		repo.AssertNumberOfCalls(t, "PushTag", 1)
	})
}
