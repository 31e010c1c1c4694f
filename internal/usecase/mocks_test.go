package usecase

import (
	"context"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockTagRepository struct{ mock.Mock }

func (m *mockTagRepository) ListTags(ctx context.Context, pattern string) ([]string, error) {
	args := m.Called(ctx, pattern)
	tags, _ := args.Get(0).([]string)
	return tags, args.Error(1)
}
func (m *mockTagRepository) CreateTag(ctx context.Context, tag, msg string) error {
	args := m.Called(ctx, tag, msg)
	return args.Error(0)
}
func (m *mockTagRepository) PushTag(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}
func (m *mockTagRepository) Remote() string {
	args := m.Called()
	return args.String(0)
}

type mockReleaseRepository struct{ mock.Mock }

func (m *mockReleaseRepository) PublishRelease(ctx context.Context, release *domain.Release) (string, error) {
	args := m.Called(ctx, release)
	return args.String(0), args.Error(1)
}
