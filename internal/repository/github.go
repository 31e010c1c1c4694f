package repository

import (
	"context"

	"github.com/compozy/tagdeploy/internal/domain"
)

// ReleaseRepository defines the interface for publishing releases of pushed tags.
type ReleaseRepository interface {
	// PublishRelease creates a release for an existing remote tag and returns its URL.
	PublishRelease(ctx context.Context, release *domain.Release) (string, error)
}
