package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/compozy/tagdeploy/internal/repository"
)

// PushTagUseCase pushes a created tag to the remote. It is attempted once.
type PushTagUseCase struct {
	TagRepo repository.TagRepository
}

// Execute runs the use case.
func (uc *PushTagUseCase) Execute(ctx context.Context, tag domain.Tag) error {
	if err := uc.TagRepo.PushTag(ctx, tag.String()); err != nil {
		return fmt.Errorf("%w: %s to %s (local tag left in place): %w",
			domain.ErrTagPushFailed, tag, uc.TagRepo.Remote(), err)
	}
	return nil
}
