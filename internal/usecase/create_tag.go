package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/compozy/tagdeploy/internal/repository"
)

// CreateTagUseCase creates the resolved tag in the local repository.
type CreateTagUseCase struct {
	TagRepo repository.TagRepository
	Message string
}

// Execute runs the use case.
func (uc *CreateTagUseCase) Execute(ctx context.Context, tag domain.Tag) error {
	if err := uc.TagRepo.CreateTag(ctx, tag.String(), uc.Message); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrTagCreateFailed, tag, err)
	}
	return nil
}
