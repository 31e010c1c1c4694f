package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/compozy/tagdeploy/internal/repository"
	"go.uber.org/zap"
)

// ResolveTagUseCase computes the next deployment tag for an environment.
type ResolveTagUseCase struct {
	TagRepo repository.TagRepository
	Clock   domain.Clock
	Logger  *zap.Logger
}

// Execute validates envName, lists the tags of the current UTC month and
// returns the plan for the next tag. Nothing is created or pushed.
func (uc *ResolveTagUseCase) Execute(ctx context.Context, envName string) (*domain.Plan, error) {
	env, err := domain.ParseEnvironment(envName)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	pattern := domain.TagPattern(env, now)
	candidates, err := uc.TagRepo.ListTags(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", domain.ErrTagQueryFailed, pattern, err)
	}
	latest, next, skipped := ResolveNextTag(env, now, candidates)
	for _, name := range skipped {
		uc.logger().Debug("ignoring malformed tag", zap.String("tag", name), zap.String("pattern", pattern))
	}
	uc.logger().Debug("resolved tag",
		zap.String("environment", env.String()),
		zap.Int("candidates", len(candidates)),
		zap.String("latest", latest),
		zap.String("next", next.String()),
	)
	return &domain.Plan{
		Environment: env,
		Pattern:     pattern,
		Candidates:  candidates,
		LatestTag:   latest,
		NewTag:      next,
		Remote:      uc.TagRepo.Remote(),
		Skipped:     skipped,
	}, nil
}

// ResolveNextTag picks the highest well-formed candidate of env's month at
// now and returns it with the tag that follows it. Candidates that do not
// parse as tags of that month are returned in skipped. Without a well-formed
// candidate the next tag has sequence 1.
func ResolveNextTag(env domain.Environment, now time.Time, candidates []string) (string, domain.Tag, []string) {
	first := domain.NewTag(env, now, 1)
	var (
		latest  *domain.Tag
		name    string
		skipped []string
	)
	for _, candidate := range candidates {
		tag, err := domain.ParseTag(candidate)
		if err != nil || tag.Prefix() != first.Prefix() {
			skipped = append(skipped, candidate)
			continue
		}
		if latest == nil || tag.Version().Compare(latest.Version()) > 0 {
			latest = &tag
			name = candidate
		}
	}
	if latest == nil {
		return "", first, skipped
	}
	return name, latest.Next(), skipped
}

func (uc *ResolveTagUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

func (uc *ResolveTagUseCase) logger() *zap.Logger {
	if uc.Logger == nil {
		return zap.NewNop()
	}
	return uc.Logger
}
