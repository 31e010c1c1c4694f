package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"text/template"
	"time"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/compozy/tagdeploy/internal/repository"
	"github.com/sethvargo/go-retry"
)

// PublishReleaseUseCase publishes a release for a pushed tag.
type PublishReleaseUseCase struct {
	ReleaseRepo repository.ReleaseRepository
	RetryCount  uint64
	RetryDelay  time.Duration
}

// Execute renders the release body for plan and publishes it, retrying
// transient API failures. It returns the release URL.
func (uc *PublishReleaseUseCase) Execute(ctx context.Context, plan *domain.Plan) (string, error) {
	body, err := RenderReleaseBody(plan)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrReleasePublishFailed, err)
	}
	release := domain.NewRelease(plan.NewTag, body)
	var link string
	backoff := retry.WithMaxRetries(uc.RetryCount, retry.NewExponential(uc.retryDelay()))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		url, err := uc.ReleaseRepo.PublishRelease(ctx, release)
		if err != nil {
			if errors.Is(err, repository.ErrGithubTokenRequired) {
				return err
			}
			return retry.RetryableError(err)
		}
		link = url
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrReleasePublishFailed, plan.NewTag, err)
	}
	return link, nil
}

func (uc *PublishReleaseUseCase) retryDelay() time.Duration {
	if uc.RetryDelay <= 0 {
		return time.Second
	}
	return uc.RetryDelay
}

// RenderReleaseBody renders the markdown body of the release for plan.
func RenderReleaseBody(plan *domain.Plan) (string, error) {
	if plan == nil {
		return "", fmt.Errorf("plan cannot be nil")
	}
	data := struct {
		Tag         string
		Environment string
		Version     string
		Previous    string
	}{
		Tag:         html.EscapeString(plan.NewTag.String()),
		Environment: html.EscapeString(plan.Environment.String()),
		Version:     plan.NewTag.Version().String(),
		Previous:    html.EscapeString(plan.LatestOrNone()),
	}
	tmpl, err := template.New("release-body").Option("missingkey=error").Parse(releaseBodyTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse release body template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute release body template: %w", err)
	}
	return buf.String(), nil
}

const releaseBodyTemplate = `## Deployment {{.Tag}}

Environment: **{{.Environment}}**
Calendar version: ` + "`{{.Version}}`" + `
Previous tag: {{.Previous}}
`
