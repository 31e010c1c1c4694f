package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/compozy/tagdeploy/internal/config"
	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the ReleaseRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new ReleaseRepository with validation.
func NewGithubRepository(token, owner, repo string) (ReleaseRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return newGithubRepositoryWithClient(github.NewClient(tc), owner, repo), nil
}

func newGithubRepositoryWithClient(client *github.Client, owner, repo string) *githubRepository {
	return &githubRepository{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// PublishRelease creates a GitHub release for the tag. An existing release
// for the same tag is returned unchanged.
func (r *githubRepository) PublishRelease(ctx context.Context, release *domain.Release) (string, error) {
	tag := release.Tag.String()
	existing, resp, err := r.client.Repositories.GetReleaseByTag(ctx, r.owner, r.repo, tag)
	if err == nil {
		return existing.GetHTMLURL(), nil
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return "", fmt.Errorf("failed to look up release %s: %w", tag, err)
	}
	created, _, err := r.client.Repositories.CreateRelease(ctx, r.owner, r.repo, &github.RepositoryRelease{
		TagName:    github.Ptr(tag),
		Name:       github.Ptr(release.Name),
		Body:       github.Ptr(release.Body),
		Prerelease: github.Ptr(release.Prerelease),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create release %s: %w", tag, err)
	}
	return created.GetHTMLURL(), nil
}
