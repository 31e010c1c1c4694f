package repository

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

const (
	defaultTaggerName  = "tag-deploy"
	defaultTaggerEmail = "tag-deploy@users.noreply.github.com"
)

// GitOptions configures both tag repository backends.
type GitOptions struct {
	Remote      string
	Token       string
	TaggerName  string
	TaggerEmail string
}

// gitRepository is the go-git implementation of the TagRepository interface.
type gitRepository struct {
	repo *git.Repository
	opts GitOptions
	now  func() time.Time
}

// NewGitRepository opens the repository containing dir with go-git.
func NewGitRepository(dir string, opts GitOptions) (TagRepository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo, opts: opts, now: time.Now}, nil
}

// Remote returns the push remote name.
func (r *gitRepository) Remote() string {
	return r.opts.Remote
}

// ListTags returns local tags matching pattern in descending version order.
func (r *gitRepository) ListTags(_ context.Context, pattern string) ([]string, error) {
	if err := validatePattern(pattern); err != nil {
		return nil, err
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid tag pattern %q: %w", pattern, err)
	}
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	var names []string
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if ok, _ := path.Match(pattern, name); ok {
			names = append(names, name)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	domain.SortTagsDesc(names)
	return names, nil
}

// CreateTag creates a lightweight tag at HEAD, or an annotated one when msg is set.
func (r *gitRepository) CreateTag(_ context.Context, tag, msg string) error {
	if err := ValidateTagName(tag); err != nil {
		return err
	}
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	var opts *git.CreateTagOptions
	if msg != "" {
		opts = &git.CreateTagOptions{
			Message: msg,
			Tagger:  r.tagger(),
		}
	}
	if _, err := r.repo.CreateTag(tag, head.Hash(), opts); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	return nil
}

// tagger returns the configured identity, falling back to the user from git config.
func (r *gitRepository) tagger() *object.Signature {
	sig := &object.Signature{
		Name:  r.opts.TaggerName,
		Email: r.opts.TaggerEmail,
		When:  r.now(),
	}
	if sig.Name == "" || sig.Email == "" {
		if cfg, err := r.repo.ConfigScoped(config.GlobalScope); err == nil {
			if sig.Name == "" {
				sig.Name = cfg.User.Name
			}
			if sig.Email == "" {
				sig.Email = cfg.User.Email
			}
		}
	}
	if sig.Name == "" {
		sig.Name = defaultTaggerName
	}
	if sig.Email == "" {
		sig.Email = defaultTaggerEmail
	}
	return sig
}

// PushTag pushes a tag to the remote. A remote that already holds the same
// ref counts as success.
func (r *gitRepository) PushTag(ctx context.Context, tag string) error {
	if err := ValidateTagName(tag); err != nil {
		return err
	}
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: r.opts.Remote,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag))},
		Auth:       r.getAuth(),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push tag %s to %s: %w", tag, r.opts.Remote, err)
	}
	return nil
}

// getAuth returns token authentication for https remotes. ssh remotes use
// the agent picked up by go-git when no auth is given.
func (r *gitRepository) getAuth() transport.AuthMethod {
	if r.opts.Token == "" {
		return nil
	}
	remote, err := r.repo.Remote(r.opts.Remote)
	if err != nil || len(remote.Config().URLs) == 0 {
		return nil
	}
	if !strings.HasPrefix(remote.Config().URLs[0], "http") {
		return nil
	}
	// Use x-access-token as username for GitHub token authentication
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: r.opts.Token,
	}
}
