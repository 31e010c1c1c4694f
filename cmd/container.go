package cmd

import (
	"fmt"
	"os"

	"github.com/compozy/tagdeploy/internal/config"
	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/compozy/tagdeploy/internal/logger"
	"github.com/compozy/tagdeploy/internal/orchestrator"
	"github.com/compozy/tagdeploy/internal/output"
	"github.com/compozy/tagdeploy/internal/repository"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.
type container struct {
	cfg    *config.Config
	ui     *output.UI
	logger *zap.Logger

	fsRepo      repository.FileSystemRepository
	tagRepo     repository.TagRepository
	releaseRepo repository.ReleaseRepository
	lock        repository.WorkingCopyLock
}

// newContainer creates a new container with all the dependencies.
func newContainer(verbose bool) (*container, error) {
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	cfg, err := config.LoadConfig(fsRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	ui := output.New()
	log, err := logger.New(ui.ErrOut, level)
	if err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	tagRepo, err := newTagRepository(cfg, wd, ui)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTagQueryFailed, err)
	}
	lockPath := cfg.LockFile
	if lockPath == "" {
		lockPath, err = repository.DefaultLockPath(wd)
		if err != nil {
			return nil, err
		}
	}
	lock := repository.NewFileLock(lockPath, cfg.LockTimeout)
	log.Debug("initialized dependencies",
		zap.String("backend", cfg.GitBackend),
		zap.String("remote", cfg.Remote),
		zap.String("lock", lock.Path()),
	)
	return &container{
		cfg:         cfg,
		ui:          ui,
		logger:      log,
		fsRepo:      fsRepo,
		tagRepo:     tagRepo,
		releaseRepo: repository.NewGithubNoopRepository(cfg.GithubOwner, cfg.GithubRepo),
		lock:        lock,
	}, nil
}

func newTagRepository(cfg *config.Config, dir string, ui *output.UI) (repository.TagRepository, error) {
	opts := repository.GitOptions{
		Remote:      cfg.Remote,
		Token:       cfg.GithubToken,
		TaggerName:  cfg.TaggerName,
		TaggerEmail: cfg.TaggerEmail,
	}
	switch cfg.GitBackend {
	case config.BackendGoGit:
		return repository.NewGitRepository(dir, opts)
	default:
		return repository.NewExecGitRepository(dir, opts, ui.Out, ui.ErrOut)
	}
}

// enableRelease replaces the no-op publisher with a GitHub client.
func (c *container) enableRelease() error {
	if err := c.cfg.ValidateForRelease(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrReleasePublishFailed, err)
	}
	releaseRepo, err := repository.NewGithubRepository(c.cfg.GithubToken, c.cfg.GithubOwner, c.cfg.GithubRepo)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrReleasePublishFailed, err)
	}
	c.releaseRepo = releaseRepo
	return nil
}

func (c *container) dependencies() orchestrator.Dependencies {
	return orchestrator.Dependencies{
		TagRepo:         c.tagRepo,
		ReleaseRepo:     c.releaseRepo,
		FsRepo:          c.fsRepo,
		Lock:            c.lock,
		Clock:           domain.SystemClock{},
		Logger:          c.logger,
		UI:              c.ui,
		TagMessage:      c.cfg.TagMessage,
		WorkflowTimeout: c.cfg.WorkflowTimeout,
	}
}

func (c *container) close() {
	_ = c.logger.Sync()
}
