package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	BackendExec  = "exec"
	BackendGoGit = "go-git"
)

type Config struct {
	Remote          string        `mapstructure:"remote"`
	GitBackend      string        `mapstructure:"git_backend"`
	TagMessage      string        `mapstructure:"tag_message"`
	TaggerName      string        `mapstructure:"tagger_name"`
	TaggerEmail     string        `mapstructure:"tagger_email"`
	GithubToken     string        `mapstructure:"github_token"`
	GithubOwner     string        `mapstructure:"github_owner"`
	GithubRepo      string        `mapstructure:"github_repo"`
	GithubRelease   bool          `mapstructure:"github_release"`
	LogLevel        string        `mapstructure:"log_level"`
	LockFile        string        `mapstructure:"lock_file"`
	LockTimeout     time.Duration `mapstructure:"lock_timeout"`
	WorkflowTimeout time.Duration `mapstructure:"workflow_timeout"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Remote:          "origin",
		GitBackend:      BackendExec,
		LogLevel:        "info",
		LockTimeout:     30 * time.Second,
		WorkflowTimeout: 10 * time.Minute,
	}
}

var (
	remoteNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
	logLevels       = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.GitBackend != BackendExec && c.GitBackend != BackendGoGit {
		return fmt.Errorf("git_backend must be %q or %q, got %q", BackendExec, BackendGoGit, c.GitBackend)
	}
	if !remoteNameRegex.MatchString(c.Remote) {
		return fmt.Errorf("invalid remote name: %q", c.Remote)
	}
	if !logLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}
	if c.LockTimeout <= 0 {
		return fmt.Errorf("lock_timeout must be positive")
	}
	if c.WorkflowTimeout <= 0 {
		return fmt.Errorf("workflow_timeout must be positive")
	}
	return nil
}

// ValidateForRelease checks the settings needed to publish GitHub releases.
func (c *Config) ValidateForRelease() error {
	if c.GithubToken == "" {
		return fmt.Errorf("github_token is required to publish releases")
	}
	if err := ValidateGitHubToken(c.GithubToken); err != nil {
		return fmt.Errorf("invalid github_token: %w", err)
	}
	if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
		return fmt.Errorf("invalid github configuration: %w", err)
	}
	return nil
}

var (
	// tokenFormats covers legacy hex PATs, fine-grained PATs and the
	// prefixed tokens (ghp_, gho_, ghu_, ghs_, ghr_).
	tokenFormats = []*regexp.Regexp{
		regexp.MustCompile(`^[a-fA-F0-9]{40}$`),
		regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`),
		regexp.MustCompile(`^gh[pousr]_[a-zA-Z0-9]{36,251}$`),
	}
	ownerRegex = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)
	repoRegex  = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ValidateGitHubToken reports whether token looks like a GitHub token.
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	for _, format := range tokenFormats {
		if format.MatchString(token) {
			return nil
		}
	}
	return fmt.Errorf("unrecognized token format")
}

// ValidateGitHubOwnerRepo checks owner and repo against GitHub naming rules.
func ValidateGitHubOwnerRepo(owner, repo string) error {
	switch {
	case owner == "" || repo == "":
		return fmt.Errorf("owner and repository are required (got %q/%q)", owner, repo)
	case !ownerRegex.MatchString(owner):
		return fmt.Errorf("invalid owner %q", owner)
	case !repoRegex.MatchString(repo) || repo == "." || repo == "..":
		return fmt.Errorf("invalid repository %q", repo)
	}
	return nil
}

// LoadConfig reads .tag-deploy.yaml from the working directory of fs and
// overlays TAG_DEPLOY_* environment variables.
func LoadConfig(fs afero.Fs) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName(".tag-deploy")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("TAG_DEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// BindEnv allows multiple env vars - it will check them in order
	bindings := map[string][]string{
		"github_token": {"TAG_DEPLOY_GITHUB_TOKEN", "GITHUB_TOKEN"},
		"github_owner": {"TAG_DEPLOY_GITHUB_OWNER", "GITHUB_OWNER"},
		"github_repo":  {"TAG_DEPLOY_GITHUB_REPO", "GITHUB_REPO"},
		"log_level":    {"TAG_DEPLOY_LOG_LEVEL", "LOG_LEVEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	defaults := DefaultConfig()
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("git_backend", defaults.GitBackend)
	v.SetDefault("tag_message", defaults.TagMessage)
	v.SetDefault("tagger_name", defaults.TaggerName)
	v.SetDefault("tagger_email", defaults.TaggerEmail)
	v.SetDefault("github_release", defaults.GithubRelease)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("lock_file", defaults.LockFile)
	v.SetDefault("lock_timeout", defaults.LockTimeout)
	v.SetDefault("workflow_timeout", defaults.WorkflowTimeout)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := populateRepositoryDefaults(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// populateRepositoryDefaults fills GitHub owner/repo from the Actions
// environment, falling back to the origin remote of the working copy.
func populateRepositoryDefaults(cfg *Config) error {
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = os.Getenv("GITHUB_REPOSITORY_OWNER")
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = os.Getenv("GITHUB_REPOSITORY_NAME")
	}
	if slug := os.Getenv("GITHUB_REPOSITORY"); slug != "" && (cfg.GithubOwner == "" || cfg.GithubRepo == "") {
		if owner, repo, ok := strings.Cut(slug, "/"); ok && owner != "" && repo != "" {
			if cfg.GithubOwner == "" {
				cfg.GithubOwner = owner
			}
			if cfg.GithubRepo == "" {
				cfg.GithubRepo = repo
			}
		}
	}
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		// Not a repository: leave the defaults empty, tag queries will report it
		return nil
	}
	remote, err := repo.Remote(remoteName(cfg))
	if errors.Is(err, git.ErrRemoteNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read remote %s: %w", remoteName(cfg), err)
	}
	if len(remote.Config().URLs) == 0 {
		return nil
	}
	owner, name, err := parseGitRemoteURL(remote.Config().URLs[0])
	if err != nil {
		// Remotes outside GitHub are fine as long as releases are not requested
		return nil
	}
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = owner
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = name
	}
	return nil
}

func remoteName(cfg *Config) string {
	if cfg.Remote == "" {
		return DefaultConfig().Remote
	}
	return cfg.Remote
}

// parseGitRemoteURL extracts owner and repository from https, ssh or path remotes.
func parseGitRemoteURL(raw string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), ".git")
	if trimmed == "" {
		return "", "", fmt.Errorf("empty remote url")
	}
	if _, rest, ok := strings.Cut(trimmed, "://"); ok {
		// drop the host
		_, path, _ := strings.Cut(rest, "/")
		trimmed = path
	} else if at := strings.Index(trimmed, "@"); at >= 0 {
		if _, path, ok := strings.Cut(trimmed[at:], ":"); ok {
			trimmed = path
		}
	}
	var parts []string
	for _, p := range strings.Split(filepath.ToSlash(trimmed), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", "", fmt.Errorf("cannot determine owner and repository from %q", raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
