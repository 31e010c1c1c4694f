package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// execGitRepository implements TagRepository by running the git binary.
type execGitRepository struct {
	dir    string
	binary string
	opts   GitOptions
	stdout io.Writer
	stderr io.Writer
}

// NewExecGitRepository creates a TagRepository that shells out to git in dir.
// Output of the mutating commands is streamed to stdout/stderr.
func NewExecGitRepository(dir string, opts GitOptions, stdout, stderr io.Writer) (TagRepository, error) {
	binary, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git executable not found: %w", err)
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &execGitRepository{
		dir:    dir,
		binary: binary,
		opts:   opts,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// Remote returns the push remote name.
func (r *execGitRepository) Remote() string {
	return r.opts.Remote
}

// ListTags runs git tag -l <pattern> --sort=-version:refname.
func (r *execGitRepository) ListTags(ctx context.Context, pattern string) ([]string, error) {
	if err := validatePattern(pattern); err != nil {
		return nil, err
	}
	out, err := r.output(ctx, "tag", "-l", pattern, "--sort=-version:refname")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// CreateTag runs git tag <tag>, or git tag -a <tag> -m <msg> when msg is set.
func (r *execGitRepository) CreateTag(ctx context.Context, tag, msg string) error {
	if err := ValidateTagName(tag); err != nil {
		return err
	}
	args := []string{"tag", tag}
	if msg != "" {
		args = []string{"tag", "-a", tag, "-m", msg}
	}
	return r.run(ctx, args...)
}

// PushTag runs git push <remote> <tag>.
func (r *execGitRepository) PushTag(ctx context.Context, tag string) error {
	if err := ValidateTagName(tag); err != nil {
		return err
	}
	return r.run(ctx, "push", r.opts.Remote, tag)
}

func (r *execGitRepository) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = r.dir
	var identity []string
	if r.opts.TaggerName != "" {
		identity = append(identity, "GIT_COMMITTER_NAME="+r.opts.TaggerName)
	}
	if r.opts.TaggerEmail != "" {
		identity = append(identity, "GIT_COMMITTER_EMAIL="+r.opts.TaggerEmail)
	}
	if len(identity) > 0 {
		cmd.Env = append(os.Environ(), identity...)
	}
	return cmd
}

// output runs a read-only git command and returns its trimmed stdout.
func (r *execGitRepository) output(ctx context.Context, args ...string) (string, error) {
	cmd := r.command(ctx, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", commandError(args, stderr.String(), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// run executes a mutating git command, streaming its output.
func (r *execGitRepository) run(ctx context.Context, args ...string) error {
	cmd := r.command(ctx, args...)
	var stderr bytes.Buffer
	cmd.Stdout = r.stdout
	cmd.Stderr = io.MultiWriter(r.stderr, &stderr)
	if err := cmd.Run(); err != nil {
		return commandError(args, stderr.String(), err)
	}
	return nil
}

func commandError(args []string, stderr string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && strings.TrimSpace(stderr) != "" {
		return fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(stderr), err)
	}
	return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
}
