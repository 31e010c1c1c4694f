package orchestrator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/compozy/tagdeploy/internal/output"
	"github.com/compozy/tagdeploy/internal/repository"
	"github.com/compozy/tagdeploy/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TagDeployConfig contains the options of one tag-deploy invocation.
type TagDeployConfig struct {
	Environment string
	DryRun      bool
	CIOutput    bool
	Release     bool
}

// Dependencies are the collaborators of the orchestrators.
type Dependencies struct {
	TagRepo         repository.TagRepository
	ReleaseRepo     repository.ReleaseRepository
	FsRepo          repository.FileSystemRepository
	Lock            repository.WorkingCopyLock
	Clock           domain.Clock
	Logger          *zap.Logger
	UI              *output.UI
	TagMessage      string
	WorkflowTimeout time.Duration
}

// TagDeployOrchestrator resolves, creates and pushes the next deployment tag.
type TagDeployOrchestrator struct {
	deps Dependencies
}

// NewTagDeployOrchestrator creates a new tag deploy orchestrator.
func NewTagDeployOrchestrator(deps Dependencies) *TagDeployOrchestrator {
	if deps.Clock == nil {
		deps.Clock = domain.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.UI == nil {
		deps.UI = output.New()
	}
	return &TagDeployOrchestrator{deps: deps}
}

// Execute runs the tag deploy workflow.
func (o *TagDeployOrchestrator) Execute(ctx context.Context, cfg TagDeployConfig) error {
	if o.deps.WorkflowTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.deps.WorkflowTimeout)
		defer cancel()
	}
	runID := uuid.New().String()
	logger := o.deps.Logger.With(zap.String("run_id", runID))
	if !cfg.DryRun && o.deps.Lock != nil {
		if err := o.deps.Lock.Acquire(ctx); err != nil {
			return err
		}
		defer func() {
			if err := o.deps.Lock.Release(); err != nil {
				logger.Warn("failed to release working copy lock", zap.Error(err))
			}
		}()
	}
	resolver := &usecase.ResolveTagUseCase{
		TagRepo: o.deps.TagRepo,
		Clock:   o.deps.Clock,
		Logger:  logger,
	}
	plan, err := resolver.Execute(ctx, cfg.Environment)
	if err != nil {
		return err
	}
	for _, name := range plan.Skipped {
		o.deps.UI.Warning("ignoring malformed tag %s", name)
	}
	o.printPlan(plan)
	if cfg.CIOutput {
		if err := o.writeCIOutput(plan); err != nil {
			return err
		}
	}
	if cfg.DryRun {
		o.printDryRun(plan)
		return nil
	}
	executor := NewStepExecutor(runID, o.deps.Clock, logger)
	executor.SetTag(plan.NewTag.String())
	o.addCreateTagStep(executor, plan)
	o.addPushTagStep(executor, plan)
	if cfg.Release {
		o.addPublishReleaseStep(executor, plan)
	}
	if err := executor.Execute(ctx); err != nil {
		return err
	}
	logger.Info("deployment tag pushed",
		zap.String("tag", plan.NewTag.String()),
		zap.String("remote", plan.Remote),
	)
	o.deps.UI.Println("Done.")
	return nil
}

func (o *TagDeployOrchestrator) printPlan(plan *domain.Plan) {
	o.deps.UI.Printf("Environment: %s\n", plan.Environment)
	o.deps.UI.Printf("Latest tag found: %s\n", plan.LatestOrNone())
	o.deps.UI.Printf("New tag: %s\n", plan.NewTag)
}

func (o *TagDeployOrchestrator) printDryRun(plan *domain.Plan) {
	o.deps.UI.Println()
	o.deps.UI.Println("Dry run - commands that would run:")
	for _, command := range plan.Commands() {
		o.deps.UI.Println(command)
	}
}

// writeCIOutput prints the plan as key=value lines and appends them to
// $GITHUB_OUTPUT when it is set.
func (o *TagDeployOrchestrator) writeCIOutput(plan *domain.Plan) error {
	lines := ciOutputLines(plan)
	for _, line := range lines {
		o.deps.UI.Println(line)
	}
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" || o.deps.FsRepo == nil {
		return nil
	}
	f, err := o.deps.FsRepo.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FilePermissionsReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open GitHub output file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return fmt.Errorf("failed to write GitHub output file: %w", err)
	}
	return nil
}

func ciOutputLines(plan *domain.Plan) []string {
	return []string{
		fmt.Sprintf("environment=%s", plan.Environment),
		fmt.Sprintf("latest_tag=%s", plan.LatestTag),
		fmt.Sprintf("tag=%s", plan.NewTag),
	}
}

func (o *TagDeployOrchestrator) addCreateTagStep(executor *StepExecutor, plan *domain.Plan) {
	uc := &usecase.CreateTagUseCase{TagRepo: o.deps.TagRepo, Message: o.deps.TagMessage}
	executor.AddStep(Step{
		Name: "Create tag",
		Type: domain.StepTypeCreateTag,
		Execute: func(ctx context.Context) error {
			o.deps.UI.Println("Creating tag...")
			if err := uc.Execute(ctx, plan.NewTag); err != nil {
				return err
			}
			o.deps.UI.Printf("Created tag %s\n", plan.NewTag)
			return nil
		},
	})
}

func (o *TagDeployOrchestrator) addPushTagStep(executor *StepExecutor, plan *domain.Plan) {
	uc := &usecase.PushTagUseCase{TagRepo: o.deps.TagRepo}
	executor.AddStep(Step{
		Name: "Push tag",
		Type: domain.StepTypePushTag,
		Execute: func(ctx context.Context) error {
			o.deps.UI.Println("Pushing tag...")
			if err := uc.Execute(ctx, plan.NewTag); err != nil {
				return err
			}
			o.deps.UI.Printf("Pushed tag %s to %s\n", plan.NewTag, plan.Remote)
			return nil
		},
	})
}

func (o *TagDeployOrchestrator) addPublishReleaseStep(executor *StepExecutor, plan *domain.Plan) {
	uc := &usecase.PublishReleaseUseCase{
		ReleaseRepo: o.deps.ReleaseRepo,
		RetryCount:  DefaultRetryCount,
		RetryDelay:  DefaultRetryDelay,
	}
	executor.AddStep(Step{
		Name: "Publish release",
		Type: domain.StepTypePublishRelease,
		Execute: func(ctx context.Context) error {
			if o.deps.ReleaseRepo == nil {
				return fmt.Errorf("%w: no release repository configured", domain.ErrReleasePublishFailed)
			}
			o.deps.UI.Println("Publishing release...")
			url, err := uc.Execute(ctx, plan)
			if err != nil {
				return err
			}
			o.deps.UI.Printf("Published release %s\n", url)
			return nil
		},
	})
}
