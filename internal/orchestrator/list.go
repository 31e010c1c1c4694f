package orchestrator

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/compozy/tagdeploy/internal/output"
	"github.com/compozy/tagdeploy/internal/usecase"
)

// ListConfig contains the options of the list command.
type ListConfig struct {
	Environment string
	// Month is YYYY-MM. Empty means the current UTC month.
	Month string
}

// ListOrchestrator prints the deployment tags of one month. It never mutates.
type ListOrchestrator struct {
	deps Dependencies
}

// NewListOrchestrator creates a new list orchestrator.
func NewListOrchestrator(deps Dependencies) *ListOrchestrator {
	return &ListOrchestrator{deps: NewTagDeployOrchestrator(deps).deps}
}

// Execute prints the tags as a table followed by the proposed next tag.
func (o *ListOrchestrator) Execute(ctx context.Context, cfg ListConfig) error {
	clock := o.deps.Clock
	if cfg.Month != "" {
		month, err := ParseMonth(cfg.Month)
		if err != nil {
			return err
		}
		clock = domain.FixedClock(month)
	}
	resolver := &usecase.ResolveTagUseCase{
		TagRepo: o.deps.TagRepo,
		Clock:   clock,
		Logger:  o.deps.Logger,
	}
	plan, err := resolver.Execute(ctx, cfg.Environment)
	if err != nil {
		return err
	}
	if len(plan.Candidates) == 0 {
		o.deps.UI.Printf("No tags match %s\n", plan.Pattern)
	} else {
		table := o.deps.UI.Table([]string{"TAG", "SEQUENCE"})
		for _, name := range plan.Candidates {
			seq := "-"
			if tag, err := domain.ParseTag(name); err == nil {
				seq = strconv.Itoa(tag.Sequence)
			}
			if err := table.Append([]string{name, seq}); err != nil {
				return fmt.Errorf("failed to render tag table: %w", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render tag table: %w", err)
		}
	}
	o.deps.UI.Printf("Next tag: %s\n", output.Cyan(plan.NewTag.String()))
	return nil
}

// ParseMonth parses a YYYY-MM month into its first instant in UTC.
func ParseMonth(s string) (time.Time, error) {
	month, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid month %q (expected YYYY-MM)", domain.ErrUsage, s)
	}
	return month.UTC(), nil
}
