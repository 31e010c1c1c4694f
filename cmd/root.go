package cmd

import (
	"fmt"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/compozy/tagdeploy/internal/orchestrator"
	"github.com/compozy/tagdeploy/pkg/version"
	"github.com/spf13/cobra"
)

const usageLine = "Usage: tag-deploy <testing|staging|production> [--dry]"

var (
	dryRun   bool
	ciOutput bool
	release  bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "tag-deploy <environment>",
	Short: "Create and push the next deployment tag for an environment",
	Long: `tag-deploy computes the next sequential deployment tag <env>-<YYYY>-<MM>-v<seq>
for the current UTC month, creates it on HEAD and pushes it to the remote.`,
	Args:          environmentArg,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := domain.ParseEnvironment(args[0]); err != nil {
			return err
		}
		c, err := newContainer(verbose)
		if err != nil {
			return err
		}
		defer c.close()
		orch := orchestrator.NewTagDeployOrchestrator(c.dependencies())
		cfg := orchestrator.TagDeployConfig{
			Environment: args[0],
			DryRun:      dryRun,
			CIOutput:    ciOutput,
			Release:     release || c.cfg.GithubRelease,
		}
		if cfg.Release && !cfg.DryRun {
			if err := c.enableRelease(); err != nil {
				return err
			}
		}
		return orch.Execute(cmd.Context(), cfg)
	},
}

func environmentArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s", domain.ErrUsage, usageLine)
	}
	return nil
}

// InitCommands registers flags and subcommands.
func InitCommands() {
	rootCmd.Version = version.Summary()
	flags := rootCmd.Flags()
	flags.BoolVar(&dryRun, "dry", false, "Print the next tag and the commands without running them")
	flags.BoolVar(&ciOutput, "ci-output", false, "Also print key=value lines and append them to $GITHUB_OUTPUT")
	flags.BoolVar(&release, "release", false, "Publish a GitHub release for the pushed tag")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func Execute() error {
	return rootCmd.Execute()
}
