package cmd

import (
	"github.com/compozy/tagdeploy/internal/orchestrator"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "list <environment>",
		Short: "List the deployment tags of a month and the next tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(verbose)
			if err != nil {
				return err
			}
			defer c.close()
			orch := orchestrator.NewListOrchestrator(c.dependencies())
			return orch.Execute(cmd.Context(), orchestrator.ListConfig{
				Environment: args[0],
				Month:       month,
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month to list as YYYY-MM (default: current UTC month)")
	return cmd
}
