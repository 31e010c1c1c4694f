package cmd

import (
	"fmt"
	"strings"

	"github.com/compozy/tagdeploy/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tag-deploy %s (commit %s, built %s)\n",
				orDefault(version.Summary(), "dev"),
				orDefault(version.CommitHash, "unknown"),
				orDefault(version.BuildDate, "unknown"),
			)
			return nil
		},
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
