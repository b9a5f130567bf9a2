package commands

import "github.com/spf13/cobra"

func (c *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the plan and catalogs and list tasks in prerequisite order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.WithOutput(cmd.OutOrStdout()).Validate(cmd.Context())
		},
	}
}
