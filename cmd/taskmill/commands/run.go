package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/taskmill/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the order and print the schedule",
		Example: `  taskmill run
  taskmill run --order Box=5 --order Lid=2 --workers Alice,Bob
  taskmill run --gating any-produced --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			order, _ := flags.GetStringToInt("order")
			workers, _ := flags.GetStringSlice("workers")
			slot, _ := flags.GetInt("slot-minutes")
			workday, _ := flags.GetInt("workday-minutes")
			gating, _ := flags.GetString("gating")
			format, _ := flags.GetString("format")
			noCache, _ := flags.GetBool("no-cache")

			return c.app.WithOutput(cmd.OutOrStdout()).Run(cmd.Context(), app.RunOptions{
				Order:          order,
				Workers:        workers,
				SlotMinutes:    slot,
				WorkdayMinutes: workday,
				Gating:         gating,
				Format:         format,
				NoCache:        noCache,
			})
		},
	}
	cmd.Flags().StringToInt("order", nil, "Order quantity per product, merged into the plan (e.g. Box=5)")
	cmd.Flags().StringSlice("workers", nil, "Workers to schedule (default: plan selection or every catalog worker)")
	cmd.Flags().Int("slot-minutes", 0, "Slot length in minutes (default: plan value)")
	cmd.Flags().Int("workday-minutes", 0, "Workday length in minutes (default: plan value)")
	cmd.Flags().String("gating", "", "Prerequisite gating policy: quantity-complete or any-produced")
	cmd.Flags().StringP("format", "o", "grid", "Output format: grid or json")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the run cache and simulate again")
	return cmd
}
