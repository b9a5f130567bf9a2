package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/taskmill/internal/app"
)

func (c *CLI) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the task and worker catalogs",
	}
	cmd.AddCommand(c.newCatalogImportCmd())
	return cmd
}

func (c *CLI) newCatalogImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the csv catalogs into the sqlite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, _ := cmd.Flags().GetString("products")
			workers, _ := cmd.Flags().GetString("workers")
			database, _ := cmd.Flags().GetString("database")
			return c.app.ImportCatalog(cmd.Context(), app.ImportOptions{
				Products: products,
				Workers:  workers,
				Database: database,
			})
		},
	}
	cmd.Flags().String("products", "", "Task catalog csv (default: plan value)")
	cmd.Flags().String("workers", "", "Worker catalog csv (default: plan value)")
	cmd.Flags().String("database", "", "Target sqlite database (default: plan value)")
	return cmd
}
