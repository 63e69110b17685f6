package cli

import (
	"github.com/spf13/cobra"

	"github.com/noisebox/artforge/internal/catalog"
)

func newStatusCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the per-category art inventory",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return printStatus(a, write)
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "also write catalog/ui_elements.json")
	return cmd
}

// printStatus scans the catalog, optionally saves it, and prints the table.
func printStatus(a *app, write bool) error {
	l := a.layout()
	c, err := catalog.Scan(l)
	if err != nil {
		return err
	}
	if write {
		path, err := catalog.Write(l, c)
		if err != nil {
			return err
		}
		a.logger.Info("wrote catalog", "path", path)
	}
	return catalog.RenderStatus(a.stdout, c)
}
