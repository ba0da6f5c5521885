package cmd

import (
	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and refresh the server's catalog snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := newClient().CatalogStatus(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(status)
			}
			return printCatalogStatus(status)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Force a catalog refresh",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := newClient().RefreshCatalog(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(status)
			}
			return printCatalogStatus(status)
		},
	})

	return cmd
}
