package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-tmv1"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := struct {
				Version    string `json:"version"`
				APIVersion string `json:"apiVersion"`
			}{tmv1.Version, "v3.0"}

			return render(cmd.OutOrStdout(), info, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				if err := table.Append("Version", info.Version); err != nil {
					return err
				}
				return table.Append("API Version", info.APIVersion)
			})
		},
	}
}

// NewConnectivityCommand creates the connectivity check command.
func NewConnectivityCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "connectivity",
		Aliases: []string{"ping"},
		Short:   "Check API connectivity and token validity",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			status, err := client.CheckConnectivity(cmd.Context()).Value()
			if err != nil {
				return fmt.Errorf("connectivity check failed: %w", err)
			}

			return render(cmd.OutOrStdout(), status, func(table *tablewriter.Table) error {
				table.Header("URL", "Status")
				return table.Append(client.BaseURL(), status.Status)
			})
		},
	}
}
