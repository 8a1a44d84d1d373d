package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pricofy/barcode-lookup/internal/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check connectivity to the completion provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := loadClient(cmd.Context())
		if err != nil {
			return err
		}

		report := health.Check(cmd.Context(), client, health.DefaultTimeout)
		out := cmd.OutOrStdout()
		if !report.Healthy() {
			fmt.Fprintf(out, "%s %s (%s)\n", errorStyle.Render(report.Provider), report.Status, report.Error)
			return fmt.Errorf("provider %s is %s", report.Provider, report.Status)
		}
		fmt.Fprintf(out, "%s %s in %dms\n", okStyle.Render(report.Provider), report.Status, report.LatencyMS)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
