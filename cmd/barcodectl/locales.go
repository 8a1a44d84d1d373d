package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pricofy/barcode-lookup/internal/config"
)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List supported answer languages",
	Long: `List the supported answer languages and their instruction phrases.
The fallback honours DEFAULT_LANGUAGE.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := config.LoadLocales()
		if err != nil {
			return err
		}
		for _, code := range table.Supported() {
			loc := table.Resolve(code)
			line := fmt.Sprintf("%s  %s", code, loc.Instruction)
			if code == table.Fallback() {
				line += mutedStyle.Render("  (fallback)")
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(localesCmd)
}
