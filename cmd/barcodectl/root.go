package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pricofy/barcode-lookup/internal/completion"
	"github.com/pricofy/barcode-lookup/internal/config"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9E9F4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "barcodectl",
	Short: "barcodectl - ask the barcode assistant from the command line",
	Long: `barcodectl runs the barcode lookup handler locally.

Configuration is read from the environment, .env and .env.local:
  COMPLETION_PROVIDER  - openai (default) or gemini
  OPENAI_API_KEY       - OpenAI API key
  GEMINI_API_KEY       - Gemini API key
  DEFAULT_LANGUAGE     - fallback answer language (default: en)`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log handler activity to stderr")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

// loadClient reads configuration and creates the completion client.
func loadClient(ctx context.Context) (*config.Config, completion.Client, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	client, err := completion.New(ctx, cfg.Completion)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}
