package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pricofy/barcode-lookup/internal/domain"
	"github.com/pricofy/barcode-lookup/internal/handler"
	"github.com/pricofy/barcode-lookup/internal/logging"
)

var (
	format   string
	title    string
	language string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [barcode]",
	Short: "Ask what a barcode means",
	Example: `  barcodectl lookup 4006381333931 --language de
  barcodectl lookup "https://example.com" --format QR_CODE`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVar(&format, "format", "", "Barcode symbology, e.g. EAN_13 or QR_CODE")
	lookupCmd.Flags().StringVar(&title, "title", "", "Known product title")
	lookupCmd.Flags().StringVar(&language, "language", "", "Answer language (de, en, es, fr, it)")
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, client, err := loadClient(ctx)
	if err != nil {
		return err
	}

	logger := zerolog.Nop()
	if verbose {
		logger = logging.NewConsole(os.Stderr, "debug")
	}

	h := handler.New(client, logger, handler.Config{
		Model:     cfg.Completion.Model,
		MaxTokens: cfg.MaxOutputTokens,
		Timeout:   cfg.Completion.Timeout,
		Locales:   cfg.Locales,
	})

	resp, err := h.Handle(ctx, domain.Request{
		Barcode:       args[0],
		BarcodeFormat: format,
		ProductTitle:  title,
		Language:      language,
	})
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), args[0], resp)
	return nil
}

func printResult(w io.Writer, barcode string, resp *domain.Response) {
	fmt.Fprintln(w, headerStyle.Render(barcode))
	if resp.Result == nil {
		fmt.Fprintln(w, mutedStyle.Render("The assistant returned no answer."))
		return
	}
	fmt.Fprintln(w, answerStyle.Render(*resp.Result))
}
