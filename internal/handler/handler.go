// Package handler provides the request handler for the barcode lookup function.
package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pricofy/barcode-lookup/internal/completion"
	"github.com/pricofy/barcode-lookup/internal/domain"
	"github.com/pricofy/barcode-lookup/internal/locale"
	"github.com/pricofy/barcode-lookup/internal/prompt"
)

const (
	// DefaultMaxTokens is the output budget for one answer.
	DefaultMaxTokens = 150

	// DefaultTimeout bounds a single upstream call including client retries.
	DefaultTimeout = 20 * time.Second
)

var errNoClient = errors.New("no completion client configured")

// Config holds the process-wide settings of a Handler.
type Config struct {
	// Model is the completion model identifier (empty = provider default).
	Model string

	// MaxTokens bounds the generated answer.
	MaxTokens int

	// Timeout bounds the upstream call.
	Timeout time.Duration

	// Locales resolves request languages (nil = embedded table).
	Locales *locale.Table
}

// Handler validates lookup requests, builds the prompt and calls the
// completion API. A Handler holds no per-request state and is safe for
// concurrent use.
type Handler struct {
	client completion.Client
	logger zerolog.Logger
	config Config
}

// New creates a Handler using client for completions.
func New(client completion.Client, logger zerolog.Logger, cfg Config) *Handler {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Locales == nil {
		cfg.Locales = locale.Default()
	}
	return &Handler{
		client: client,
		logger: logger,
		config: cfg,
	}
}

// Handle processes a barcode lookup request.
// Errors are *Error values of kind InvalidArgument or UpstreamFailure.
func (h *Handler) Handle(ctx context.Context, req domain.Request) (*domain.Response, error) {
	log := h.logger.With().
		Str("request_id", requestID(ctx)).
		Str("barcode", strings.TrimSpace(req.Barcode)).
		Str("barcode_format", req.BarcodeFormat).
		Str("language", req.Language).
		Logger()

	// Validate request
	if err := validateRequest(req); err != nil {
		log.Error().Err(err).Msg("rejected barcode lookup")
		return nil, invalidArgument(err)
	}

	loc := h.config.Locales.Resolve(req.Language)
	plan := prompt.Build(req, loc)
	log.Info().
		Str("locale", loc.Code).
		Stringer("symbology", plan.Symbology).
		Msg("barcode lookup received")
	log.Debug().Str("prompt", plan.User).Msg("prompt built")

	if h.client == nil {
		log.Error().Err(errNoClient).Msg("completion failed")
		return nil, upstreamFailure(errNoClient)
	}

	callCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	start := time.Now()
	text, err := h.client.Complete(callCtx, completion.Request{
		Model:     h.config.Model,
		MaxTokens: h.config.MaxTokens,
		Messages:  plan.Messages(),
	})
	elapsed := time.Since(start)
	if err != nil {
		log.Error().
			Err(err).
			Str("category", string(completion.Classify(err))).
			Dur("elapsed", elapsed).
			Msg("completion failed")
		return nil, upstreamFailure(err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn().Dur("elapsed", elapsed).Msg("completion returned no content")
		return domain.NewResponse(""), nil
	}

	log.Info().Int("length", len(text)).Dur("elapsed", elapsed).Msg("completion received")
	log.Debug().Str("result", text).Msg("completion text")
	return domain.NewResponse(text), nil
}

// validateRequest checks the request is valid.
// The barcode format is optional.
func validateRequest(req domain.Request) error {
	if strings.TrimSpace(req.Barcode) == "" {
		return fmt.Errorf("barcode is required")
	}
	return nil
}

// requestID returns the Lambda request ID, or a fresh ID outside Lambda.
func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
