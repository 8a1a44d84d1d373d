// Package main is the entry point for the barcode lookup Lambda function.
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/pricofy/barcode-lookup/internal/completion"
	"github.com/pricofy/barcode-lookup/internal/config"
	"github.com/pricofy/barcode-lookup/internal/domain"
	"github.com/pricofy/barcode-lookup/internal/gateway"
	"github.com/pricofy/barcode-lookup/internal/handler"
	"github.com/pricofy/barcode-lookup/internal/health"
	"github.com/pricofy/barcode-lookup/internal/logging"
)

// app holds the clients built once per cold start. It is read-only
// afterwards and shared by concurrent invocations.
type app struct {
	handler *handler.Handler
	client  completion.Client
	warmer  *Warmer
	logger  zerolog.Logger
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLogger := logging.New(os.Stdout, "error")
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger := logging.New(os.Stdout, cfg.LogLevel).With().
		Str("environment", cfg.Environment).
		Str("provider", cfg.Completion.Provider).
		Logger()

	a, err := newApp(ctx, cfg, logger, os.Getenv("AWS_LAMBDA_FUNCTION_NAME"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create completion client")
	}

	lambda.Start(a.handleRequest)
}

// newApp builds the handler and its upstream client from cfg.
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger, functionName string) (*app, error) {
	client, err := completion.New(ctx, cfg.Completion)
	if err != nil {
		return nil, err
	}

	return &app{
		handler: handler.New(client, logger, handler.Config{
			Model:     cfg.Completion.Model,
			MaxTokens: cfg.MaxOutputTokens,
			Timeout:   cfg.Completion.Timeout,
			Locales:   cfg.Locales,
		}),
		client: client,
		warmer: NewWarmer(functionName, nil),
		logger: logger,
	}, nil
}

func (a *app) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup events must never reach the provider.
	if warmup, ok := IsWarmupEvent(event); ok {
		return a.warmer.Handle(ctx, warmup)
	}

	if IsHealthEvent(event) {
		report := health.Check(ctx, a.client, health.DefaultTimeout)
		if !report.Healthy() {
			a.logger.Warn().Str("category", report.Error).Msg("health check failed")
		}
		return report, nil
	}

	if gateway.IsHTTPEvent(event) {
		var req events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(event, &req); err != nil {
			return nil, err
		}
		return gateway.Serve(ctx, a.handler, req), nil
	}

	// Direct invocation: the event is the request itself.
	var req domain.Request
	if err := json.Unmarshal(event, &req); err != nil {
		a.logger.Error().Err(err).Msg("failed to decode request")
		return nil, &handler.Error{Kind: handler.InvalidArgument, Message: handler.MsgMissingBarcode}
	}

	return a.handler.Handle(ctx, req)
}
