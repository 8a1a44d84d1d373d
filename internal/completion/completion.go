// Package completion provides chat-completion clients for the barcode lookup.
// It defines a provider-agnostic Client interface with implementations for
// OpenAI and Google Gemini, plus a deterministic mock for testing.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

var (
	ErrUpstream        = errors.New("completion request failed")
	ErrInvalidConfig   = errors.New("invalid completion configuration")
	ErrUnknownProvider = errors.New("unknown completion provider")
)

// Message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Message is a role-tagged instruction.
type Message struct {
	Role    string
	Content string
}

// Request is a single chat completion call.
type Request struct {
	// Model overrides the client's default model when set.
	Model string

	// MaxTokens bounds the generated output (0 = provider default).
	MaxTokens int

	Messages []Message
}

// Client is the upstream collaborator.
// Implementations must be safe for concurrent use.
type Client interface {
	// Complete returns the generated text. An empty string with a nil
	// error means the model produced no content.
	Complete(ctx context.Context, req Request) (string, error)

	// Ping checks that the provider is reachable with the configured credentials.
	Ping(ctx context.Context) error

	// Name returns the provider name.
	Name() string
}

// Config holds the options shared by all providers.
type Config struct {
	Provider     string
	APIKey       string
	Organization string
	BaseURL      string
	Model        string

	// MaxRetries bounds the transport-level retries per call.
	MaxRetries int

	// Timeout bounds each attempt.
	Timeout time.Duration
}

// New creates the client selected by cfg.Provider.
func New(ctx context.Context, cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOpenAI:
		return NewOpenAI(cfg)
	case ProviderGemini:
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// Category is a coarse classification of an upstream failure,
// safe to log and to report from health checks.
type Category string

const (
	CategoryAuth      Category = "auth"
	CategoryRateLimit Category = "rate_limit"
	CategoryTimeout   Category = "timeout"
	CategoryCanceled  Category = "canceled"
	CategoryServer    Category = "server"
	CategoryClient    Category = "client"
	CategoryTransport Category = "transport"
)

// UpstreamError wraps a provider failure.
type UpstreamError struct {
	Provider string
	Category Category
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s (%s): %v", ErrUpstream, e.Provider, e.Category, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

func wrapUpstream(provider string, err error) error {
	return &UpstreamError{Provider: provider, Category: Classify(err), Err: err}
}

// Classify returns the category of an upstream error.
func Classify(err error) Category {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Category
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	case errors.Is(err, context.Canceled):
		return CategoryCanceled
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return categoryForStatus(apiErr.StatusCode)
	}

	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return categoryForStatus(geminiErr.Code)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CategoryTimeout
	}
	return CategoryTransport
}

func categoryForStatus(status int) Category {
	switch {
	case status == 401 || status == 403:
		return CategoryAuth
	case status == 408:
		return CategoryTimeout
	case status == 429:
		return CategoryRateLimit
	case status >= 500:
		return CategoryServer
	default:
		return CategoryClient
	}
}
