// Package config loads the function configuration from the environment.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"

	"github.com/pricofy/barcode-lookup/internal/completion"
	"github.com/pricofy/barcode-lookup/internal/locale"
)

// Bounds for tunables.
const (
	MinOutputTokens = 150
	MaxOutputTokens = 250
	MaxRetries      = 5
)

// ErrMissingCredential is returned when the selected provider has no API key.
var ErrMissingCredential = errors.New("missing API credential")

// Config is the process-wide configuration. It is read-only after Load.
type Config struct {
	Environment string
	LogLevel    string

	// MaxOutputTokens is the answer budget, within [MinOutputTokens, MaxOutputTokens].
	MaxOutputTokens int

	// Locales resolves request languages; its fallback is DEFAULT_LANGUAGE.
	Locales *locale.Table

	Completion completion.Config
}

// SecretsAPI is the subset of the Secrets Manager client used to load credentials.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Loader reads configuration from an environment.
type Loader struct {
	// Getenv looks up a variable (default os.Getenv).
	Getenv func(string) string

	// Secrets fetches *_SECRET_ID values. When nil, a client is created
	// from the default AWS configuration on first use.
	Secrets SecretsAPI
}

// Load reads .env files when present, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	loadDotEnv()
	return (&Loader{Getenv: os.Getenv}).Load(ctx)
}

// LoadLocales returns the locale table with the configured fallback. It
// needs no provider credentials.
func LoadLocales() (*locale.Table, error) {
	loadDotEnv()
	return (&Loader{Getenv: os.Getenv}).Locales()
}

func loadDotEnv() {
	// Missing files are not an error; existing variables win.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

// Locales returns the locale table with DEFAULT_LANGUAGE as its fallback.
func (l *Loader) Locales() (*locale.Table, error) {
	if l.Getenv == nil {
		l.Getenv = os.Getenv
	}
	table, err := locale.Default().WithFallback(l.getenv("DEFAULT_LANGUAGE", locale.Fallback))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_LANGUAGE: %w", err)
	}
	return table, nil
}

// Load builds and validates a Config.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	if l.Getenv == nil {
		l.Getenv = os.Getenv
	}

	cfg := &Config{
		Environment:     l.getenv("ENVIRONMENT", "dev"),
		LogLevel:        l.getenv("LOG_LEVEL", "info"),
		MaxOutputTokens: clamp(l.getint("MAX_OUTPUT_TOKENS", MinOutputTokens), MinOutputTokens, MaxOutputTokens),
	}

	locales, err := l.Locales()
	if err != nil {
		return nil, err
	}
	cfg.Locales = locales

	timeout, err := l.getduration("UPSTREAM_TIMEOUT", 20*time.Second)
	if err != nil {
		return nil, err
	}

	provider := strings.ToLower(l.getenv("COMPLETION_PROVIDER", completion.ProviderOpenAI))
	cfg.Completion = completion.Config{
		Provider:   provider,
		MaxRetries: clamp(l.getint("UPSTREAM_MAX_RETRIES", 2), 0, MaxRetries),
		Timeout:    timeout,
	}

	switch provider {
	case completion.ProviderOpenAI:
		cfg.Completion.Organization = l.Getenv("OPENAI_ORG_ID")
		cfg.Completion.BaseURL = l.Getenv("OPENAI_BASE_URL")
		cfg.Completion.Model = l.getenv("OPENAI_MODEL", completion.DefaultOpenAIModel)
		cfg.Completion.APIKey, err = l.secret(ctx, "OPENAI_API_KEY")
	case completion.ProviderGemini:
		cfg.Completion.BaseURL = l.Getenv("GEMINI_BASE_URL")
		cfg.Completion.Model = l.getenv("GEMINI_MODEL", completion.DefaultGeminiModel)
		cfg.Completion.APIKey, err = l.secret(ctx, "GEMINI_API_KEY")
	default:
		return nil, fmt.Errorf("%w: %q", completion.ErrUnknownProvider, provider)
	}
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// secret returns the variable key, or the Secrets Manager value named by
// key_SECRET_ID when the variable is unset.
func (l *Loader) secret(ctx context.Context, key string) (string, error) {
	if v := strings.TrimSpace(l.Getenv(key)); v != "" {
		return v, nil
	}

	secretID := l.Getenv(key + "_SECRET_ID")
	if secretID == "" {
		return "", fmt.Errorf("%w: set %s or %s_SECRET_ID", ErrMissingCredential, key, key)
	}

	if l.Secrets == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to load AWS config: %w", err)
		}
		l.Secrets = secretsmanager.NewFromConfig(awsCfg)
	}

	out, err := l.Secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read secret for %s: %w", key, err)
	}

	value := strings.TrimSpace(aws.ToString(out.SecretString))
	// Secrets may hold a JSON object keyed by variable name.
	if strings.HasPrefix(value, "{") {
		var fields map[string]any
		if err := json.Unmarshal([]byte(value), &fields); err != nil {
			return "", fmt.Errorf("%w: secret for %s is not valid JSON", ErrMissingCredential, key)
		}
		field, _ := fields[key].(string)
		value = strings.TrimSpace(field)
	}
	if value == "" {
		return "", fmt.Errorf("%w: secret for %s is empty", ErrMissingCredential, key)
	}
	return value, nil
}

func (l *Loader) getenv(k, def string) string {
	if v := strings.TrimSpace(l.Getenv(k)); v != "" {
		return v
	}
	return def
}

func (l *Loader) getint(k string, def int) int {
	v, err := strconv.Atoi(l.getenv(k, ""))
	if err != nil {
		return def
	}
	return v
}

// getduration accepts Go durations ("20s") or whole seconds ("20").
func (l *Loader) getduration(k string, def time.Duration) (time.Duration, error) {
	v := l.getenv(k, "")
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		v = strconv.Itoa(secs) + "s"
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", k, v)
	}
	return d, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
