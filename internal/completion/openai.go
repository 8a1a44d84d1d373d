package completion

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-3.5-turbo"

// OpenAIClient implements Client using OpenAI's chat completions API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-backed client.
// Returns an error if the API key is missing.
func NewOpenAI(cfg Config) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing OpenAI API key", ErrInvalidConfig)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.Organization != "" {
		opts = append(opts, option.WithOrganization(cfg.Organization))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Name implements Client.
func (o *OpenAIClient) Name() string { return ProviderOpenAI }

// Complete sends the messages to OpenAI and returns the first choice's content.
func (o *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case RoleUser:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		default:
			return "", fmt.Errorf("%w: unsupported message role %q", ErrInvalidConfig, m.Role)
		}
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", wrapUpstream(ProviderOpenAI, err)
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

// Ping retrieves the configured model, which needs a valid key and a reachable API.
func (o *OpenAIClient) Ping(ctx context.Context) error {
	if _, err := o.client.Models.Get(ctx, o.model); err != nil {
		return wrapUpstream(ProviderOpenAI, err)
	}
	return nil
}
