package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/calscribe/calscribe/internal/model"
	"github.com/calscribe/calscribe/internal/prompt"
)

// ExtractRequest carries everything one extraction call needs.
type ExtractRequest struct {
	// Transcript is the formatted conversation text.
	Transcript string

	// Owner is the calendar owner's display name.
	Owner string

	// Now resolves relative time references in the conversation.
	Now time.Time

	// CalendarContext is the pre-formatted existing-events block, empty
	// when no calendar is available.
	CalendarContext string
}

// Extractor produces extraction results from transcripts.
type Extractor interface {
	ExtractEvents(ctx context.Context, req ExtractRequest) (*model.ExtractionResult, error)
}

// Supported providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Config selects and parameterizes the model provider.
type Config struct {
	Provider string
	Model    string

	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string
}

// ConfigFromEnv reads the provider configuration from the environment.
func ConfigFromEnv() Config {
	cfg := Config{
		Provider:        os.Getenv("CALSCRIBE_LLM_PROVIDER"),
		Model:           os.Getenv("CALSCRIBE_LLM_MODEL"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OllamaHost:      os.Getenv("OLLAMA_HOST"),
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	return cfg
}

// Client is the live extractor over langchaingo.
type Client struct {
	llm       llms.Model
	modelName string
}

// NewClient builds a client for the configured provider.
func NewClient(cfg Config) (*Client, error) {
	var (
		m   llms.Model
		err error
	)

	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		opts := []openai.Option{openai.WithToken(cfg.OpenAIAPIKey)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		m, err = openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		opts := []anthropic.Option{anthropic.WithToken(cfg.AnthropicAPIKey)}
		if cfg.Model != "" {
			opts = append(opts, anthropic.WithModel(cfg.Model))
		}
		m, err = anthropic.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	case ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.OllamaHost != "" {
			opts = append(opts, ollama.WithServerURL(cfg.OllamaHost))
		}
		m, err = ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return &Client{llm: m, modelName: cfg.Model}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.modelName
}

// ExtractEvents runs one extraction call and parses the model's JSON reply.
func (c *Client) ExtractEvents(ctx context.Context, req ExtractRequest) (*model.ExtractionResult, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem,
			prompt.BuildSystemPrompt(req.Owner, req.Now, req.CalendarContext)),
		llms.TextParts(llms.ChatMessageTypeHuman,
			prompt.BuildUserPrompt(req.Transcript)),
	}

	response, err := c.llm.GenerateContent(ctx, messages, llms.WithJSONMode())
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("extraction call returned no choices")
	}

	choice := response.Choices[0]
	result, err := ParseResponse([]byte(choice.Content))
	if err != nil {
		return nil, err
	}

	result.Usage = usageFromGenerationInfo(choice.GenerationInfo)
	return result, nil
}

// usageFromGenerationInfo extracts token counts from the provider-specific
// generation info, best effort.
func usageFromGenerationInfo(info map[string]any) model.Usage {
	get := func(keys ...string) int {
		for _, key := range keys {
			if v, ok := info[key]; ok {
				switch n := v.(type) {
				case int:
					return n
				case int64:
					return int(n)
				case float64:
					return int(n)
				}
			}
		}
		return 0
	}

	u := model.Usage{
		InputTokens:  get("PromptTokens", "InputTokens"),
		OutputTokens: get("CompletionTokens", "OutputTokens"),
		TotalTokens:  get("TotalTokens"),
	}
	if u.TotalTokens == 0 {
		u.TotalTokens = u.InputTokens + u.OutputTokens
	}
	return u
}
