package provider

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	autotranslate "github.com/pigmentab/auto-translate"
)

// DefaultTimeout bounds a single provider call when no override is given.
const DefaultTimeout = 30 * time.Second

// OpenAIProvider implements Provider using OpenAI's chat completions API in
// JSON-object response mode. It never retries; a timed-out or failed call is
// surfaced to the caller with locale-pair context.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey  string        // API key (uses OPENAI_API_KEY env var if empty)
	BaseURL string        // Custom base URL (optional)
	Model   string        // Fallback model when settings carry none
	Timeout time.Duration // Per-call timeout (default: DefaultTimeout)
}

// NewOpenAIProvider creates a new OpenAI provider. A missing API key is
// reported on the first call, not here, so construction stays infallible for
// hosts that configure lazily.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	var client *openai.Client
	if apiKey != "" {
		config := openai.DefaultConfig(apiKey)
		if cfg.BaseURL != "" {
			config.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(config)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &OpenAIProvider{
		client:  client,
		model:   cfg.Model,
		timeout: timeout,
	}
}

// Translate sends the deduplicated string map and parses the JSON-object
// response into a path -> translated-string mapping. Non-string values in
// the response are dropped; missing paths are tolerated.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (map[string]string, error) {
	if req.Strings == nil || req.Strings.Len() == 0 {
		return map[string]string{}, nil
	}

	payload, err := json.MarshalIndent(req.Strings, "", "  ")
	if err != nil {
		return nil, err
	}

	content, err := p.chat(ctx, req.Settings, req.Settings.SystemMessage(req.FromLocale, req.ToLocale), string(payload))
	if err != nil {
		return nil, &autotranslate.ProviderError{
			Message:    "translation request failed",
			Cause:      err,
			FromLocale: req.FromLocale,
			ToLocale:   req.ToLocale,
		}
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, autotranslate.NewParseError("invalid JSON response", err, content)
	}

	translations := make(map[string]string, len(raw))
	for path, value := range raw {
		if s, ok := value.(string); ok {
			translations[path] = s
		}
	}
	return translations, nil
}

// TranslateDocument is the legacy whole-document mode: the entire document is
// the user payload and the parsed JSON object is returned as-is.
func (p *OpenAIProvider) TranslateDocument(ctx context.Context, doc map[string]any, fromLocale, toLocale string, settings autotranslate.Settings) (map[string]any, error) {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	content, err := p.chat(ctx, settings, settings.SystemMessage(fromLocale, toLocale), string(payload))
	if err != nil {
		return nil, &autotranslate.ProviderError{
			Message:    "document translation request failed",
			Cause:      err,
			FromLocale: fromLocale,
			ToLocale:   toLocale,
		}
	}

	var translated map[string]any
	if err := json.Unmarshal([]byte(content), &translated); err != nil {
		return nil, autotranslate.NewParseError("invalid JSON response", err, content)
	}
	return translated, nil
}

// chat performs one JSON-mode chat completion under the configured timeout.
func (p *OpenAIProvider) chat(ctx context.Context, settings autotranslate.Settings, system, user string) (string, error) {
	if p.client == nil {
		return "", &autotranslate.ConfigError{
			Message: "OpenAI API key is required: set OPENAI_API_KEY or provide it in the provider config",
		}
	}

	model := settings.Model
	if model == "" {
		model = p.model
	}
	if model == "" {
		model = autotranslate.DefaultSettings().Model
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: settings.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	if settings.MaxTokens > 0 {
		req.MaxTokens = settings.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &autotranslate.ProviderError{Message: "no response choices returned"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Verify OpenAIProvider implements both provider interfaces.
var (
	_ Provider           = (*OpenAIProvider)(nil)
	_ DocumentTranslator = (*OpenAIProvider)(nil)
)
