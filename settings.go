package autotranslate

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Settings is the translation settings record: prompt template, rule text and
// model parameters. It is resolved once per translation batch and threaded
// through every call rather than read from a global.
type Settings struct {
	// SystemPrompt is the main instruction for the translator. {fromLocale}
	// and {toLocale} are substituted with language names at call time.
	SystemPrompt string

	// TranslationRules is free text appended after the system prompt.
	TranslationRules string

	// Model is the provider model identifier.
	Model string

	// Temperature controls sampling randomness (0.0-2.0).
	Temperature float32

	// MaxTokens bounds the response when positive.
	MaxTokens int
}

// DefaultSettings returns the hard-coded settings used when no persisted
// record is available.
func DefaultSettings() Settings {
	return Settings{
		SystemPrompt: "You are a professional translator. Translate the JSON object values from {fromLocale} to {toLocale}.",
		TranslationRules: `Rules:
- Only translate the values, never the keys
- Preserve the exact JSON structure
- Maintain formatting, HTML tags, and special characters
- Return only valid JSON without any markdown formatting or code blocks
- If a value is already in the target language or is a proper noun, keep it as is`,
		Model:       "gpt-4o",
		Temperature: 0.3,
	}
}

// SystemMessage renders the full system instruction for one locale pair:
// the prompt with locale placeholders substituted, followed by the rules.
func (s Settings) SystemMessage(fromLocale, toLocale string) string {
	prompt := strings.ReplaceAll(s.SystemPrompt, "{fromLocale}", DisplayName(fromLocale))
	prompt = strings.ReplaceAll(prompt, "{toLocale}", DisplayName(toLocale))
	if s.TranslationRules == "" {
		return prompt
	}
	return prompt + "\n\n" + s.TranslationRules
}

// withDefaults fills unset fields from DefaultSettings.
func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.SystemPrompt == "" {
		s.SystemPrompt = def.SystemPrompt
	}
	if s.TranslationRules == "" {
		s.TranslationRules = def.TranslationRules
	}
	if s.Model == "" {
		s.Model = def.Model
	}
	if s.Temperature == 0 {
		s.Temperature = def.Temperature
	}
	return s
}

// ResolveSettings fetches the persisted settings from src, falling back to
// DefaultSettings when src is nil or the fetch fails. A failed fetch is a
// degradation, not an error: translation proceeds with defaults.
func ResolveSettings(ctx context.Context, src SettingsSource, logger *zap.Logger) Settings {
	if src == nil {
		return DefaultSettings()
	}
	settings, err := src.TranslationSettings(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("could not fetch translation settings, using defaults", zap.Error(err))
		}
		return DefaultSettings()
	}
	return settings.withDefaults()
}
