package autotranslate

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSettings_SystemMessage(t *testing.T) {
	s := Settings{
		SystemPrompt:     "Translate from {fromLocale} to {toLocale}.",
		TranslationRules: "Keep keys intact.",
	}

	got := s.SystemMessage("en", "sv")
	want := "Translate from English to Swedish.\n\nKeep keys intact."
	if got != want {
		t.Errorf("SystemMessage() = %q, want %q", got, want)
	}
}

func TestSettings_SystemMessageWithoutRules(t *testing.T) {
	s := Settings{SystemPrompt: "To {toLocale}."}
	if got := s.SystemMessage("en", "de"); got != "To German." {
		t.Errorf("SystemMessage() = %q", got)
	}
}

func TestSettings_WithDefaults(t *testing.T) {
	s := Settings{Model: "gpt-4o-mini"}.withDefaults()

	def := DefaultSettings()
	if s.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, set field must survive", s.Model)
	}
	if s.SystemPrompt != def.SystemPrompt {
		t.Errorf("SystemPrompt not defaulted")
	}
	if s.Temperature != def.Temperature {
		t.Errorf("Temperature = %v, want default", s.Temperature)
	}
}

func TestResolveSettings(t *testing.T) {
	t.Run("nil source", func(t *testing.T) {
		got := ResolveSettings(context.Background(), nil, nil)
		if got.Model != DefaultSettings().Model {
			t.Errorf("Model = %q", got.Model)
		}
	})

	t.Run("source error degrades to defaults", func(t *testing.T) {
		src := settingsSourceFunc(func(context.Context) (Settings, error) {
			return Settings{}, errors.New("settings table missing")
		})
		got := ResolveSettings(context.Background(), src, nil)
		if got.SystemPrompt != DefaultSettings().SystemPrompt {
			t.Errorf("SystemPrompt = %q, want default", got.SystemPrompt)
		}
	})

	t.Run("stored settings filled with defaults", func(t *testing.T) {
		src := settingsSourceFunc(func(context.Context) (Settings, error) {
			return Settings{SystemPrompt: "Custom prompt for {toLocale}."}, nil
		})
		got := ResolveSettings(context.Background(), src, nil)
		if got.SystemPrompt != "Custom prompt for {toLocale}." {
			t.Errorf("SystemPrompt = %q", got.SystemPrompt)
		}
		if got.Model != DefaultSettings().Model {
			t.Errorf("Model = %q, want default fill", got.Model)
		}
	})
}

func TestDefaultSettings_RulesMentionJSON(t *testing.T) {
	rules := DefaultSettings().TranslationRules
	if !strings.Contains(rules, "valid JSON") {
		t.Errorf("default rules lost the JSON-only instruction: %q", rules)
	}
}
