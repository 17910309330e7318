package provider

import (
	"context"
	"fmt"
)

// MockProvider is a mock translation provider for testing. Source strings
// with an entry in Translations map to that entry; everything else comes back
// bracketed so unexpected payloads are visible in assertions.
type MockProvider struct {
	Translations map[string]string  // Source text -> translation
	Err          error              // Returned by every call when set
	CallCount    int                // Number of Translate calls
	LastRequest  *TranslateRequest  // Last request received
}

// NewMockProvider creates a mock provider with a few default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":       "Hej",
			"Hello World": "Hej Världen",
			"Welcome":     "Välkommen",
		},
	}
}

// Translate returns mock translations keyed by the request paths.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (map[string]string, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}

	results := make(map[string]string, req.Strings.Len())
	req.Strings.Each(func(path, text string) {
		if translation, ok := m.Translations[text]; ok {
			results[path] = translation
		} else {
			results[path] = fmt.Sprintf("[%s]", text)
		}
	})
	return results, nil
}

// Reset clears the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements Provider.
var _ Provider = (*MockProvider)(nil)
