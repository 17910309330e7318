package autotranslate

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by DocumentStore implementations when a document
// does not exist in the requested locale. The Syncer treats it as "no
// existing translation" rather than a failure.
var ErrNotFound = errors.New("document not found")

// responsePreviewLen bounds how much of a malformed provider response is
// attached to a ParseError.
const responsePreviewLen = 500

// ConfigError indicates missing or invalid configuration (API credential,
// localization setup). Fatal to the operation that needs it; never retried.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s", e.Message)
}

// ProviderError indicates a translation provider failure (timeout, transport
// error, non-2xx response), enriched with the locale pair it occurred on.
type ProviderError struct {
	Message    string
	Cause      error
	FromLocale string
	ToLocale   string
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if e.FromLocale != "" || e.ToLocale != "" {
		msg = fmt.Sprintf("%s (%s -> %s)", msg, e.FromLocale, e.ToLocale)
	}
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ParseError indicates the provider returned something that is not the
// required JSON object. Preview holds a truncated copy of the offending text
// for diagnostics.
type ParseError struct {
	Message string
	Cause   error
	Preview string
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError builds a ParseError with a bounded preview of the response.
func NewParseError(message string, cause error, response string) *ParseError {
	preview := response
	if len(preview) > responsePreviewLen {
		preview = preview[:responsePreviewLen]
	}
	return &ParseError{Message: message, Cause: cause, Preview: preview}
}

// SyncError wraps a per-locale failure during fan-out with its document
// context. The Syncer logs these and keeps going with the remaining locales.
type SyncError struct {
	Collection string
	DocumentID string
	Locale     string
	Cause      error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync failed for %s:%s locale %s: %v", e.Collection, e.DocumentID, e.Locale, e.Cause)
}

func (e *SyncError) Unwrap() error {
	return e.Cause
}
