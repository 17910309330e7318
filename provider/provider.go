// Package provider defines the LLM provider interface and implementations.
package provider

import autotranslate "github.com/pigmentab/auto-translate"

// Provider is the interface for LLM translation backends.
// This is an alias to the main package interface for convenience.
type Provider = autotranslate.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = autotranslate.TranslateRequest

// DocumentTranslator is an alias to the main package interface.
type DocumentTranslator = autotranslate.DocumentTranslator
