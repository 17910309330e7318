package autotranslate

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Translator runs the per-locale translation pipeline: filter excluded paths,
// extract translatable strings, consult the cache, invoke the provider, and
// reconstruct the document.
type Translator struct {
	cfg      Config
	provider Provider
	cache    TranslationCache
	custom   CustomTranslateFunc
	logger   *zap.Logger
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithCustomTranslate replaces the extract/invoke/reconstruct pipeline with a
// caller-supplied function. The function still receives the document with
// excluded paths filtered out.
func WithCustomTranslate(fn CustomTranslateFunc) TranslatorOption {
	return func(t *Translator) {
		t.custom = fn
	}
}

// NewTranslator creates a Translator with the given configuration and
// provider.
func NewTranslator(cfg Config, provider Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		cfg:      cfg,
		provider: provider,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate translates one document into one target locale. The returned
// document has the same shape as opts.Data minus excluded subtrees; callers
// merge it against the existing target-locale document themselves (the Syncer
// does this).
func (t *Translator) Translate(ctx context.Context, opts TranslateOptions) (map[string]any, error) {
	filtered := FilterExcludedPaths(opts.Data, opts.ExcludedPaths)

	if t.cfg.Debugging {
		t.logger.Debug("translating document",
			zap.String("collection", opts.Collection),
			zap.String("from", opts.FromLocale),
			zap.String("to", opts.ToLocale),
			zap.Strings("excludedPaths", opts.ExcludedPaths),
		)
	}

	if t.custom != nil {
		custom := opts
		custom.Data = filtered
		return t.custom(ctx, custom)
	}

	if t.cfg.DisableOptimization {
		return t.translateWholeDocument(ctx, filtered, opts)
	}

	extractor := t.cfg.extractor()
	extraction := extractor.Extract(filtered, "")
	if extraction.Strings.Len() == 0 {
		return filtered, nil
	}

	if t.cfg.Debugging {
		t.logExtractionStats(filtered, extraction)
	}

	translations, err := t.translateStrings(ctx, extraction.Strings, opts)
	if err != nil {
		return nil, err
	}

	result, _ := Reconstruct(extraction.Metadata, translations, extraction.Index).(map[string]any)
	return result, nil
}

// translateStrings resolves each unique string through the cache where
// possible and sends the remainder to the provider in a single call.
func (t *Translator) translateStrings(ctx context.Context, unique *StringMap, opts TranslateOptions) (map[string]string, error) {
	translations := make(map[string]string, unique.Len())
	misses := NewStringMap()

	unique.Each(func(path, value string) {
		if t.cache != nil {
			key := CacheKeyForModel(HashText(value), opts.FromLocale, opts.ToLocale, opts.Settings.Model)
			if cached, ok := t.cache.Get(key); ok {
				translations[path] = cached
				return
			}
		}
		misses.Set(path, value)
	})

	if misses.Len() == 0 {
		return translations, nil
	}

	results, err := t.provider.Translate(ctx, TranslateRequest{
		Strings:    misses,
		FromLocale: opts.FromLocale,
		ToLocale:   opts.ToLocale,
		Settings:   opts.Settings,
	})
	if err != nil {
		return nil, err
	}

	for path, translated := range results {
		translations[path] = translated
		if t.cache != nil {
			original, ok := misses.Get(path)
			if !ok {
				continue
			}
			key := CacheKeyForModel(HashText(original), opts.FromLocale, opts.ToLocale, opts.Settings.Model)
			_ = t.cache.Set(key, translated) // cache failures never fail a translation
		}
	}

	return translations, nil
}

// translateWholeDocument is the legacy mode: the entire filtered document is
// the provider payload and the parsed JSON object response is the result.
func (t *Translator) translateWholeDocument(ctx context.Context, filtered map[string]any, opts TranslateOptions) (map[string]any, error) {
	dt, ok := t.provider.(DocumentTranslator)
	if !ok {
		return nil, &ConfigError{Message: "provider does not support whole-document translation"}
	}
	return dt.TranslateDocument(ctx, filtered, opts.FromLocale, opts.ToLocale, opts.Settings)
}

func (t *Translator) logExtractionStats(filtered map[string]any, extraction *Extraction) {
	originalJSON, _ := json.Marshal(filtered)
	payloadJSON, _ := json.Marshal(extraction.Strings)

	totalPaths := 0
	for _, paths := range extraction.Index {
		totalPaths += len(paths)
	}

	t.logger.Debug("extraction stats",
		zap.Int("uniqueStrings", extraction.Strings.Len()),
		zap.Int("totalInstances", totalPaths),
		zap.Int("deduplicated", totalPaths-extraction.Strings.Len()),
		zap.Int("originalBytes", len(originalJSON)),
		zap.Int("payloadBytes", len(payloadJSON)),
	)
}
