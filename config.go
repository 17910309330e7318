package autotranslate

// Config is the plugin configuration surface consumed from the host
// framework. The zero value is usable for single-document translation;
// DefaultLocale and Locales are required for sync.
type Config struct {
	// DefaultLocale is the locale edits are authored in and translated from.
	DefaultLocale string

	// Locales is the full locale list. Every locale other than the default
	// is a sync target.
	Locales []string

	// Collections enables translation per collection slug. A missing entry
	// means the collection does not sync.
	Collections map[string]CollectionConfig

	// ExcludeFields lists field paths excluded from translation globally,
	// in every collection.
	ExcludeFields []string

	// MinStringLength is the minimum trimmed length of a translatable
	// string. Zero means DefaultMinStringLength.
	MinStringLength int

	// DisableDeduplication sends every qualifying string to the provider
	// even when identical to another. Deduplication is on by default.
	DisableDeduplication bool

	// DisableOptimization sends the entire filtered document to the
	// provider instead of the extracted string map (the legacy mode).
	DisableOptimization bool

	// EnableSyncByDefault syncs documents that carry no explicit
	// translationSync flag.
	EnableSyncByDefault bool

	// HTMLFields lists leaf paths whose string values are HTML fragments.
	HTMLFields []string

	// RichTextDetector overrides rich-text node detection. Nil means the
	// built-in type+version+(children|text) heuristic.
	RichTextDetector RichTextDetector

	// Debugging enables verbose logging of extraction stats and sync
	// decisions.
	Debugging bool
}

// CollectionConfig is the per-collection translation configuration.
type CollectionConfig struct {
	// Enabled turns sync on for the collection.
	Enabled bool

	// ExcludeFields lists field paths excluded from translation for this
	// collection, in addition to the global list.
	ExcludeFields []string
}

// CollectionEnabled reports whether slug is configured for translation.
func (c Config) CollectionEnabled(slug string) bool {
	cc, ok := c.Collections[slug]
	return ok && cc.Enabled
}

// ExcludedFieldsFor returns the global excluded fields concatenated with the
// collection-specific ones.
func (c Config) ExcludedFieldsFor(slug string) []string {
	fields := append([]string(nil), c.ExcludeFields...)
	if cc, ok := c.Collections[slug]; ok {
		fields = append(fields, cc.ExcludeFields...)
	}
	return fields
}

// SecondaryLocales returns every configured locale except the default.
func (c Config) SecondaryLocales() []string {
	var out []string
	for _, locale := range c.Locales {
		if locale != c.DefaultLocale {
			out = append(out, locale)
		}
	}
	return out
}

// extractor builds the Extractor this configuration describes.
func (c Config) extractor() *Extractor {
	return &Extractor{
		Skip:           SkipPolicy{MinLength: c.MinStringLength},
		Deduplicate:    !c.DisableDeduplication,
		DetectRichText: c.RichTextDetector,
		HTMLPaths:      c.HTMLFields,
	}
}
