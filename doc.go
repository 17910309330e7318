// Package autotranslate propagates content edits made in a default locale to
// every other configured locale by calling an LLM translation provider.
//
// The engine extracts the human-readable leaf strings from an arbitrarily
// nested document (objects, arrays, and rich-text trees), deduplicates
// repeated values, sends only the unique strings to the provider, and splices
// the translated values back into the original structure. Field paths pinned
// in an exclusion store are never sent to the provider and never overwritten.
//
// Basic usage:
//
//	import (
//	    "context"
//	    autotranslate "github.com/pigmentab/auto-translate"
//	    "github.com/pigmentab/auto-translate/provider"
//	)
//
//	func main() {
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    t := autotranslate.NewTranslator(autotranslate.Config{
//	        DefaultLocale: "en",
//	        Locales:       []string{"en", "sv", "de"},
//	    }, p)
//
//	    translated, err := t.Translate(context.Background(), autotranslate.TranslateOptions{
//	        Collection: "posts",
//	        Data:       doc,
//	        FromLocale: "en",
//	        ToLocale:   "sv",
//	        Settings:   autotranslate.DefaultSettings(),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = translated
//	}
//
// The Syncer type wires the translator to a host content store and runs the
// per-write control flow: gate checks, per-locale fan-out, exclusion-aware
// merge, and loop prevention for the writes it generates itself.
package autotranslate
