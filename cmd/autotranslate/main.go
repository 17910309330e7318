// Command autotranslate translates a JSON document file between two locales.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	autotranslate "github.com/pigmentab/auto-translate"
	"github.com/pigmentab/auto-translate/cache"
	"github.com/pigmentab/auto-translate/provider"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = autotranslate.Version
	commit    = autotranslate.GitCommit
	buildDate = autotranslate.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("autotranslate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	fromLocale := fs.String("from", "en", "Source locale code")
	toLocale := fs.String("to", "", "Target locale code (e.g., sv, de, fr_FR)")
	output := fs.String("output", "", "Output file (default: stdout)")
	outputShort := fs.String("o", "", "Output file (short for --output)")
	apiKey := fs.String("api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	model := fs.String("model", "", "Model to use (default: from settings)")
	exclude := fs.String("exclude", "", "Comma-separated field paths to exclude")
	htmlFields := fs.String("html-fields", "", "Comma-separated field paths holding HTML fragments")
	minLength := fs.Int("min-length", 0, "Minimum translatable string length")
	noDedup := fs.Bool("no-dedup", false, "Translate repeated strings independently")
	timeout := fs.Duration("timeout", provider.DefaultTimeout, "Provider call timeout")
	dryRun := fs.Bool("dry-run", false, "Show what would be translated without calling the API")
	showVersion := fs.Bool("version", false, "Show version")
	quiet := fs.Bool("quiet", false, "Suppress progress output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", autotranslate.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	// Handle -o alias for --output
	if *outputShort != "" && *output == "" {
		*output = *outputShort
	}

	if *toLocale == "" {
		fs.Usage()
		return fmt.Errorf("--to is required")
	}

	// Get input
	var input []byte
	var inputName string
	var err error

	if fs.NArg() == 0 {
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		inputName = "stdin"
	} else {
		inputPath := fs.Arg(0)
		input, err = os.ReadFile(inputPath) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		inputName = filepath.Base(inputPath)
	}

	var doc map[string]any
	if err := json.Unmarshal(input, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", inputName, err)
	}

	cfg := autotranslate.Config{
		MinStringLength:      *minLength,
		DisableDeduplication: *noDedup,
		HTMLFields:           splitList(*htmlFields),
	}
	excludedPaths := splitList(*exclude)

	if *dryRun {
		return runDryRun(cfg, doc, excludedPaths, stdout)
	}

	settings := autotranslate.DefaultSettings()
	if *model != "" {
		settings.Model = *model
	}

	p := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:  *apiKey,
		Timeout: *timeout,
	})

	translator := autotranslate.NewTranslator(cfg, p,
		autotranslate.WithCache(cache.NewMemoryCache(time.Hour)),
	)

	if !*quiet {
		fmt.Fprintf(stderr, "Translating %s from %s to %s...\n", inputName, *fromLocale, *toLocale)
	}

	start := time.Now()
	translated, err := translator.Translate(context.Background(), autotranslate.TranslateOptions{
		Data:          doc,
		ExcludedPaths: excludedPaths,
		FromLocale:    *fromLocale,
		ToLocale:      *toLocale,
		Settings:      settings,
	})
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	elapsed := time.Since(start)

	// Output
	var out io.Writer = stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(translated); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !*quiet {
		fmt.Fprintf(stderr, "\nDone in %v\n", elapsed.Round(time.Millisecond))
	}
	return nil
}

// runDryRun lists the strings extraction would send without calling the API.
func runDryRun(cfg autotranslate.Config, doc map[string]any, excludedPaths []string, stdout io.Writer) error {
	filtered := autotranslate.FilterExcludedPaths(doc, excludedPaths)
	extractor := autotranslate.NewExtractor()
	extractor.Skip = autotranslate.SkipPolicy{MinLength: cfg.MinStringLength}
	extractor.Deduplicate = !cfg.DisableDeduplication
	extractor.HTMLPaths = cfg.HTMLFields

	extraction := extractor.Extract(filtered, "")
	fmt.Fprintf(stdout, "Would translate %d unique strings:\n", extraction.Strings.Len())
	extraction.Strings.Each(func(path, value string) {
		preview := value
		if len(preview) > 60 {
			preview = preview[:57] + "..."
		}
		fmt.Fprintf(stdout, "  %-40s %q\n", path, preview)
	})
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
