package autotranslate

import "context"

// Operation is the kind of write that hit the content store.
type Operation string

const (
	// OperationCreate is a document creation.
	OperationCreate Operation = "create"
	// OperationUpdate is a document update.
	OperationUpdate Operation = "update"
	// OperationDelete is a document deletion. Deletes never trigger sync.
	OperationDelete Operation = "delete"
)

// WriteOrigin tags who initiated a write. Writes the Syncer generates carry
// OriginSync so they can never re-trigger translation.
type WriteOrigin string

const (
	// OriginUser marks a write initiated by an editor or API client.
	OriginUser WriteOrigin = "user"
	// OriginSync marks a write generated by the translation sync itself.
	OriginSync WriteOrigin = "sync"
)

// WriteEvent describes one document write observed on the host content store.
type WriteEvent struct {
	Collection string         // Collection slug the document belongs to
	DocumentID string         // Document identifier
	Operation  Operation      // create, update or delete
	Locale     string         // Locale the write was authored in
	Origin     WriteOrigin    // Who initiated the write
	Doc        map[string]any // Full document as written
}

// TranslateOptions are the parameters for one translation of one document
// into one target locale.
type TranslateOptions struct {
	Collection    string         // Collection slug (for logging and errors)
	Data          map[string]any // Source-locale document
	ExcludedPaths []string       // Field paths that must not be translated
	FromLocale    string         // Source locale code
	ToLocale      string         // Target locale code
	Settings      Settings       // Resolved translation settings
}

// Provider is the interface for LLM translation backends. Strings carries the
// deduplicated path->text payload; the returned map uses the same path keys.
// Partial responses are tolerated: paths missing from the result keep their
// placeholder tokens in the reconstructed document.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (map[string]string, error)
}

// TranslateRequest contains the parameters for a provider call.
type TranslateRequest struct {
	Strings    *StringMap // Unique translatable strings keyed by path
	FromLocale string     // Source locale code
	ToLocale   string     // Target locale code
	Settings   Settings   // Prompt, model and sampling settings
}

// DocumentTranslator is the optional provider extension used when optimized
// extraction is disabled: the entire document is serialized as the user
// payload and the parsed JSON object response is taken as the translation.
type DocumentTranslator interface {
	TranslateDocument(ctx context.Context, doc map[string]any, fromLocale, toLocale string, settings Settings) (map[string]any, error)
}

// CustomTranslateFunc replaces the whole extract/invoke/reconstruct pipeline
// with a caller-supplied implementation. It receives the document with
// excluded paths already filtered out.
type CustomTranslateFunc func(ctx context.Context, opts TranslateOptions) (map[string]any, error)

// TranslationCache is the interface for caching translated strings across
// documents. Keys are built with CacheKey from the source-text hash and the
// locale pair.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// DocumentStore is the host content store the Syncer reads and writes
// locale-specific documents through.
type DocumentStore interface {
	// FindByID fetches one document in one locale. A missing document is
	// reported as ErrNotFound, which the Syncer treats as "no existing
	// translation", not a failure.
	FindByID(ctx context.Context, collection, documentID, locale string) (map[string]any, error)

	// Update persists a document for one locale. The request carries the
	// write origin so the store's own change hooks can feed it back into
	// Syncer.HandleWrite without looping.
	Update(ctx context.Context, req WriteRequest) error
}

// WriteRequest is a locale-scoped document write issued by the Syncer.
type WriteRequest struct {
	Collection string
	DocumentID string
	Locale     string
	Data       map[string]any
	Origin     WriteOrigin
}

// ExclusionStore resolves the per-document, per-locale field paths that are
// pinned against auto-translation. The store subpackage provides memory,
// Redis and SQLite implementations.
type ExclusionStore interface {
	ExcludedPaths(ctx context.Context, collection, documentID, locale string) ([]string, error)
}

// SettingsSource supplies the persisted translation settings record. Fetch
// failures degrade to DefaultSettings.
type SettingsSource interface {
	TranslationSettings(ctx context.Context) (Settings, error)
}
