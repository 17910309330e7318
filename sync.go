package autotranslate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Syncer is the per-document-write control flow: it decides whether a write
// should trigger translation at all, fans out across the secondary locales
// one at a time, merges exclusion-preserved values back into the translated
// output, and persists results tagged so they can never re-trigger sync.
type Syncer struct {
	cfg        Config
	translator *Translator
	docs       DocumentStore
	exclusions ExclusionStore
	settings   SettingsSource
	logger     *zap.Logger
}

// SyncerOption is a functional option for configuring the Syncer.
type SyncerOption func(*Syncer)

// WithExclusionStore sets the per-document exclusion store. Without one only
// the configured ExcludeFields apply.
func WithExclusionStore(store ExclusionStore) SyncerOption {
	return func(s *Syncer) {
		s.exclusions = store
	}
}

// WithSettingsSource sets the persisted translation settings source. Without
// one DefaultSettings apply.
func WithSettingsSource(src SettingsSource) SyncerOption {
	return func(s *Syncer) {
		s.settings = src
	}
}

// WithSyncLogger sets the logger. The default is a no-op logger.
func WithSyncLogger(logger *zap.Logger) SyncerOption {
	return func(s *Syncer) {
		s.logger = logger
	}
}

// NewSyncer creates a Syncer over the given translator and document store.
func NewSyncer(cfg Config, translator *Translator, docs DocumentStore, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		cfg:        cfg,
		translator: translator,
		docs:       docs,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleWrite processes one write event from the host content store. Writes
// that fail a gate are skipped silently (logged when debugging). Per-locale
// failures during fan-out are logged and collected but never abort the
// remaining locales; the joined error is returned for callers that care.
func (s *Syncer) HandleWrite(ctx context.Context, ev WriteEvent) error {
	if reason, ok := s.passesGates(ev); !ok {
		if s.cfg.Debugging {
			s.logger.Debug("skipping translation sync",
				zap.String("collection", ev.Collection),
				zap.String("document", ev.DocumentID),
				zap.String("reason", reason),
			)
		}
		return nil
	}

	settings := ResolveSettings(ctx, s.settings, s.logger)

	var errs []error
	for _, locale := range s.cfg.SecondaryLocales() {
		if err := s.syncLocale(ctx, ev, locale, settings); err != nil {
			syncErr := &SyncError{
				Collection: ev.Collection,
				DocumentID: ev.DocumentID,
				Locale:     locale,
				Cause:      err,
			}
			s.logger.Error("locale sync failed",
				zap.String("collection", ev.Collection),
				zap.String("document", ev.DocumentID),
				zap.String("locale", locale),
				zap.Error(err),
			)
			errs = append(errs, syncErr)
		}
	}
	return errors.Join(errs...)
}

// passesGates evaluates the ordered sync gates. The first failing gate names
// the skip reason.
func (s *Syncer) passesGates(ev WriteEvent) (string, bool) {
	if ev.Operation != OperationCreate && ev.Operation != OperationUpdate {
		return "not a create or update", false
	}
	if ev.Locale != s.cfg.DefaultLocale {
		return "not default locale", false
	}
	if status, ok := ev.Doc["_status"].(string); ok && status != "published" {
		return "is a draft", false
	}
	if !s.syncEnabled(ev.Doc) {
		return "sync disabled", false
	}
	if ev.Origin == OriginSync {
		return "sync-generated write", false
	}
	if !s.cfg.CollectionEnabled(ev.Collection) {
		return "collection not enabled", false
	}
	return "", true
}

// syncEnabled reads the per-document translationSync flag, falling back to
// the configured default when the document does not carry one.
func (s *Syncer) syncEnabled(doc map[string]any) bool {
	if v, ok := doc["translationSync"].(bool); ok {
		return v
	}
	return s.cfg.EnableSyncByDefault
}

// syncLocale translates and persists one secondary locale: fetch exclusions,
// translate the source document, merge against the existing target document,
// and write back tagged as sync-generated.
func (s *Syncer) syncLocale(ctx context.Context, ev WriteEvent, locale string, settings Settings) error {
	excluded := s.excludedPathsFor(ctx, ev, locale)

	translated, err := s.translator.Translate(ctx, TranslateOptions{
		Collection:    ev.Collection,
		Data:          ev.Doc,
		ExcludedPaths: excluded,
		FromLocale:    ev.Locale,
		ToLocale:      locale,
		Settings:      settings,
	})
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}

	merged := translated
	existing, err := s.docs.FindByID(ctx, ev.Collection, ev.DocumentID, locale)
	switch {
	case errors.Is(err, ErrNotFound):
		// No existing translation: nothing to preserve, write as translated.
	case err != nil:
		return fmt.Errorf("fetch existing document: %w", err)
	default:
		merged = MergeTranslatedData(existing, translated, excluded)
	}

	if err := s.docs.Update(ctx, WriteRequest{
		Collection: ev.Collection,
		DocumentID: ev.DocumentID,
		Locale:     locale,
		Data:       merged,
		Origin:     OriginSync,
	}); err != nil {
		return fmt.Errorf("persist translation: %w", err)
	}

	if s.cfg.Debugging {
		s.logger.Debug("locale synced",
			zap.String("collection", ev.Collection),
			zap.String("document", ev.DocumentID),
			zap.String("locale", locale),
			zap.Int("excludedPaths", len(excluded)),
		)
	}
	return nil
}

// excludedPathsFor combines the stored per-document exclusions for the target
// locale with the configured field excludes. Store failures degrade to the
// configured list alone rather than blocking translation.
func (s *Syncer) excludedPathsFor(ctx context.Context, ev WriteEvent, locale string) []string {
	excluded := s.cfg.ExcludedFieldsFor(ev.Collection)
	if s.exclusions == nil {
		return excluded
	}
	stored, err := s.exclusions.ExcludedPaths(ctx, ev.Collection, ev.DocumentID, locale)
	if err != nil {
		if s.cfg.Debugging {
			s.logger.Warn("could not fetch exclusions",
				zap.String("collection", ev.Collection),
				zap.String("document", ev.DocumentID),
				zap.String("locale", locale),
				zap.Error(err),
			)
		}
		return excluded
	}
	return append(excluded, stored...)
}
