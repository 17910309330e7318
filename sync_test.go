package autotranslate

import (
	"context"
	"errors"
	"testing"
)

type stubDocStore struct {
	docs    map[string]map[string]any // collection:id:locale -> doc
	writes  []WriteRequest
	findErr error
	update  func(req WriteRequest) error
}

func newStubDocStore() *stubDocStore {
	return &stubDocStore{docs: make(map[string]map[string]any)}
}

func docKey(collection, id, locale string) string {
	return collection + ":" + id + ":" + locale
}

func (s *stubDocStore) FindByID(_ context.Context, collection, documentID, locale string) (map[string]any, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	doc, ok := s.docs[docKey(collection, documentID, locale)]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *stubDocStore) Update(_ context.Context, req WriteRequest) error {
	if s.update != nil {
		if err := s.update(req); err != nil {
			return err
		}
	}
	s.writes = append(s.writes, req)
	s.docs[docKey(req.Collection, req.DocumentID, req.Locale)] = req.Data
	return nil
}

type stubExclusions struct {
	paths map[string][]string // collection:id:locale -> excluded paths
	err   error
}

func (s *stubExclusions) ExcludedPaths(_ context.Context, collection, documentID, locale string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.paths[docKey(collection, documentID, locale)], nil
}

func syncConfig() Config {
	return Config{
		DefaultLocale: "en",
		Locales:       []string{"en", "sv", "de"},
		Collections: map[string]CollectionConfig{
			"posts": {Enabled: true},
		},
		EnableSyncByDefault: true,
	}
}

func postEvent(doc map[string]any) WriteEvent {
	return WriteEvent{
		Collection: "posts",
		DocumentID: "doc-1",
		Operation:  OperationUpdate,
		Locale:     "en",
		Origin:     OriginUser,
		Doc:        doc,
	}
}

func TestSyncer_HandleWrite_FansOutSecondaryLocales(t *testing.T) {
	provider := &stubProvider{}
	docs := newStubDocStore()
	syncer := NewSyncer(syncConfig(), NewTranslator(syncConfig(), provider), docs)

	err := syncer.HandleWrite(context.Background(), postEvent(map[string]any{
		"title": "Hello World",
	}))
	if err != nil {
		t.Fatal(err)
	}

	if len(docs.writes) != 2 {
		t.Fatalf("writes = %d, want one per secondary locale", len(docs.writes))
	}
	locales := map[string]bool{}
	for _, w := range docs.writes {
		locales[w.Locale] = true
		if w.Origin != OriginSync {
			t.Errorf("write origin = %v, want OriginSync", w.Origin)
		}
		if w.Collection != "posts" || w.DocumentID != "doc-1" {
			t.Errorf("write addressed to %s/%s", w.Collection, w.DocumentID)
		}
		if w.Data["title"] != "[Hello World]" {
			t.Errorf("translated title = %v", w.Data["title"])
		}
	}
	if !locales["sv"] || !locales["de"] {
		t.Errorf("synced locales = %v, want sv and de", locales)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want one per locale", provider.calls)
	}
}

func TestSyncer_HandleWrite_Gates(t *testing.T) {
	base := postEvent(map[string]any{"title": "Hello World"})

	tests := []struct {
		name   string
		mutate func(*WriteEvent)
		cfg    func(*Config)
	}{
		{"delete operation", func(ev *WriteEvent) { ev.Operation = OperationDelete }, nil},
		{"secondary locale write", func(ev *WriteEvent) { ev.Locale = "sv" }, nil},
		{"draft document", func(ev *WriteEvent) {
			ev.Doc = map[string]any{"title": "Hello World", "_status": "draft"}
		}, nil},
		{"document opts out", func(ev *WriteEvent) {
			ev.Doc = map[string]any{"title": "Hello World", "translationSync": false}
		}, nil},
		{"sync disabled by default", nil, func(c *Config) { c.EnableSyncByDefault = false }},
		{"sync-generated write", func(ev *WriteEvent) { ev.Origin = OriginSync }, nil},
		{"collection not enabled", func(ev *WriteEvent) { ev.Collection = "media" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := syncConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			ev := base
			if tt.mutate != nil {
				ev.Doc = map[string]any{"title": "Hello World"}
				tt.mutate(&ev)
			}

			provider := &stubProvider{}
			docs := newStubDocStore()
			syncer := NewSyncer(cfg, NewTranslator(cfg, provider), docs)

			if err := syncer.HandleWrite(context.Background(), ev); err != nil {
				t.Fatal(err)
			}
			if len(docs.writes) != 0 {
				t.Errorf("writes = %d, want 0 for gated event", len(docs.writes))
			}
			if provider.calls != 0 {
				t.Errorf("provider calls = %d, want 0 for gated event", provider.calls)
			}
		})
	}
}

func TestSyncer_HandleWrite_PublishedStatusPasses(t *testing.T) {
	docs := newStubDocStore()
	syncer := NewSyncer(syncConfig(), NewTranslator(syncConfig(), &stubProvider{}), docs)

	err := syncer.HandleWrite(context.Background(), postEvent(map[string]any{
		"title":   "Hello World",
		"_status": "published",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs.writes) != 2 {
		t.Errorf("writes = %d, want 2", len(docs.writes))
	}
}

func TestSyncer_HandleWrite_DocumentFlagOverridesDefault(t *testing.T) {
	cfg := syncConfig()
	cfg.EnableSyncByDefault = false

	docs := newStubDocStore()
	syncer := NewSyncer(cfg, NewTranslator(cfg, &stubProvider{}), docs)

	err := syncer.HandleWrite(context.Background(), postEvent(map[string]any{
		"title":           "Hello World",
		"translationSync": true,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs.writes) != 2 {
		t.Errorf("writes = %d, want per-document opt-in to override the default", len(docs.writes))
	}
}

func TestSyncer_HandleWrite_MergesExistingTarget(t *testing.T) {
	docs := newStubDocStore()
	docs.docs[docKey("posts", "doc-1", "sv")] = map[string]any{
		"id":     "sv-id",
		"title":  "Gammal titel",
		"pinned": "Handöversatt",
	}

	cfg := syncConfig()
	cfg.Locales = []string{"en", "sv"}
	exclusions := &stubExclusions{paths: map[string][]string{
		docKey("posts", "doc-1", "sv"): {"pinned"},
	}}
	syncer := NewSyncer(cfg, NewTranslator(cfg, &stubProvider{}), docs,
		WithExclusionStore(exclusions))

	err := syncer.HandleWrite(context.Background(), postEvent(map[string]any{
		"id":     "en-id",
		"title":  "Hello World",
		"pinned": "Source value",
	}))
	if err != nil {
		t.Fatal(err)
	}

	got := docs.docs[docKey("posts", "doc-1", "sv")]
	if got["title"] != "[Hello World]" {
		t.Errorf("title = %v", got["title"])
	}
	if got["pinned"] != "Handöversatt" {
		t.Errorf("pinned = %v, excluded path must keep the target value", got["pinned"])
	}
	if got["id"] != "sv-id" {
		t.Errorf("id = %v, internal field must keep the target value", got["id"])
	}
}

func TestSyncer_HandleWrite_PartialFailureContinues(t *testing.T) {
	docs := newStubDocStore()
	docs.update = func(req WriteRequest) error {
		if req.Locale == "sv" {
			return errors.New("sv shard down")
		}
		return nil
	}

	syncer := NewSyncer(syncConfig(), NewTranslator(syncConfig(), &stubProvider{}), docs)
	err := syncer.HandleWrite(context.Background(), postEvent(map[string]any{
		"title": "Hello World",
	}))

	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("err = %v, want SyncError", err)
	}
	if syncErr.Locale != "sv" {
		t.Errorf("failed locale = %s", syncErr.Locale)
	}
	if len(docs.writes) != 1 || docs.writes[0].Locale != "de" {
		t.Errorf("writes = %v, want de to sync despite the sv failure", docs.writes)
	}
}

func TestSyncer_HandleWrite_FindErrorAborts(t *testing.T) {
	docs := newStubDocStore()
	docs.findErr = errors.New("store unreachable")

	syncer := NewSyncer(syncConfig(), NewTranslator(syncConfig(), &stubProvider{}), docs)
	err := syncer.HandleWrite(context.Background(), postEvent(map[string]any{
		"title": "Hello World",
	}))
	if err == nil {
		t.Fatal("want error when the target fetch fails with a real error")
	}
	if len(docs.writes) != 0 {
		t.Errorf("writes = %d, want 0", len(docs.writes))
	}
}

func TestSyncer_HandleWrite_ExclusionStoreFailureDegrades(t *testing.T) {
	cfg := syncConfig()
	cfg.Locales = []string{"en", "sv"}
	cfg.ExcludeFields = []string{"sku"}

	docs := newStubDocStore()
	provider := &stubProvider{}
	exclusions := &stubExclusions{err: errors.New("redis down")}
	syncer := NewSyncer(cfg, NewTranslator(cfg, provider), docs,
		WithExclusionStore(exclusions))

	err := syncer.HandleWrite(context.Background(), postEvent(map[string]any{
		"title": "Hello World",
		"sku":   "translatable-looking sku",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs.writes) != 1 {
		t.Fatalf("writes = %d, want the sync to continue on exclusion-store failure", len(docs.writes))
	}
	if _, ok := provider.lastRequest.Strings.Get("sku"); ok {
		t.Error("configured exclusion ignored when the store fails")
	}
}

func TestSyncer_HandleWrite_SettingsSourceFlowThrough(t *testing.T) {
	cfg := syncConfig()
	cfg.Locales = []string{"en", "sv"}

	provider := &stubProvider{}
	docs := newStubDocStore()
	src := settingsSourceFunc(func(context.Context) (Settings, error) {
		return Settings{Model: "gpt-4o-mini"}, nil
	})
	syncer := NewSyncer(cfg, NewTranslator(cfg, provider), docs,
		WithSettingsSource(src))

	if err := syncer.HandleWrite(context.Background(), postEvent(map[string]any{
		"title": "Hello World",
	})); err != nil {
		t.Fatal(err)
	}
	if provider.lastRequest.Settings.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want the stored setting", provider.lastRequest.Settings.Model)
	}
	if provider.lastRequest.Settings.SystemPrompt == "" {
		t.Error("unset fields must fall back to defaults")
	}
}

type settingsSourceFunc func(ctx context.Context) (Settings, error)

func (f settingsSourceFunc) TranslationSettings(ctx context.Context) (Settings, error) {
	return f(ctx)
}
