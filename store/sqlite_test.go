package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "exclusions.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_SetAndGet(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	paths, err := s.ExcludedPaths(ctx, "posts", "doc-1", "sv")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 0 {
		t.Errorf("missing record returned %v", paths)
	}

	want := []string{"title", "content.0.body"}
	if err := s.SetExcludedPaths(ctx, "posts", "doc-1", "sv", want); err != nil {
		t.Fatal(err)
	}
	paths, err = s.ExcludedPaths(ctx, "posts", "doc-1", "sv")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestSQLiteStore_UpsertReplacesList(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := s.SetExcludedPaths(ctx, "posts", "doc-1", "sv", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetExcludedPaths(ctx, "posts", "doc-1", "sv", []string{"c"}); err != nil {
		t.Fatal(err)
	}

	paths, err := s.ExcludedPaths(ctx, "posts", "doc-1", "sv")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(paths, []string{"c"}) {
		t.Errorf("paths = %v, upsert must replace the whole list", paths)
	}
}

func TestSQLiteStore_LocalesIndependent(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	s.SetExcludedPaths(ctx, "posts", "doc-1", "sv", []string{"sv-only"})
	s.SetExcludedPaths(ctx, "posts", "doc-1", "de", []string{"de-only"})

	paths, _ := s.ExcludedPaths(ctx, "posts", "doc-1", "sv")
	if !reflect.DeepEqual(paths, []string{"sv-only"}) {
		t.Errorf("sv paths = %v", paths)
	}
	paths, _ = s.ExcludedPaths(ctx, "posts", "doc-1", "de")
	if !reflect.DeepEqual(paths, []string{"de-only"}) {
		t.Errorf("de paths = %v", paths)
	}
}

func TestSQLiteStore_DeleteForDocument(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	s.SetExcludedPaths(ctx, "posts", "doc-1", "sv", []string{"a"})
	s.SetExcludedPaths(ctx, "posts", "doc-1", "de", []string{"b"})
	s.SetExcludedPaths(ctx, "posts", "doc-2", "sv", []string{"c"})

	if err := s.DeleteForDocument(ctx, "posts", "doc-1"); err != nil {
		t.Fatal(err)
	}

	for _, locale := range []string{"sv", "de"} {
		if paths, _ := s.ExcludedPaths(ctx, "posts", "doc-1", locale); len(paths) != 0 {
			t.Errorf("doc-1 %s survived delete: %v", locale, paths)
		}
	}
	if paths, _ := s.ExcludedPaths(ctx, "posts", "doc-2", "sv"); !reflect.DeepEqual(paths, []string{"c"}) {
		t.Errorf("doc-2 paths = %v", paths)
	}
}

func TestSQLiteStore_ToggleRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	paths, err := Toggle(ctx, s, "posts", "doc-1", "sv", "title", true)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(paths, []string{"title"}) {
		t.Errorf("paths = %v", paths)
	}

	excluded, _, err := Status(ctx, s, "posts", "doc-1", "sv", "title")
	if err != nil {
		t.Fatal(err)
	}
	if !excluded {
		t.Error("title should report excluded after toggle")
	}

	paths, err = Toggle(ctx, s, "posts", "doc-1", "sv", "title", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 0 {
		t.Errorf("paths = %v, want empty after untoggle", paths)
	}
}
