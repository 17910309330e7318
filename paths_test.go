package autotranslate

import (
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", nil},
		{"title", []string{"title"}},
		{"content.body", []string{"content", "body"}},
		{"content[0].title", []string{"content", "0", "title"}},
		{"content.0.title", []string{"content", "0", "title"}},
		{"root.children[2].text", []string{"root", "children", "2", "text"}},
	}

	for _, tt := range tests {
		got := SplitPath(tt.path)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestGetValue(t *testing.T) {
	doc := map[string]any{
		"title": "Hello",
		"content": []any{
			map[string]any{"body": "First"},
			map[string]any{"body": "Second"},
		},
		"meta": map[string]any{"views": float64(7)},
	}

	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"title", "Hello", true},
		{"content[0].body", "First", true},
		{"content.1.body", "Second", true},
		{"meta.views", float64(7), true},
		{"missing", nil, false},
		{"content[5].body", nil, false},
		{"title.nested", nil, false},
	}

	for _, tt := range tests {
		got, ok := GetValue(doc, tt.path)
		if ok != tt.ok || (ok && !reflect.DeepEqual(got, tt.want)) {
			t.Errorf("GetValue(%q) = (%v, %v), want (%v, %v)", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSetValue(t *testing.T) {
	doc := map[string]any{
		"content": []any{
			map[string]any{"body": "old"},
		},
	}

	SetValue(doc, "title", "Hello")
	SetValue(doc, "content[0].body", "new")
	SetValue(doc, "meta.author.name", "Anna")

	if got := GetString(doc, "title"); got != "Hello" {
		t.Errorf("title = %q", got)
	}
	if got := GetString(doc, "content[0].body"); got != "new" {
		t.Errorf("content[0].body = %q", got)
	}
	if got := GetString(doc, "meta.author.name"); got != "Anna" {
		t.Errorf("meta.author.name = %q, want intermediate maps created", got)
	}

	// Out-of-range array writes are a no-op, not a grow.
	SetValue(doc, "content[5].body", "x")
	if arr := doc["content"].([]any); len(arr) != 1 {
		t.Errorf("array grew to %d elements", len(arr))
	}
}

func TestDeleteValue(t *testing.T) {
	doc := map[string]any{
		"title": "Hello",
		"content": []any{
			map[string]any{"body": "First"},
			map[string]any{"body": "Second"},
		},
	}

	DeleteValue(doc, "title")
	if _, ok := doc["title"]; ok {
		t.Error("title not deleted")
	}

	// Deleting an array element nils it out so sibling paths stay stable.
	DeleteValue(doc, "content.0")
	arr := doc["content"].([]any)
	if len(arr) != 2 {
		t.Fatalf("array length changed to %d", len(arr))
	}
	if arr[0] != nil {
		t.Errorf("content[0] = %v, want nil", arr[0])
	}
	if got := GetString(doc, "content[1].body"); got != "Second" {
		t.Errorf("sibling path broken: %q", got)
	}

	// Missing paths are a no-op.
	DeleteValue(doc, "no.such.path")
}
