package core

import (
	"testing"
)

func TestNewId(t *testing.T) {
	id1 := NewId()
	id2 := NewId()

	if len(id1) != 8 {
		t.Errorf("NewId() length = %d, want 8", len(id1))
	}
	if id1 == id2 {
		t.Errorf("NewId() produced the same id twice: %s", id1)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     string
	}{
		{
			name:     "already normalized",
			language: "python",
			want:     "python",
		},
		{
			name:     "mixed case",
			language: "Python",
			want:     "python",
		},
		{
			name:     "surrounding whitespace",
			language: "  Go \t",
			want:     "go",
		},
		{
			name:     "empty falls back to default",
			language: "",
			want:     DefaultLanguage,
		},
		{
			name:     "whitespace only falls back to default",
			language: "   ",
			want:     DefaultLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLanguage(tt.language)
			if got != tt.want {
				t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.language, got, tt.want)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{
			name: "lower-cases and trims",
			tags: []string{" Algorithm ", "MATH"},
			want: []string{"algorithm", "math"},
		},
		{
			name: "drops empty entries",
			tags: []string{"", "  ", "util"},
			want: []string{"util"},
		},
		{
			name: "preserves duplicates",
			tags: []string{"go", "Go"},
			want: []string{"go", "go"},
		},
		{
			name: "nil input",
			tags: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.tags)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeTags(%v) = %v, want %v", tt.tags, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("NormalizeTags(%v)[%d] = %q, want %q", tt.tags, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSnippet_HasTag(t *testing.T) {
	snippet := &Snippet{Tags: []string{"algorithm", "math"}}

	if !snippet.HasTag("algorithm") {
		t.Error("HasTag(algorithm) = false, want true")
	}
	if !snippet.HasTag("MATH") {
		t.Error("HasTag(MATH) = false, want true (case-insensitive)")
	}
	if snippet.HasTag("utility") {
		t.Error("HasTag(utility) = true, want false")
	}
}

func TestSnippet_Clone(t *testing.T) {
	original := &Snippet{
		Id:   "abc12345",
		Tags: []string{"one", "two"},
	}

	clone := original.Clone()
	clone.Tags[0] = "changed"

	if original.Tags[0] != "one" {
		t.Error("Clone() shares the tag slice with the original")
	}
}

func TestFieldUpdate_IsZero(t *testing.T) {
	var empty FieldUpdate
	if !empty.IsZero() {
		t.Error("IsZero() = false for the zero FieldUpdate")
	}

	title := "new title"
	withTitle := FieldUpdate{Title: &title}
	if withTitle.IsZero() {
		t.Error("IsZero() = true for an update with a title set")
	}

	cleared := ""
	withCleared := FieldUpdate{Description: &cleared}
	if withCleared.IsZero() {
		t.Error("IsZero() = true for an update clearing a field")
	}
}
