package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLanguage is the language assigned to snippets that do not declare one.
const DefaultLanguage = "text"

// Snippet is the unit of storage: a titled piece of code with a language tag,
// free-form labels, and usage bookkeeping.
type Snippet struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UsageCount  int       `json:"usage_count"`
	LastUsed    time.Time `json:"last_used,omitzero"`
}

// Clone returns a deep copy of the snippet.
func (s *Snippet) Clone() *Snippet {
	dup := *s
	dup.Tags = append([]string(nil), s.Tags...)
	return &dup
}

// NewId generates a fresh short opaque snippet identifier.
func NewId() string {
	return uuid.NewString()[:8]
}

// NormalizeLanguage lower-cases and trims a language tag.
// An empty tag becomes DefaultLanguage.
func NormalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return DefaultLanguage
	}
	return language
}

// NormalizeTags lower-cases and trims each tag and drops empty ones.
// Duplicates within the list are preserved.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	return normalized
}

// HasTag reports whether the snippet carries the tag, case-insensitively.
func (s *Snippet) HasTag(tag string) bool {
	tag = strings.ToLower(tag)
	for _, have := range s.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// FieldUpdate carries a partial snippet mutation. Nil fields are left
// untouched, which distinguishes "field omitted" from "field cleared".
type FieldUpdate struct {
	Title       *string
	Code        *string
	Language    *string
	Tags        *[]string
	Description *string
}

// IsZero reports whether no field is set.
func (u FieldUpdate) IsZero() bool {
	return u.Title == nil && u.Code == nil && u.Language == nil &&
		u.Tags == nil && u.Description == nil
}

// SearchResult pairs a snippet with the composite relevance score the
// matcher computed for it.
type SearchResult struct {
	Snippet *Snippet
	Score   float64
}

// TagCount is one row of a tag or language frequency table.
type TagCount struct {
	Name  string
	Count int
}

// Stats summarizes the whole collection.
type Stats struct {
	TotalSnippets   int `json:"total_snippets"`
	UniqueLanguages int `json:"unique_languages"`
	UniqueTags      int `json:"unique_tags"`
	TotalUsage      int `json:"total_usage"`
}

// Config holds the user-facing settings persisted alongside the collection.
type Config struct {
	DefaultLanguage string `json:"default_language"`
	Theme           string `json:"theme"`
}

// DefaultConfig returns the settings used when no config record exists.
func DefaultConfig() Config {
	return Config{
		DefaultLanguage: DefaultLanguage,
		Theme:           "default",
	}
}
