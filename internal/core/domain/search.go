package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// ContextWindow holds the words immediately surrounding the first keyword
// occurrence on a page. Each side holds at most MaxContextWords words.
type ContextWindow struct {
	Before []string
	After  []string
}

// MaxContextWords is the number of words kept on each side of a match.
const MaxContextWords = 2

// MatchRecord is the result of one successful search against one document.
// A file contributes at most one MatchRecord per search.
type MatchRecord struct {
	// FileName is the display name, the base name of FilePath.
	FileName string `json:"file_name"`

	// FilePath is the absolute, cleaned path. It is the document's unique key.
	FilePath string `json:"file_path"`

	// Keyword is the term that was searched, as typed.
	Keyword string `json:"keyword"`

	// Page is the 1-based page the match was found on.
	Page int `json:"page"`

	// ContextBefore holds up to two words preceding the match.
	// Empty does not mean "no match".
	ContextBefore []string `json:"context_before"`

	// ContextAfter holds up to two words following the match.
	ContextAfter []string `json:"context_after"`
}

// NewMatchRecord builds a MatchRecord for path, normalising the context
// slices so they are never nil.
func NewMatchRecord(path, keyword string, page int, window ContextWindow) MatchRecord {
	before := make([]string, len(window.Before))
	copy(before, window.Before)
	after := make([]string, len(window.After))
	copy(after, window.After)

	return MatchRecord{
		FileName:      filepath.Base(path),
		FilePath:      path,
		Keyword:       keyword,
		Page:          page,
		ContextBefore: before,
		ContextAfter:  after,
	}
}

// Clone returns a deep copy of the record.
func (m MatchRecord) Clone() MatchRecord {
	return NewMatchRecord(m.FilePath, m.Keyword, m.Page, ContextWindow{
		Before: m.ContextBefore,
		After:  m.ContextAfter,
	})
}

// Snippet renders the context window around the keyword for display,
// e.g. "… The cat sat on …".
func (m MatchRecord) Snippet() string {
	words := make([]string, 0, len(m.ContextBefore)+len(m.ContextAfter)+3)
	words = append(words, "…")
	words = append(words, m.ContextBefore...)
	words = append(words, m.Keyword)
	words = append(words, m.ContextAfter...)
	words = append(words, "…")
	return strings.Join(words, " ")
}

// SearchOptions configures a single search call.
type SearchOptions struct {
	// Workers bounds the number of documents processed concurrently.
	// Zero or negative selects the configured default.
	Workers int

	// SkipHidden excludes dot-prefixed files and directories.
	SkipHidden bool

	// SkipHistory prevents the keyword from being recorded in search history.
	SkipHistory bool
}

// SkippedDocument records a candidate that could not be searched.
type SkippedDocument struct {
	// Path is the absolute path of the skipped document.
	Path string `json:"path"`

	// Reason is the error message explaining why.
	Reason string `json:"reason"`
}

// SearchReport is the outcome of one search call.
type SearchReport struct {
	// ID correlates log lines and JSON output for one search.
	ID string `json:"id"`

	// Root is the absolute directory that was searched.
	Root string `json:"root"`

	// Keyword is the term that was searched.
	Keyword string `json:"keyword"`

	// Matches are in document enumeration order.
	Matches []MatchRecord `json:"matches"`

	// Skipped lists documents that failed to open or read.
	Skipped []SkippedDocument `json:"skipped"`

	// Scanned is the number of candidate documents considered.
	Scanned int `json:"scanned"`

	// Duration is the wall-clock time of the search.
	Duration time.Duration `json:"duration"`

	// Warnings holds non-fatal problems, such as history that could not be saved.
	Warnings []string `json:"warnings,omitempty"`
}

// EnumerateOptions controls document tree enumeration.
type EnumerateOptions struct {
	// SkipHidden excludes dot-prefixed files and directories.
	SkipHidden bool
}

// TreeChangeKind describes what happened to a watched PDF.
type TreeChangeKind string

// Tree change kinds.
const (
	TreeChangeCreated  TreeChangeKind = "created"
	TreeChangeModified TreeChangeKind = "modified"
	TreeChangeRemoved  TreeChangeKind = "removed"
)

// TreeChange is a single change to a PDF under a watched root.
type TreeChange struct {
	Kind TreeChangeKind
	Path string
}
