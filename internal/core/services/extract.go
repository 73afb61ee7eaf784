package services

import (
	"strings"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// ExtractContext finds the first sentence of pageText containing keyword and
// returns up to domain.MaxContextWords words either side of the first word
// containing it. Matching is substring and case-insensitive.
//
// Sentence boundaries are every '.', '!' and '?' with no abbreviation
// handling. Words are separated by single spaces, and the empty tokens that
// runs of spaces would produce are dropped, so the window always holds real
// words: "a  b cat" yields Before ["a", "b"], where a literal split on ' '
// would yield ["", "b"]. When the keyword never
// falls inside a single word of a single sentence (it straddles a
// terminator, or contains a space) the window is empty and ok is false;
// the page may still contain the keyword.
func ExtractContext(pageText, keyword string) (window domain.ContextWindow, ok bool) {
	window = domain.ContextWindow{Before: []string{}, After: []string{}}

	needle := strings.ToLower(keyword)
	if needle == "" {
		return window, false
	}

	for _, sentence := range splitSentences(pageText) {
		if !strings.Contains(strings.ToLower(sentence), needle) {
			continue
		}

		words := splitWords(sentence)
		for i, word := range words {
			if !strings.Contains(strings.ToLower(word), needle) {
				continue
			}

			start := max(0, i-domain.MaxContextWords)
			end := min(len(words), i+1+domain.MaxContextWords)
			window.Before = append(window.Before, words[start:i]...)
			window.After = append(window.After, words[i+1:end]...)
			return window, true
		}
		// No single word holds the keyword; try the next sentence.
	}

	return window, false
}

// splitSentences splits text on sentence terminators.
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// splitWords splits a sentence on single spaces, dropping empty tokens.
func splitWords(sentence string) []string {
	parts := strings.Split(sentence, " ")
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// containsFold reports whether text contains keyword, case-insensitively.
func containsFold(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(keyword))
}
