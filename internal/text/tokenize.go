// Package text provides tokenization and TF-IDF vectorization for the local engines.
package text

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// categoryPattern matches a leading bracketed category marker, e.g. "[billing] refund text".
var categoryPattern = regexp.MustCompile(`^\s*\[[^\]]*\]\s*`)

// Tokenize lowercases s and returns its word tokens with stopwords removed.
func Tokenize(s string) []string {
	lower := strings.ToLower(s)
	raw := tokenPattern.FindAllString(lower, -1)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, isStop := stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// StripCategories removes a leading bracketed category marker from sample text.
// Engines apply this during Prepare; sample identifiers are never affected.
func StripCategories(s string) string {
	return categoryPattern.ReplaceAllString(s, "")
}

var stopwords = buildStopwords()

func buildStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to",
		"of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were",
		"be", "been", "being", "it", "this", "that", "these", "those", "from",
		"up", "down", "over", "under", "again", "further", "than", "so", "such",
		"into", "about", "between", "through", "during", "before", "after",
		"above", "below", "out", "off", "own", "same", "too", "very", "can",
		"will", "just", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
