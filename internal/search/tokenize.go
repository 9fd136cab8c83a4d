package search

import (
	"regexp"
	"strings"
	"unicode"

	"paperchat/internal/storage"
)

// categoryPattern matches arXiv-style category codes such as "cs.CL" or
// "stat.ML": lowercase letters, a dot, then an uppercase-led tail.
var categoryPattern = regexp.MustCompile(`\b[a-z]+(?:-[a-z]+)*\.[A-Z][A-Za-z-]*\b`)

// BuildKeywordQuery analyzes a raw query string into the keyword-search
// conditions of the fallback path.
//
// A category token becomes an exact keyword-membership condition. If the
// query contains CJK characters, the whole query is kept as a single
// whole-phrase term; otherwise it is split on whitespace and punctuation
// into terms longer than one rune.
func BuildKeywordQuery(query string) storage.KeywordQuery {
	q := storage.KeywordQuery{}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return q
	}

	q.Category = categoryPattern.FindString(trimmed)

	if containsCJK(trimmed) {
		q.Terms = []string{trimmed}
		return q
	}

	for _, term := range splitTerms(trimmed) {
		if len([]rune(term)) > 1 {
			q.Terms = append(q.Terms, term)
		}
	}
	return q
}

// containsCJK reports whether s contains any CJK ideographs or kana/hangul.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			return true
		}
	}
	return false
}

// splitTerms splits on anything that is not a letter or digit.
func splitTerms(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
