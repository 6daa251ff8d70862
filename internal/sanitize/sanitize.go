// Package sanitize cleans user-authored word maps before they are persisted.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxTermLength       = 100
	maxDefinitionLength = 500
	maxSpecialChars     = 5
)

var (
	controlCharPattern = regexp.MustCompile(`[\p{C}]`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
	scriptHTMLPattern  = regexp.MustCompile(`(?i)<script|<html|javascript:`)
)

// WordMap returns a copy of words with every entry trimmed, cleaned and
// validated. Entries that are empty after cleaning, exceed the length caps or
// contain script/HTML fragments or excessive symbol spam are dropped; the
// remaining entries are kept.
func WordMap(words map[string]string) map[string]string {
	out := make(map[string]string, len(words))
	for term, definition := range words {
		term = clean(term)
		definition = clean(definition)
		if term == "" || definition == "" {
			continue
		}
		if len(term) > maxTermLength || len(definition) > maxDefinitionLength {
			continue
		}
		if !valid(term) || !valid(definition) {
			continue
		}
		out[term] = definition
	}
	return out
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = controlCharPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return s
}

func valid(s string) bool {
	if scriptHTMLPattern.MatchString(s) {
		return false
	}

	special := 0
	for _, r := range s {
		if unicode.IsSymbol(r) || unicode.IsPunct(r) {
			special++
		}
	}
	return special <= maxSpecialChars
}
