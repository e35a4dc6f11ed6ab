// Package filter implements the regex-based profanity classifier.
//
// A Filter is compiled once from a list of stems and is immutable afterwards,
// so it is safe for concurrent use without synchronization.
package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// wordRunes is the character class treated as word-constituent. Go's RE2
// \b and \w are ASCII-only, which silently breaks word boundaries for
// Cyrillic stems, so both the boundary and the suffix are spelled out
// with Unicode classes instead.
const wordRunes = `\p{L}\p{N}_`

// Filter reports whether a text contains a prohibited stem. A stem matches
// at a left word boundary and may be extended by any word characters to the
// right, so "мудак" also matches "мудаки". Matching is case-insensitive
// with full Unicode case folding.
type Filter struct {
	re *regexp.Regexp
}

// New compiles a Filter from the given stems. Blank stems are skipped;
// the rest are quoted, so stems containing regex metacharacters or
// punctuation are matched literally. An empty effective list is an error.
func New(stems []string) (*Filter, error) {
	alts := make([]string, 0, len(stems))
	for _, stem := range stems {
		stem = strings.TrimSpace(stem)
		if stem == "" {
			continue
		}
		alts = append(alts, regexp.QuoteMeta(stem))
	}
	if len(alts) == 0 {
		return nil, fmt.Errorf("filter: stem list is empty")
	}

	pattern := fmt.Sprintf(`(?i)(?:\A|[^%[1]s])(?:%[2]s)[%[1]s]*`,
		wordRunes, strings.Join(alts, "|"))

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("filter: compile pattern: %w", err)
	}

	return &Filter{re: re}, nil
}

// ContainsProhibited reports whether text contains a prohibited stem.
// Empty text never matches. The check is pure and deterministic.
func (f *Filter) ContainsProhibited(text string) bool {
	if text == "" {
		return false
	}
	return f.re.MatchString(text)
}
