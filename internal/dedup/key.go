// Package dedup merges citations from both sources into a unique set by
// comparing normalized identity keys.
//
// Cross-source duplicates (a PubMed hit and an Embase hit for the same
// underlying paper) typically do not share an id, so identity rests on a
// normalized title comparison, optionally strengthened with the first
// author's normalized name.
package dedup

import (
	"strings"
	"unicode"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
)

// Config controls the identity-matching policy.
type Config struct {
	// MatchAuthor includes the normalized first-author name in the
	// identity key. This guards against merging distinct papers that
	// happen to share a title. Title-only matching merges more
	// aggressively across sources with inconsistent author reporting.
	MatchAuthor bool
}

// DefaultConfig matches on title plus author.
func DefaultConfig() Config {
	return Config{MatchAuthor: true}
}

// Key derives the normalized identity key for a citation under the given
// policy. Two citations with equal keys are duplicates. The key is a pure
// function of the citation: lowercased, punctuation-stripped,
// whitespace-collapsed title, plus the same normalization of the author when
// the policy includes it.
func Key(c domain.Citation, cfg Config) string {
	key := NormalizeText(c.Title)
	if cfg.MatchAuthor {
		key += "\x00" + NormalizeText(c.Author)
	}
	return key
}

// NormalizeText normalizes a string for identity comparison:
//   - Converts to lowercase
//   - Drops all non-letter, non-digit, non-space characters
//   - Collapses runs of whitespace to a single space
//   - Trims leading and trailing whitespace
func NormalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(s))
	prevSpace := false

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteRune(' ')
				prevSpace = true
			}
		}
		// All other characters (punctuation, symbols) are dropped.
	}

	return strings.TrimRight(sb.String(), " ")
}
