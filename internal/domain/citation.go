// Package domain provides domain models and business logic for the database searcher.
package domain

import "strings"

// Source identifies the literature database a citation came from.
type Source string

const (
	SourcePubMed Source = "pubmed"
	SourceEmbase Source = "embase"
)

// DisplayName returns the conventional capitalized name of the source,
// used in CSV output and error messages.
func (s Source) DisplayName() string {
	switch s {
	case SourcePubMed:
		return "PubMed"
	case SourceEmbase:
		return "Embase"
	default:
		return string(s)
	}
}

// Valid returns true if the source is one of the recognized databases.
func (s Source) Valid() bool {
	return s == SourcePubMed || s == SourceEmbase
}

// Citation is the canonical normalized representation of one literature-search hit.
// Instances are created by the normalizer and immutable thereafter.
type Citation struct {
	// Source is the database that returned this hit.
	Source Source

	// Author is the first author's last name. May be empty when the
	// source did not report any authors.
	Author string

	// Title is the full article title.
	Title string

	// Abstract is the full abstract text. Empty when the source has none.
	Abstract string

	// ID is the source-native identifier (PMID for PubMed, MEDLINE
	// accession for Embase). Always non-empty for a normalized citation.
	ID string

	// Link is a URL to the article.
	Link string

	// Query is the exact query string that was sent to the source.
	// PubMed-origin and Embase-origin citations from the same search
	// carry different strings.
	Query string
}

// HasAbstract returns true if the citation carries non-blank abstract text.
func (c Citation) HasAbstract() bool {
	return strings.TrimSpace(c.Abstract) != ""
}
