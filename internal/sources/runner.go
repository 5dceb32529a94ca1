// Package sources provides clients for running queries against literature
// databases.
//
// Each database (PubMed, Embase) implements the Runner interface, allowing
// the search pipeline to query both sources concurrently with a unified API.
// Runners return raw hits in the source's native field shape; canonical
// citation mapping happens in the normalize package, never here.
package sources

import (
	"context"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
)

// RawHit is one source-native citation record. It is ephemeral: consumed
// entirely by the normalizer and never stored beyond that step.
type RawHit struct {
	// ID is the source-native identifier (PMID or MEDLINE accession).
	// May be empty for a malformed hit; the normalizer rejects those.
	ID string

	// Title is the article title as reported by the source.
	Title string

	// Abstract is the abstract text. Empty when the source has none.
	Abstract string

	// AuthorSurname is the first author's last name, empty when unknown.
	AuthorSurname string

	// DOI is populated when the source reports one; the normalizer
	// prefers it for link construction.
	DOI string
}

// Runner executes one query against one literature database.
type Runner interface {
	// Run sends the query string and returns the raw hit list.
	// Implementations respect context cancellation and fail with a
	// domain.SourceUnavailableError for transient/network failures or a
	// domain.QueryRejectedError when the remote API refuses the query.
	// Neither is retried here beyond the HTTP client's transport-level
	// retries; retry policy belongs to the runner, not its callers.
	Run(ctx context.Context, query string) ([]RawHit, error)

	// Source returns the database this runner queries.
	Source() domain.Source

	// Name returns a human-readable source name for logging and metrics.
	Name() string

	// IsEnabled reports whether this runner is configured and usable.
	IsEnabled() bool
}
