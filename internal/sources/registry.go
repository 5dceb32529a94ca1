package sources

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
)

// RunnerResult holds the outcome of one source's query.
type RunnerResult struct {
	// Source identifies which database produced this result.
	Source domain.Source

	// Query is the exact query string that was sent to the source.
	Query string

	// Hits contains the raw records if the query succeeded.
	Hits []RawHit

	// Err contains the failure if the query did not succeed.
	Err error

	// Duration is how long the runner took.
	Duration time.Duration
}

// Registry manages source runners and coordinates concurrent searches.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	runners map[domain.Source]Runner
}

// NewRegistry creates a new registry with no runners.
func NewRegistry() *Registry {
	return &Registry{
		runners: make(map[domain.Source]Runner),
	}
}

// Register adds a runner to the registry, replacing any existing runner for
// the same source.
func (r *Registry) Register(runner Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runners[runner.Source()] = runner
}

// Get returns the runner for a source, or nil if none is registered.
func (r *Registry) Get(source domain.Source) Runner {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runners[source]
}

// SourceQuery pairs a source with the dialect-specific query string to send it.
type SourceQuery struct {
	Source domain.Source
	Query  string
}

// RunAll executes the given per-source queries concurrently and waits for all
// of them. Results are returned in the order the queries were given, so
// callers relying on PubMed-first processing order pass PubMed first. Errors
// are not filtered; each RunnerResult carries its own. A source with no
// registered or enabled runner yields a SourceUnavailableError result.
// Context cancellation interrupts in-flight queries.
func (r *Registry) RunAll(ctx context.Context, queries []SourceQuery) []RunnerResult {
	results := make([]RunnerResult, len(queries))

	var wg sync.WaitGroup
	for i, sq := range queries {
		runner := r.Get(sq.Source)
		if runner == nil || !runner.IsEnabled() {
			results[i] = RunnerResult{
				Source: sq.Source,
				Query:  sq.Query,
				Err:    domain.NewSourceUnavailableError(sq.Source, ErrSourceDisabled),
			}
			continue
		}

		wg.Add(1)
		go func(i int, runner Runner, sq SourceQuery) {
			defer wg.Done()
			start := time.Now()
			hits, err := runner.Run(ctx, sq.Query)
			results[i] = RunnerResult{
				Source:   sq.Source,
				Query:    sq.Query,
				Hits:     hits,
				Err:      err,
				Duration: time.Since(start),
			}
		}(i, runner, sq)
	}
	wg.Wait()

	return results
}

// ErrSourceDisabled is returned (wrapped in a SourceUnavailableError) when a
// query targets a source with no registered or enabled runner.
var ErrSourceDisabled = errors.New("source is not configured or disabled")
