package sources

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
)

// fakeRunner is a configurable Runner for registry tests.
type fakeRunner struct {
	source  domain.Source
	enabled bool
	hits    []RawHit
	err     error
	delay   time.Duration
	calls   atomic.Int32
}

func (f *fakeRunner) Run(ctx context.Context, query string) ([]RawHit, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.hits, f.err
}

func (f *fakeRunner) Source() domain.Source { return f.source }
func (f *fakeRunner) Name() string          { return string(f.source) }
func (f *fakeRunner) IsEnabled() bool       { return f.enabled }

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()
	runner := &fakeRunner{source: domain.SourcePubMed, enabled: true}

	assert.Nil(t, registry.Get(domain.SourcePubMed))

	registry.Register(runner)
	assert.Equal(t, runner, registry.Get(domain.SourcePubMed))

	// Re-registering replaces.
	replacement := &fakeRunner{source: domain.SourcePubMed, enabled: false}
	registry.Register(replacement)
	assert.Equal(t, replacement, registry.Get(domain.SourcePubMed))
}

func TestRegistry_RunAll(t *testing.T) {
	t.Run("runs all sources and preserves order", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&fakeRunner{
			source:  domain.SourcePubMed,
			enabled: true,
			hits:    []RawHit{{ID: "p1"}, {ID: "p2"}},
			delay:   20 * time.Millisecond, // slower than embase, order must still hold
		})
		registry.Register(&fakeRunner{
			source:  domain.SourceEmbase,
			enabled: true,
			hits:    []RawHit{{ID: "e1"}},
		})

		results := registry.RunAll(context.Background(), []SourceQuery{
			{Source: domain.SourcePubMed, Query: "pm-query"},
			{Source: domain.SourceEmbase, Query: "em-query"},
		})

		require.Len(t, results, 2)
		assert.Equal(t, domain.SourcePubMed, results[0].Source)
		assert.Equal(t, "pm-query", results[0].Query)
		assert.Len(t, results[0].Hits, 2)
		require.NoError(t, results[0].Err)

		assert.Equal(t, domain.SourceEmbase, results[1].Source)
		assert.Len(t, results[1].Hits, 1)
	})

	t.Run("one failing source does not affect the other", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&fakeRunner{source: domain.SourcePubMed, enabled: true, hits: []RawHit{{ID: "p1"}}})
		registry.Register(&fakeRunner{
			source:  domain.SourceEmbase,
			enabled: true,
			err:     domain.NewQueryRejectedError(domain.SourceEmbase, 401, "unauthorized"),
		})

		results := registry.RunAll(context.Background(), []SourceQuery{
			{Source: domain.SourcePubMed, Query: "q1"},
			{Source: domain.SourceEmbase, Query: "q2"},
		})

		require.NoError(t, results[0].Err)
		require.Error(t, results[1].Err)
		assert.True(t, errors.Is(results[1].Err, domain.ErrQueryRejected))
	})

	t.Run("unregistered source yields source unavailable", func(t *testing.T) {
		registry := NewRegistry()

		results := registry.RunAll(context.Background(), []SourceQuery{
			{Source: domain.SourcePubMed, Query: "q"},
		})

		require.Len(t, results, 1)
		require.Error(t, results[0].Err)
		assert.True(t, errors.Is(results[0].Err, domain.ErrSourceUnavailable))
		assert.True(t, errors.Is(results[0].Err, ErrSourceDisabled))
	})

	t.Run("disabled runner is not invoked", func(t *testing.T) {
		registry := NewRegistry()
		disabled := &fakeRunner{source: domain.SourceEmbase, enabled: false}
		registry.Register(disabled)

		results := registry.RunAll(context.Background(), []SourceQuery{
			{Source: domain.SourceEmbase, Query: "q"},
		})

		require.Error(t, results[0].Err)
		assert.True(t, errors.Is(results[0].Err, ErrSourceDisabled))
		assert.Zero(t, disabled.calls.Load())
	})

	t.Run("records durations", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&fakeRunner{
			source:  domain.SourcePubMed,
			enabled: true,
			delay:   10 * time.Millisecond,
		})

		results := registry.RunAll(context.Background(), []SourceQuery{
			{Source: domain.SourcePubMed, Query: "q"},
		})

		assert.GreaterOrEqual(t, results[0].Duration, 10*time.Millisecond)
	})

	t.Run("context cancellation interrupts runners", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&fakeRunner{
			source:  domain.SourcePubMed,
			enabled: true,
			delay:   time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		results := registry.RunAll(ctx, []SourceQuery{
			{Source: domain.SourcePubMed, Query: "q"},
		})

		assert.Less(t, time.Since(start), 500*time.Millisecond)
		require.Error(t, results[0].Err)
	})

	t.Run("empty query list", func(t *testing.T) {
		registry := NewRegistry()
		results := registry.RunAll(context.Background(), nil)
		assert.Empty(t, results)
	})
}
