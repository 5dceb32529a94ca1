package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/dedup"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/observability"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/sources"
)

// stubRunner is a fixed-response Runner for pipeline tests.
type stubRunner struct {
	source  domain.Source
	hits    []sources.RawHit
	err     error
	lastQry string
}

func (s *stubRunner) Run(ctx context.Context, query string) ([]sources.RawHit, error) {
	s.lastQry = query
	return s.hits, s.err
}

func (s *stubRunner) Source() domain.Source { return s.source }
func (s *stubRunner) Name() string          { return string(s.source) }
func (s *stubRunner) IsEnabled() bool       { return true }

// blockingRunner holds its query open until the context is cancelled.
type blockingRunner struct {
	source domain.Source
}

func (b *blockingRunner) Run(ctx context.Context, query string) ([]sources.RawHit, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingRunner) Source() domain.Source { return b.source }
func (b *blockingRunner) Name() string          { return string(b.source) }
func (b *blockingRunner) IsEnabled() bool       { return true }

func newTestPipeline(namespace string, runners ...sources.Runner) *Pipeline {
	registry := sources.NewRegistry()
	for _, r := range runners {
		registry.Register(r)
	}
	return New(registry, Config{Dedup: dedup.DefaultConfig()},
		zerolog.Nop(), observability.NewMetrics(namespace))
}

func TestPipeline_Search(t *testing.T) {
	t.Run("merges and dedupes both sources", func(t *testing.T) {
		pm := &stubRunner{source: domain.SourcePubMed, hits: []sources.RawHit{
			{ID: "111", Title: "Pituitary Adenoma: A Review", AuthorSurname: "Smith"},
			{ID: "222", Title: "Unrelated Paper", AuthorSurname: "Jones"},
		}}
		em := &stubRunner{source: domain.SourceEmbase, hits: []sources.RawHit{
			{ID: "e1", Title: "pituitary adenoma - a review", AuthorSurname: "smith", DOI: "10.1/x"},
		}}
		p := newTestPipeline("test_pipeline_merge", pm, em)

		result, err := p.Search(context.Background(), `"pituitary adenoma"[tiab] AND review[ti]`)
		require.NoError(t, err)

		assert.NotEmpty(t, result.SearchID)
		assert.False(t, result.Partial)
		assert.Empty(t, result.SourceErrors)
		assert.Equal(t, 1, result.DuplicatesRemoved)
		require.Len(t, result.Citations, 2)

		// PubMed record wins the cross-source duplicate, and PubMed
		// hits come first in the merged list.
		assert.Equal(t, domain.SourcePubMed, result.Citations[0].Source)
		assert.Equal(t, "111", result.Citations[0].ID)

		// Each source got its own dialect.
		assert.Equal(t, `"pituitary adenoma"[tiab] AND review[ti]`, pm.lastQry)
		assert.Equal(t, `'pituitary adenoma':ti,ab,kw AND 'review':ti,kw`, em.lastQry)
		assert.Equal(t, pm.lastQry, result.PubMedQuery)
		assert.Equal(t, em.lastQry, result.EmbaseQuery)

		// Citations carry the query string that was actually sent.
		assert.Equal(t, result.PubMedQuery, result.Citations[0].Query)
	})

	t.Run("rejects syntax errors without touching sources", func(t *testing.T) {
		pm := &stubRunner{source: domain.SourcePubMed}
		p := newTestPipeline("test_pipeline_syntax", pm)

		_, err := p.Search(context.Background(), "asthma AND (")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrSyntax))
		assert.Empty(t, pm.lastQry)
	})

	t.Run("untranslatable query runs pubmed only", func(t *testing.T) {
		pm := &stubRunner{source: domain.SourcePubMed, hits: []sources.RawHit{
			{ID: "111", Title: "Found it", AuthorSurname: "Smith"},
		}}
		em := &stubRunner{source: domain.SourceEmbase}
		p := newTestPipeline("test_pipeline_untranslatable", pm, em)

		result, err := p.Search(context.Background(), `adenoma[tiab] AND smith[au]`)
		require.NoError(t, err)

		assert.True(t, result.Partial)
		assert.Empty(t, result.EmbaseQuery)
		assert.Empty(t, em.lastQry, "embase should not be queried")
		require.Len(t, result.SourceErrors, 1)
		assert.Equal(t, domain.SourceEmbase, result.SourceErrors[0].Source)
		assert.Contains(t, result.SourceErrors[0].Message, "au")
		assert.Len(t, result.Citations, 1)
	})

	t.Run("one source failing yields partial result", func(t *testing.T) {
		pm := &stubRunner{source: domain.SourcePubMed, hits: []sources.RawHit{
			{ID: "111", Title: "Kept", AuthorSurname: "Smith"},
		}}
		em := &stubRunner{
			source: domain.SourceEmbase,
			err:    domain.NewQueryRejectedError(domain.SourceEmbase, 401, "unauthorized"),
		}
		p := newTestPipeline("test_pipeline_partial", pm, em)

		result, err := p.Search(context.Background(), "adenoma[tiab]")
		require.NoError(t, err)

		assert.True(t, result.Partial)
		require.Len(t, result.SourceErrors, 1)
		assert.Equal(t, domain.SourceEmbase, result.SourceErrors[0].Source)
		assert.Len(t, result.Citations, 1)
	})

	t.Run("both sources failing is an error", func(t *testing.T) {
		pm := &stubRunner{
			source: domain.SourcePubMed,
			err:    domain.NewSourceUnavailableError(domain.SourcePubMed, errors.New("connection refused")),
		}
		em := &stubRunner{
			source: domain.SourceEmbase,
			err:    domain.NewSourceUnavailableError(domain.SourceEmbase, errors.New("timeout")),
		}
		p := newTestPipeline("test_pipeline_allfail", pm, em)

		_, err := p.Search(context.Background(), "adenoma")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
	})

	t.Run("unidentifiable hits are skipped and counted", func(t *testing.T) {
		pm := &stubRunner{source: domain.SourcePubMed, hits: []sources.RawHit{
			{ID: "111", Title: "Has id"},
			{Title: "No id"},
		}}
		em := &stubRunner{source: domain.SourceEmbase, hits: []sources.RawHit{}}
		p := newTestPipeline("test_pipeline_skipped", pm, em)

		result, err := p.Search(context.Background(), "adenoma")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Len(t, result.Citations, 1)
	})

	t.Run("cancellation discards the finished source's results", func(t *testing.T) {
		pm := &stubRunner{source: domain.SourcePubMed, hits: []sources.RawHit{
			{ID: "111", Title: "Kept", AuthorSurname: "Smith"},
		}}
		em := &blockingRunner{source: domain.SourceEmbase}
		p := newTestPipeline("test_pipeline_cancel", pm, em)

		ctx, cancel := context.WithCancel(context.Background())
		timer := time.AfterFunc(10*time.Millisecond, cancel)
		defer timer.Stop()

		result, err := p.Search(ctx, "adenoma[tiab]")
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Nil(t, result)
	})

	t.Run("zero hits is a successful empty result", func(t *testing.T) {
		pm := &stubRunner{source: domain.SourcePubMed, hits: []sources.RawHit{}}
		em := &stubRunner{source: domain.SourceEmbase, hits: []sources.RawHit{}}
		p := newTestPipeline("test_pipeline_empty", pm, em)

		result, err := p.Search(context.Background(), "nonexistent_term_xyz")
		require.NoError(t, err)
		assert.False(t, result.Partial)
		assert.Empty(t, result.Citations)
		assert.Zero(t, result.DuplicatesRemoved)
	})
}
