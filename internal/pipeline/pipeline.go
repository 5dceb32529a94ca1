// Package pipeline orchestrates a literature search across both
// databases: parse, validate, translate, fan out, normalize, dedupe.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/dedup"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/normalize"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/observability"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/query"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/sources"
)

// SourceError records why one source produced no results.
type SourceError struct {
	Source  domain.Source `json:"source"`
	Message string        `json:"message"`
}

// Result is the outcome of one search across both databases.
type Result struct {
	// SearchID uniquely identifies this search run.
	SearchID string
	// Citations is the deduplicated result list, PubMed hits before
	// Embase hits, each source's hits in retrieval order.
	Citations []domain.Citation
	// PubMedQuery is the canonical PubMed query that was sent.
	PubMedQuery string
	// EmbaseQuery is the translated Embase query, empty when
	// translation failed or Embase was not queried.
	EmbaseQuery string
	// Partial is true when at least one source failed or was skipped
	// while another succeeded.
	Partial bool
	// SourceErrors describes each source that contributed nothing.
	SourceErrors []SourceError
	// Skipped counts raw records dropped for missing identifiers.
	Skipped int
	// DuplicatesRemoved counts records collapsed by deduplication.
	DuplicatesRemoved int
}

// Config holds pipeline settings.
type Config struct {
	// MaxDepth bounds query tree nesting. Zero means the default.
	MaxDepth int
	// Dedup controls the duplicate identity key.
	Dedup dedup.Config
}

// Pipeline runs searches end to end.
type Pipeline struct {
	registry *sources.Registry
	cfg      Config
	logger   zerolog.Logger
	metrics  *observability.Metrics
}

// New creates a pipeline over the given source registry.
func New(registry *sources.Registry, cfg Config, logger zerolog.Logger, metrics *observability.Metrics) *Pipeline {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = query.DefaultMaxDepth
	}
	return &Pipeline{
		registry: registry,
		cfg:      cfg,
		logger:   logger.With().Str("component", "pipeline").Logger(),
		metrics:  metrics,
	}
}

// Search parses raw as a PubMed query, validates it, translates it for
// Embase, queries both sources, and returns the merged deduplicated
// citation list.
//
// A query that fails to parse or validate is rejected outright. A query
// that parses but cannot be translated still runs against PubMed; the
// Embase side is reported as a source error and the result is partial.
// One source failing yields a partial result; both failing is an error.
func (p *Pipeline) Search(ctx context.Context, raw string) (*Result, error) {
	searchID := uuid.New().String()
	ctx = observability.ContextWithSearchID(ctx, searchID)
	logger := observability.WithSearchContext(p.logger, searchID, raw)

	start := time.Now()
	p.metrics.SearchesStarted.Inc()
	logger.Info().Msg("search started")

	node, err := query.Parse(raw)
	if err != nil {
		p.metrics.SearchesRejected.Inc()
		logger.Warn().Err(err).Msg("query rejected at parse")
		return nil, err
	}
	if err := query.Validate(node, p.cfg.MaxDepth); err != nil {
		p.metrics.SearchesRejected.Inc()
		logger.Warn().Err(err).Msg("query rejected at validation")
		return nil, err
	}

	result := &Result{
		SearchID:    searchID,
		PubMedQuery: query.RenderPubMed(node),
	}

	queries := []sources.SourceQuery{
		{Source: domain.SourcePubMed, Query: result.PubMedQuery},
	}

	embaseQuery, err := query.Translate(node)
	if err != nil {
		var unsupported *domain.UnsupportedConstructError
		if !errors.As(err, &unsupported) {
			return nil, err
		}
		p.metrics.TranslationsFailed.Inc()
		logger.Warn().Err(err).Msg("query not translatable, skipping embase")
		result.SourceErrors = append(result.SourceErrors, SourceError{
			Source:  domain.SourceEmbase,
			Message: err.Error(),
		})
	} else {
		result.EmbaseQuery = embaseQuery
		queries = append(queries, sources.SourceQuery{
			Source: domain.SourceEmbase,
			Query:  embaseQuery,
		})
	}

	runnerResults := p.registry.RunAll(ctx, queries)

	// A cancelled search exposes no partial results, even when one
	// source finished before the cancellation landed.
	if err := ctx.Err(); err != nil {
		p.metrics.SearchesFailed.Inc()
		logger.Warn().Err(err).Msg("search cancelled")
		return nil, fmt.Errorf("search %s: %w", searchID, err)
	}

	var citations []domain.Citation
	succeeded := 0
	for _, rr := range runnerResults {
		srcLogger := observability.WithSourceContext(logger, string(rr.Source))
		p.metrics.SourceRequests.WithLabelValues(string(rr.Source)).Inc()
		p.metrics.SourceDuration.WithLabelValues(string(rr.Source)).Observe(rr.Duration.Seconds())
		if rr.Err != nil {
			p.metrics.SourceFailures.WithLabelValues(string(rr.Source), errorKind(rr.Err)).Inc()
			srcLogger.Error().Err(rr.Err).Msg("source query failed")
			result.SourceErrors = append(result.SourceErrors, SourceError{
				Source:  rr.Source,
				Message: rr.Err.Error(),
			})
			continue
		}
		succeeded++
		p.metrics.HitsPerSource.WithLabelValues(string(rr.Source)).Observe(float64(len(rr.Hits)))

		normalized, skipped := normalize.All(rr.Hits, rr.Source, rr.Query)
		if skipped > 0 {
			p.metrics.RecordsSkipped.Add(float64(skipped))
			srcLogger.Warn().Int("skipped", skipped).Msg("dropped records without identifiers")
		}
		result.Skipped += skipped
		citations = append(citations, normalized...)
	}

	if succeeded == 0 {
		p.metrics.SearchesFailed.Inc()
		logger.Error().Msg("all sources failed")
		return nil, fmt.Errorf("search %s: all sources failed: %w", searchID, firstSourceError(runnerResults))
	}

	result.Citations, result.DuplicatesRemoved = dedup.Dedupe(citations, p.cfg.Dedup)
	p.metrics.DuplicatesRemoved.Add(float64(result.DuplicatesRemoved))
	p.metrics.CitationsReturned.Observe(float64(len(result.Citations)))

	result.Partial = len(result.SourceErrors) > 0
	if result.Partial {
		p.metrics.SearchesPartial.Inc()
	} else {
		p.metrics.SearchesCompleted.Inc()
	}
	p.metrics.SearchDuration.Observe(time.Since(start).Seconds())

	logger.Info().
		Int("citations", len(result.Citations)).
		Int("duplicates_removed", result.DuplicatesRemoved).
		Int("skipped", result.Skipped).
		Bool("partial", result.Partial).
		Dur("duration", time.Since(start)).
		Msg("search finished")

	return result, nil
}

// errorKind buckets a runner error into a metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrQueryRejected):
		return "rejected"
	case errors.Is(err, domain.ErrSourceUnavailable):
		return "unavailable"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "other"
	}
}

// firstSourceError returns the first runner error, for wrapping when
// every source failed.
func firstSourceError(results []sources.RunnerResult) error {
	for _, rr := range results {
		if rr.Err != nil {
			return rr.Err
		}
	}
	return domain.ErrSourceUnavailable
}
