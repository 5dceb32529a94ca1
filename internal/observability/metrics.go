package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the database searcher.
// Metrics are organized by subsystem: searches, translation, sources, and
// merging. All counters and histograms are registered via promauto for
// automatic registration with the default Prometheus registry.
type Metrics struct {
	// SearchesStarted counts the total number of searches initiated.
	SearchesStarted prometheus.Counter

	// SearchesCompleted counts searches that finished with a full result.
	SearchesCompleted prometheus.Counter

	// SearchesPartial counts searches that finished with only one source's results.
	SearchesPartial prometheus.Counter

	// SearchesFailed counts searches that produced no results at all.
	SearchesFailed prometheus.Counter

	// SearchesRejected counts searches rejected before any network call.
	SearchesRejected prometheus.Counter

	// SearchDuration observes the end-to-end duration of searches in seconds.
	SearchDuration prometheus.Histogram

	// TranslationsFailed counts queries that could not be translated to Embase syntax.
	TranslationsFailed prometheus.Counter

	// SourceRequests counts queries sent, labeled by source.
	SourceRequests *prometheus.CounterVec

	// SourceFailures counts failed source queries, labeled by source and error kind.
	SourceFailures *prometheus.CounterVec

	// SourceDuration observes per-source query duration in seconds, labeled by source.
	SourceDuration *prometheus.HistogramVec

	// HitsPerSource observes the distribution of raw hits per query, labeled by source.
	HitsPerSource *prometheus.HistogramVec

	// RecordsSkipped counts unidentifiable raw hits dropped by the normalizer.
	RecordsSkipped prometheus.Counter

	// DuplicatesRemoved counts citations collapsed by the deduplicator.
	DuplicatesRemoved prometheus.Counter

	// CitationsReturned observes the distribution of unique citations per search.
	CitationsReturned prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SearchesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_started_total",
			Help:      "Total number of searches started",
		}),
		SearchesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_completed_total",
			Help:      "Total number of searches completed with both sources",
		}),
		SearchesPartial: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_partial_total",
			Help:      "Total number of searches completed with one source missing",
		}),
		SearchesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_failed_total",
			Help:      "Total number of searches that produced no results",
		}),
		SearchesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_rejected_total",
			Help:      "Total number of searches rejected by syntax validation",
		}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		TranslationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_failed_total",
			Help:      "Total number of queries with no Embase translation",
		}),
		SourceRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Total number of queries sent, by source",
		}, []string{"source"}),
		SourceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_failures_total",
			Help:      "Total number of failed source queries, by source and error kind",
		}, []string{"source", "kind"}),
		SourceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_duration_seconds",
			Help:      "Per-source query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		HitsPerSource: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hits_per_source",
			Help:      "Raw hits returned per query, by source",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"source"}),
		RecordsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Total number of unidentifiable raw hits skipped",
		}),
		DuplicatesRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_removed_total",
			Help:      "Total number of duplicate citations collapsed",
		}),
		CitationsReturned: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "citations_returned",
			Help:      "Unique citations returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
	}
}
