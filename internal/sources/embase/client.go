package embase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/domain"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/sources"
)

const (
	// DefaultBaseURL is the default Elsevier content API base URL.
	DefaultBaseURL = "https://api.elsevier.com/content"

	// DefaultRateLimit is the default rate limit (5 requests per second).
	DefaultRateLimit = 5.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 5

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResults is the default maximum results per request.
	DefaultMaxResults = 100

	// apiKeyHeader is the HTTP header name for the Elsevier API key.
	apiKeyHeader = "X-ELS-APIKey"

	// instTokenHeader is the HTTP header name for the institutional token.
	instTokenHeader = "X-ELS-Insttoken"

	// sourceName is the human-readable name for this source.
	sourceName = "Embase"
)

// Config holds configuration for the Embase client.
type Config struct {
	// BaseURL is the Elsevier content API base URL.
	BaseURL string

	// APIKey is the Elsevier API key. Required for all requests.
	APIKey string

	// InstToken is the institutional token required when working outside
	// the institution's network. Optional on-campus.
	InstToken string

	// Timeout is the request timeout.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// MaxResults is the maximum results to return per search request.
	MaxResults int

	// Enabled indicates whether this source is enabled for searches.
	Enabled bool
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
	if c.MaxResults == 0 {
		c.MaxResults = DefaultMaxResults
	}
}

// Client implements the sources.Runner interface for Embase.
type Client struct {
	config     Config
	httpClient *sources.HTTPClient
}

// Ensure Client implements the Runner interface.
var _ sources.Runner = (*Client)(nil)

// New creates a new Embase client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	httpClient := sources.NewHTTPClient(sources.HTTPClientConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
		UserAgent: "database-searcher/1.0",
		Headers: map[string]string{
			apiKeyHeader:    cfg.APIKey,
			instTokenHeader: cfg.InstToken,
		},
	})

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// NewWithHTTPClient creates a new Embase client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *sources.HTTPClient) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// Run queries Embase with an Embase-syntax query string.
func (c *Client) Run(ctx context.Context, query string) ([]sources.RawHit, error) {
	if !c.config.Enabled {
		return nil, domain.NewSourceUnavailableError(domain.SourceEmbase, sources.ErrSourceDisabled)
	}

	searchURL, err := c.buildSearchURL(query)
	if err != nil {
		return nil, fmt.Errorf("building search URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewSourceUnavailableError(domain.SourceEmbase, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&searchResp); err != nil {
		return nil, domain.NewSourceUnavailableError(domain.SourceEmbase,
			fmt.Errorf("decoding response: %w", err))
	}

	hits := make([]sources.RawHit, 0, len(searchResp.Results))
	for i := range searchResp.Results {
		hits = append(hits, resultToHit(&searchResp.Results[i]))
	}
	return hits, nil
}

// Source returns the source identifier.
func (c *Client) Source() domain.Source {
	return domain.SourceEmbase
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return sourceName
}

// IsEnabled returns whether the source is enabled.
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

// buildSearchURL constructs the article search URL for a query.
func (c *Client) buildSearchURL(query string) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	baseURL.Path = strings.TrimRight(baseURL.Path, "/") + "/embase/article"

	q := url.Values{}
	q.Set("query", query)
	q.Set("count", strconv.Itoa(c.config.MaxResults))
	baseURL.RawQuery = q.Encode()

	return baseURL.String(), nil
}

// statusError maps a non-200 response to the domain error taxonomy.
// 401 and 403 get actionable guidance because the fix (an insttoken from
// Elsevier integration support) is not discoverable from the status alone.
func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.NewQueryRejectedError(domain.SourceEmbase, resp.StatusCode,
			"unauthorized: check your API key; off-campus access needs an institutional token (email integrationsupport@elsevier.com)")
	case http.StatusForbidden:
		return domain.NewQueryRejectedError(domain.SourceEmbase, resp.StatusCode,
			"forbidden: your API key lacks Embase entitlements (email integrationsupport@elsevier.com)")
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return domain.NewQueryRejectedError(domain.SourceEmbase, resp.StatusCode, string(body))
	}
	return domain.NewSourceUnavailableError(domain.SourceEmbase,
		fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
}

// resultToHit converts an Embase result to a raw hit.
func resultToHit(r *Result) sources.RawHit {
	hit := sources.RawHit{
		ID:  r.ItemInfo.ItemIDList.Medl,
		DOI: r.ItemInfo.ItemIDList.DOI,
	}

	if tt := r.Head.CitationTitle.TitleText; len(tt) > 0 {
		hit.Title = strings.TrimSpace(tt[0].Text)
	}

	if abs := r.Head.Abstracts; abs != nil && len(abs.Abstracts) > 0 {
		hit.Abstract = strings.TrimSpace(strings.Join(abs.Abstracts[0].Paras, " "))
	}

	if al := r.Head.AuthorList; al != nil && len(al.Authors) > 0 {
		hit.AuthorSurname = al.Authors[0].Surname
	}

	return hit
}
