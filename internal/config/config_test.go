package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.HTTPPort)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.Equal(t, 32, cfg.Search.MaxDepth)
		assert.True(t, cfg.Search.DedupeMatchAuthor)

		assert.True(t, cfg.Sources.PubMed.Enabled)
		assert.Equal(t, "https://eutils.ncbi.nlm.nih.gov/entrez/eutils", cfg.Sources.PubMed.BaseURL)
		assert.Equal(t, 3.0, cfg.Sources.PubMed.RateLimit)
		assert.Equal(t, 100, cfg.Sources.PubMed.MaxResults)

		assert.True(t, cfg.Sources.Embase.Enabled)
		assert.Equal(t, "https://api.elsevier.com/content", cfg.Sources.Embase.BaseURL)
		assert.Equal(t, 5.0, cfg.Sources.Embase.RateLimit)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DBSEARCHER_SERVER_HTTP_PORT", "9090")
		t.Setenv("DBSEARCHER_LOGGING_LEVEL", "debug")
		t.Setenv("DBSEARCHER_SEARCH_DEDUPE_MATCH_AUTHOR", "false")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.HTTPPort)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.False(t, cfg.Search.DedupeMatchAuthor)
	})

	t.Run("secrets come only from environment", func(t *testing.T) {
		t.Setenv("DBSEARCHER_SOURCES_PUBMED_API_KEY", "ncbi-key")
		t.Setenv("DBSEARCHER_SOURCES_EMBASE_API_KEY", "els-key")
		t.Setenv("DBSEARCHER_SOURCES_EMBASE_INST_TOKEN", "els-token")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "ncbi-key", cfg.Sources.PubMed.APIKey)
		assert.Equal(t, "els-key", cfg.Sources.Embase.APIKey)
		assert.Equal(t, "els-token", cfg.Sources.Embase.InstToken)
	})

	t.Run("invalid log level fails validation", func(t *testing.T) {
		t.Setenv("DBSEARCHER_LOGGING_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{HTTPPort: 8080},
			Logging: LoggingConfig{Level: "info"},
			Search:  SearchConfig{MaxDepth: 32},
			Sources: SourcesConfig{
				PubMed: SourceConfig{Enabled: true, RateLimit: 3},
				Embase: SourceConfig{Enabled: true, RateLimit: 5},
			},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects bad port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.HTTPPort = 0
		assert.Error(t, cfg.Validate())

		cfg.Server.HTTPPort = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects non-positive max depth", func(t *testing.T) {
		cfg := valid()
		cfg.Search.MaxDepth = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects all sources disabled", func(t *testing.T) {
		cfg := valid()
		cfg.Sources.PubMed.Enabled = false
		cfg.Sources.Embase.Enabled = false
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one source")
	})

	t.Run("rejects non-positive rate limits", func(t *testing.T) {
		cfg := valid()
		cfg.Sources.PubMed.RateLimit = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestServerConfig_HTTPAddress(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", HTTPPort: 8081}
	assert.Equal(t, "127.0.0.1:8081", cfg.HTTPAddress())
}
