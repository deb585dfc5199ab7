package types

import "time"

// HTTPConfig holds shared HTTP settings used by every external client.
type HTTPConfig struct {
	// Timeout is the fixed per-call deadline (default 20s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (0 = httputil default).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// BibliographicConfig selects and configures the metadata search service.
type BibliographicConfig struct {
	// Source is "crossref" (default), "openalex", "semanticscholar" or "all".
	Source string `json:"source" yaml:"source" mapstructure:"source"`

	// Mailto is sent for polite-pool access on Crossref and OpenAlex.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto"`

	// APIKey is the optional Semantic Scholar key, sent as x-api-key.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`

	// Rows is the number of records requested per query (default 20).
	Rows int `json:"rows" yaml:"rows" mapstructure:"rows"`
}

// ProfileSearchConfig configures the realtime crawler used for Scholar
// profile lookups.
type ProfileSearchConfig struct {
	// Enabled turns profile lookups on (default true).
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// ScraperURL is the realtime crawler endpoint.
	ScraperURL string `json:"scraper_url" yaml:"scraper_url" mapstructure:"scraper_url"`

	// Username and Password authenticate against the crawler API.
	Username string `json:"-" yaml:"-" mapstructure:"username"`
	Password string `json:"-" yaml:"-" mapstructure:"password"`

	// ProxyURL routes crawler calls through an unblocking proxy when set.
	ProxyURL string `json:"-" yaml:"-" mapstructure:"proxy_url"`

	// InsecureTLS disables certificate verification, which the unblocking
	// proxy requires.
	InsecureTLS bool `json:"insecure_tls" yaml:"insecure_tls" mapstructure:"insecure_tls"`

	// Strict also requires the researcher's name in the profile result.
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`
}

// RosterColumns names the roster columns read and written by the batch.
type RosterColumns struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Year        string `json:"year" yaml:"year" mapstructure:"year"`
	Institution string `json:"institution" yaml:"institution" mapstructure:"institution"`
	Profile     string `json:"profile" yaml:"profile" mapstructure:"profile"`
	DOI         string `json:"doi" yaml:"doi" mapstructure:"doi"`
	Status      string `json:"status" yaml:"status" mapstructure:"status"`
}

// DefaultRosterColumns returns the column headers of the researcher roster.
func DefaultRosterColumns() RosterColumns {
	return RosterColumns{
		Name:        "Nombre y apellidos",
		Year:        "Año beca",
		Institution: "Trabajo.institucion",
		Profile:     "GS",
		DOI:         "DOI",
		Status:      "DOI_Status",
	}
}

// EnrichConfig holds settings for the batch enrichment run.
type EnrichConfig struct {
	// Strategy selects tiered or scored matching (default scored).
	Strategy Strategy `json:"strategy" yaml:"strategy" mapstructure:"strategy"`

	// SaveInterval flushes the roster every N processed rows (default 10).
	SaveInterval int `json:"save_interval" yaml:"save_interval" mapstructure:"save_interval"`

	// RowDelay is slept between processed rows (default 2s).
	RowDelay time.Duration `json:"row_delay" yaml:"row_delay" mapstructure:"row_delay"`

	// Limit caps the number of processed rows (0 = no limit).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`

	// SkipProfile disables Scholar profile lookups for the run.
	SkipProfile bool `json:"skip_profile" yaml:"skip_profile" mapstructure:"skip_profile"`

	Columns RosterColumns `json:"columns" yaml:"columns" mapstructure:"columns"`
}

// Config bundles everything injected into a run: service endpoints,
// credentials, timeouts and batch policy.
type Config struct {
	HTTP          HTTPConfig          `json:"http" yaml:"http" mapstructure:"http"`
	Bibliographic BibliographicConfig `json:"bibliographic" yaml:"bibliographic" mapstructure:"bibliographic"`
	Profile       ProfileSearchConfig `json:"profile" yaml:"profile" mapstructure:"profile"`
	Enrich        EnrichConfig        `json:"enrich" yaml:"enrich" mapstructure:"enrich"`

	// JournalDir holds the decision journal database and its exports.
	JournalDir string `json:"journal_dir" yaml:"journal_dir" mapstructure:"journal_dir"`
}

// Default values applied by WithDefaults.
const (
	DefaultTimeout      = 20 * time.Second
	DefaultUserAgent    = "scholar-match/0.1"
	DefaultRows         = 20
	DefaultSaveInterval = 10
	DefaultRowDelay     = 2 * time.Second
	DefaultScraperURL   = "https://realtime.oxylabs.io/v1/queries"
	DefaultJournalDir   = "journal"
)

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = DefaultTimeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = DefaultUserAgent
	}
	if c.Bibliographic.Source == "" {
		c.Bibliographic.Source = "crossref"
	}
	if c.Bibliographic.Rows <= 0 {
		c.Bibliographic.Rows = DefaultRows
	}
	if c.Profile.ScraperURL == "" {
		c.Profile.ScraperURL = DefaultScraperURL
	}
	if c.Enrich.Strategy == "" {
		c.Enrich.Strategy = StrategyScored
	}
	if c.Enrich.SaveInterval <= 0 {
		c.Enrich.SaveInterval = DefaultSaveInterval
	}
	if c.Enrich.RowDelay < 0 {
		c.Enrich.RowDelay = 0
	}
	defaults := DefaultRosterColumns()
	cols := &c.Enrich.Columns
	if cols.Name == "" {
		cols.Name = defaults.Name
	}
	if cols.Year == "" {
		cols.Year = defaults.Year
	}
	if cols.Institution == "" {
		cols.Institution = defaults.Institution
	}
	if cols.Profile == "" {
		cols.Profile = defaults.Profile
	}
	if cols.DOI == "" {
		cols.DOI = defaults.DOI
	}
	if cols.Status == "" {
		cols.Status = defaults.Status
	}
	if c.JournalDir == "" {
		c.JournalDir = DefaultJournalDir
	}
	return c
}
