// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-match/internal/httputil"
	"github.com/pdiddy/scholar-match/internal/logging"
	"github.com/pdiddy/scholar-match/internal/search"
	"github.com/pdiddy/scholar-match/internal/secrets"
	"github.com/pdiddy/scholar-match/pkg/types"
)

// unblockHost is the Web Unblocker proxy endpoint used for Scholar lookups.
const unblockHost = "unblock.oxylabs.io:60000"

// loadConfig resolves the run configuration: config file and environment
// through viper, then command flags, then credentials from loaded secrets.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		s, _ := flags.GetString("strategy")
		cfg.Enrich.Strategy = types.Strategy(s)
	}
	if flags.Changed("source") {
		cfg.Bibliographic.Source, _ = flags.GetString("source")
	}
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("strict") {
		cfg.Profile.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("journal-dir") {
		cfg.JournalDir, _ = flags.GetString("journal-dir")
	}

	cfg.Bibliographic.Mailto = secretDefault(secrets.CrossrefMailto, cfg.Bibliographic.Mailto)
	cfg.Bibliographic.APIKey = secretDefault(secrets.SemanticScholarKey, cfg.Bibliographic.APIKey)
	cfg.Profile.Username = secretDefault(secrets.OxylabsUsername, cfg.Profile.Username)
	cfg.Profile.Password = secretDefault(secrets.OxylabsPassword, cfg.Profile.Password)
	if cfg.Profile.ProxyURL == "" {
		cfg.Profile.ProxyURL = search.UnblockProxyURL(
			loadedSecrets[secrets.WebUnblockUsername],
			loadedSecrets[secrets.WebUnblockPassword],
			unblockHost,
		)
		if cfg.Profile.ProxyURL != "" {
			// The unblocking proxy re-signs TLS traffic.
			cfg.Profile.InsecureTLS = true
		}
	}

	cfg = cfg.WithDefaults()
	if !cfg.Enrich.Strategy.Valid() {
		return cfg, fmt.Errorf("unknown strategy %q: use %s or %s", cfg.Enrich.Strategy, types.StrategyTiered, types.StrategyScored)
	}
	return cfg, nil
}

// newBibliographicSource builds the metadata client for cfg.
func newBibliographicSource(cfg types.Config, log *zap.Logger) (search.BibliographicSource, error) {
	client, err := httputil.NewClient(httputil.ClientOptions{Timeout: cfg.HTTP.Timeout})
	if err != nil {
		return nil, err
	}
	return search.NewBibliographicSource(cfg, client, log)
}

// newProfileSource builds the Scholar client for cfg. It returns nil when
// profile lookups are disabled or no crawler credentials are available.
func newProfileSource(cfg types.Config, log *zap.Logger) (search.ProfileSource, error) {
	if !cfg.Profile.Enabled {
		return nil, nil
	}
	if cfg.Profile.Username == "" {
		log.Warn("profile lookups disabled: no crawler credentials",
			zap.String("key", secrets.OxylabsUsername))
		return nil, nil
	}

	client, err := httputil.NewClient(httputil.ClientOptions{
		Timeout:     cfg.HTTP.Timeout,
		ProxyURL:    cfg.Profile.ProxyURL,
		InsecureTLS: cfg.Profile.InsecureTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("building Scholar client: %w", err)
	}
	log.Debug("profile lookups enabled",
		zap.String("endpoint", cfg.Profile.ScraperURL),
		zap.String("user", logging.Redact(cfg.Profile.Username)),
		zap.Bool("proxy", cfg.Profile.ProxyURL != ""),
	)
	return &search.ScholarSource{
		Client:   client,
		Endpoint: cfg.Profile.ScraperURL,
		Username: cfg.Profile.Username,
		Password: cfg.Profile.Password,
		HTTP:     cfg.HTTP,
		Log:      log,
	}, nil
}
