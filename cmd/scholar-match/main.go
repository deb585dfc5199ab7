// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-match CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-match/internal/logging"
	"github.com/pdiddy/scholar-match/internal/secrets"
	"github.com/pdiddy/scholar-match/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from .env and .secrets/ at startup.
	loadedSecrets map[string]string

	// logger is built from the persistent --log-* flags before any command runs.
	logger = zap.NewNop()
)

// secretDefault returns fallback if it is set, or the secret value for key otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

// rootCmd is the base command for the scholar-match CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-match",
	Short: "Link researchers in a roster to their Scholar profile or publications",
	Long: `scholar-match enriches a researcher roster (xlsx or csv). For every row it
looks for a Google Scholar citations profile; when none is found it searches
bibliographic metadata (Crossref, OpenAlex, Semantic Scholar) for the researcher's publications
and records the best DOIs with a match status.

Use enrich for the batch run, match and profile for one-off lookups, and
report to inspect the decision journal a run leaves behind.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log, err := logging.New(viper.GetString("log.mode"), viper.GetString("log.level"))
		if err != nil {
			return err
		}
		logger = log

		envFile, _ := cmd.Flags().GetString("env-file")
		secretsDir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(envFile, secretsDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./scholar-match.yaml or ~/.config/scholar-match/config.yaml)")
	pf.String("env-file", secrets.DefaultEnvFile, "dotenv file with service credentials")
	pf.String("secrets-dir", secrets.DefaultSecretsDir, "directory of one-file-per-key credentials")
	pf.String("log-mode", "dev", "log encoding: dev (console) or prod (JSON)")
	pf.String("log-level", "info", "log level: debug, info, warn or error")

	_ = viper.BindPFlag("log.mode", pf.Lookup("log-mode"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-match")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-match"))
		}
	}

	setDefaults()

	viper.SetEnvPrefix("SCHOLAR_MATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so viper resolves environment
// overrides for them during Unmarshal.
func setDefaults() {
	cols := types.DefaultRosterColumns()

	viper.SetDefault("http.timeout", types.DefaultTimeout)
	viper.SetDefault("http.user_agent", types.DefaultUserAgent)
	viper.SetDefault("http.max_retries", 0)

	viper.SetDefault("bibliographic.source", "crossref")
	viper.SetDefault("bibliographic.mailto", "")
	viper.SetDefault("bibliographic.api_key", "")
	viper.SetDefault("bibliographic.rows", types.DefaultRows)

	viper.SetDefault("profile.enabled", true)
	viper.SetDefault("profile.scraper_url", types.DefaultScraperURL)
	viper.SetDefault("profile.username", "")
	viper.SetDefault("profile.password", "")
	viper.SetDefault("profile.proxy_url", "")
	viper.SetDefault("profile.insecure_tls", false)
	viper.SetDefault("profile.strict", false)

	viper.SetDefault("enrich.strategy", string(types.StrategyScored))
	viper.SetDefault("enrich.save_interval", types.DefaultSaveInterval)
	viper.SetDefault("enrich.row_delay", types.DefaultRowDelay)
	viper.SetDefault("enrich.limit", 0)
	viper.SetDefault("enrich.skip_profile", false)
	viper.SetDefault("enrich.columns.name", cols.Name)
	viper.SetDefault("enrich.columns.year", cols.Year)
	viper.SetDefault("enrich.columns.institution", cols.Institution)
	viper.SetDefault("enrich.columns.profile", cols.Profile)
	viper.SetDefault("enrich.columns.doi", cols.DOI)
	viper.SetDefault("enrich.columns.status", cols.Status)

	viper.SetDefault("journal_dir", types.DefaultJournalDir)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
