// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-match/internal/profile"
	"github.com/pdiddy/scholar-match/internal/secrets"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Look up the Scholar citations profile of one researcher",
	Long: `Profile runs a Google Scholar search for the researcher's name through the
realtime crawler and prints the citations profile link when the results
contain one.`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().String("name", "", "researcher full name")
	profileCmd.Flags().Bool("strict", false, "require the researcher's name in the profile result")
	profileCmd.Flags().Duration("timeout", 0, "per-call HTTP timeout (default 20s)")
	profileCmd.Flags().Bool("json", false, "output the profile result as JSON")
	_ = profileCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Profile.Enabled = true

	src, err := newProfileSource(cfg, logger)
	if err != nil {
		return err
	}
	if src == nil {
		return fmt.Errorf("no crawler credentials: set %s and %s", secrets.OxylabsUsername, secrets.OxylabsPassword)
	}

	name, _ := cmd.Flags().GetString("name")
	entries, err := src.SearchProfiles(context.Background(), name)
	if err != nil {
		return err
	}

	result, ok := profile.Resolver{Strict: cfg.Profile.Strict}.Resolve(name, entries)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if !ok {
			return enc.Encode(nil)
		}
		return enc.Encode(result)
	}

	if !ok {
		fmt.Printf("No Scholar profile found for %s (%d search results).\n", name, len(entries))
		return nil
	}
	fmt.Println(result.URL)
	return nil
}
