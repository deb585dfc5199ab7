// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-match/pkg/types"
)

// LookupFile is the on-disk representation of one author lookup and the
// records it returned. A saved lookup can be re-ranked later, for example
// under another strategy, without querying the service again.
type LookupFile struct {
	Lookup  LookupParams                `yaml:"lookup"`
	Records []types.BibliographicRecord `yaml:"records"`
	Summary LookupSummary               `yaml:"summary"`
}

// LookupParams stores the researcher identity that was searched.
type LookupParams struct {
	Name        string `yaml:"name"`
	Institution string `yaml:"institution,omitempty"`
	Year        int    `yaml:"year,omitempty"`
	Source      string `yaml:"source"`
}

// LookupSummary stores result statistics and a timestamp.
type LookupSummary struct {
	Total     int       `yaml:"total"`
	WithDOI   int       `yaml:"with_doi"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteLookupFile saves a lookup and its records to a YAML file.
func WriteLookupFile(path string, params LookupParams, records []types.BibliographicRecord) error {
	lf := LookupFile{
		Lookup:  params,
		Records: records,
		Summary: LookupSummary{
			Total:     len(records),
			Timestamp: time.Now(),
		},
	}
	for _, r := range records {
		if r.DOI != "" {
			lf.Summary.WithDOI++
		}
	}

	data, err := yaml.Marshal(&lf)
	if err != nil {
		return fmt.Errorf("marshaling lookup file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadLookupFile loads a previously saved lookup file from disk.
func ReadLookupFile(path string) (*LookupFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lookup file: %w", err)
	}
	var lf LookupFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lookup file: %w", err)
	}
	if lf.Lookup.Name == "" {
		return nil, fmt.Errorf("lookup file %s has no name", path)
	}
	return &lf, nil
}
