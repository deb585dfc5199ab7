// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Export is the full journal content written by ExportYAML and ExportJSON.
type Export struct {
	Summary   Summary   `json:"summary" yaml:"summary"`
	Decisions []Entry   `json:"decisions" yaml:"decisions"`
	Failures  []Failure `json:"failures" yaml:"failures"`
}

// ExportYAML writes the journal to <dir>/export.yaml and returns the path.
func (j *Journal) ExportYAML(ctx context.Context) (string, error) {
	exp, err := j.export(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(j.dir, "export.yaml")
	data, err := yaml.Marshal(exp)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the journal to <dir>/export.json and returns the path.
func (j *Journal) ExportJSON(ctx context.Context) (string, error) {
	exp, err := j.export(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(j.dir, "export.json")
	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (j *Journal) export(ctx context.Context) (Export, error) {
	summary, err := j.Summary(ctx)
	if err != nil {
		return Export{}, err
	}
	decisions, err := j.Decisions(ctx, QueryOptions{})
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	failures, err := j.Failures(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	return Export{Summary: summary, Decisions: decisions, Failures: failures}, nil
}
