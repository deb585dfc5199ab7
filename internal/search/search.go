// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search talks to the external services queried for a researcher:
// bibliographic metadata APIs (Crossref, OpenAlex, Semantic Scholar) that
// return candidate
// publications, and a realtime crawler that runs a Scholar web search for
// profile lookups.
//
// Clients return (items, error). Every failure caused by the remote side is
// wrapped with ErrTransport so callers can tell a recoverable miss from a
// programming error.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/scholar-match/internal/httputil"
	"github.com/pdiddy/scholar-match/pkg/types"
)

// ErrTransport marks a failed call to an external service: non-200 status,
// timeout, network error or an undecodable body.
var ErrTransport = errors.New("transport failure")

// BibliographicSource searches a metadata service for publications by
// author name.
type BibliographicSource interface {
	Name() string
	SearchAuthor(ctx context.Context, name string) ([]types.BibliographicRecord, error)
}

// ProfileSource runs a web search for a person's name and returns the
// parsed result entries.
type ProfileSource interface {
	SearchProfiles(ctx context.Context, name string) ([]types.SearchEntry, error)
}

// transportErr wraps err with ErrTransport and the service name.
func transportErr(service string, err error) error {
	return fmt.Errorf("%s: %w: %w", service, ErrTransport, err)
}

// statusErr reports a non-200 response.
func statusErr(service string, status int) error {
	return fmt.Errorf("%s: %w: HTTP %d", service, ErrTransport, status)
}

// doJSON sends req under the per-call deadline, retrying throttled
// responses, and decodes a 200 body into out.
func doJSON(ctx context.Context, client *http.Client, req *http.Request, cfg types.HTTPConfig, log *zap.Logger, service string, out any) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries, log)
	if err != nil {
		return transportErr(service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusErr(service, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportErr(service, fmt.Errorf("parsing response: %w", err))
	}
	return nil
}

// doiPattern matches bare DOIs: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}(\.\d+)*/\S+$`)

// NormalizeDOI strips resolver prefixes from a DOI and returns "" when the
// remainder is not a DOI.
func NormalizeDOI(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = s[len(prefix):]
			break
		}
	}
	if !doiPattern.MatchString(s) {
		return ""
	}
	return s
}

// Chain queries several bibliographic sources in order and concatenates
// their records, dropping repeated DOIs. A source that fails is logged and
// skipped; Chain only fails when every source failed.
type Chain struct {
	Sources []BibliographicSource
	Log     *zap.Logger
}

// Name returns the joined names of the chained sources.
func (c *Chain) Name() string {
	names := make([]string, len(c.Sources))
	for i, s := range c.Sources {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// SearchAuthor queries each source sequentially.
func (c *Chain) SearchAuthor(ctx context.Context, name string) ([]types.BibliographicRecord, error) {
	if len(c.Sources) == 0 {
		return nil, fmt.Errorf("no bibliographic sources configured")
	}
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}

	seen := make(map[string]bool)
	var all []types.BibliographicRecord
	var errs []error
	for _, src := range c.Sources {
		records, err := src.SearchAuthor(ctx, name)
		if err != nil {
			log.Warn("source failed", zap.String("source", src.Name()), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		for _, r := range records {
			key := strings.ToLower(r.DOI)
			if key != "" && seen[key] {
				continue
			}
			if key != "" {
				seen[key] = true
			}
			all = append(all, r)
		}
	}
	if len(errs) == len(c.Sources) {
		return nil, errors.Join(errs...)
	}
	return all, nil
}

// NewBibliographicSource returns the source named by cfg.Source:
// "crossref", "openalex", "semanticscholar" or "all" (Crossref, OpenAlex,
// then Semantic Scholar).
func NewBibliographicSource(cfg types.Config, client *http.Client, log *zap.Logger) (BibliographicSource, error) {
	crossref := &CrossrefSource{Client: client, Mailto: cfg.Bibliographic.Mailto, Rows: cfg.Bibliographic.Rows, HTTP: cfg.HTTP, Log: log}
	openalex := &OpenAlexSource{Client: client, Email: cfg.Bibliographic.Mailto, Rows: cfg.Bibliographic.Rows, HTTP: cfg.HTTP, Log: log}
	semantic := &SemanticScholarSource{Client: client, APIKey: cfg.Bibliographic.APIKey, Rows: cfg.Bibliographic.Rows, HTTP: cfg.HTTP, Log: log}

	switch strings.ToLower(cfg.Bibliographic.Source) {
	case "", "crossref":
		return crossref, nil
	case "openalex":
		return openalex, nil
	case "semanticscholar":
		return semantic, nil
	case "all":
		return &Chain{Sources: []BibliographicSource{crossref, openalex, semantic}, Log: log}, nil
	default:
		return nil, fmt.Errorf("unknown bibliographic source %q: use crossref, openalex, semanticscholar or all", cfg.Bibliographic.Source)
	}
}
