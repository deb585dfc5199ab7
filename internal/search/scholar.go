// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/scholar-match/pkg/types"
)

// scholarSearchBase is the Scholar web search the crawler is asked to fetch.
var scholarSearchBase = "https://scholar.google.com/scholar"

// ScholarSource runs a Scholar web search through a realtime crawler API
// and returns the crawler's parsed result entries.
type ScholarSource struct {
	// Client should carry the unblocking proxy and TLS settings when the
	// crawler is reached through one (see httputil.NewClient).
	Client   *http.Client
	Endpoint string
	Username string
	Password string
	HTTP     types.HTTPConfig
	Log      *zap.Logger
}

// SearchProfiles posts {"source":"google","url":...,"parse":true} for the
// name's Scholar query and flattens the parsed results.
func (s *ScholarSource) SearchProfiles(ctx context.Context, name string) ([]types.SearchEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty name")
	}
	if s.Endpoint == "" {
		return nil, fmt.Errorf("no crawler endpoint configured")
	}

	body, err := json.Marshal(crawlerQuery{
		Source: "google",
		URL:    ScholarQueryURL(name),
		Parse:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding crawler query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Username != "" || s.Password != "" {
		req.SetBasicAuth(s.Username, s.Password)
	}

	var cr crawlerResponse
	if err := doJSON(ctx, s.Client, req, s.HTTP, s.Log, "scholar", &cr); err != nil {
		return nil, err
	}

	entries := make([]types.SearchEntry, 0, len(cr.Data.Results))
	for _, r := range cr.Data.Results {
		entries = append(entries, r.entry())
	}
	return entries, nil
}

// ScholarQueryURL builds the Scholar search URL for name.
func ScholarQueryURL(name string) string {
	return scholarSearchBase + "?" + url.Values{"q": {name}}.Encode()
}

// UnblockProxyURL returns the authenticated proxy URL for host, or "" when
// no credentials are set.
func UnblockProxyURL(user, pass, host string) string {
	if user == "" || host == "" {
		return ""
	}
	u := url.URL{Scheme: "http", User: url.UserPassword(user, pass), Host: host}
	return u.String()
}

func (r crawlerResult) entry() types.SearchEntry {
	e := types.SearchEntry{Title: r.Title, Snippet: r.Snippet, Link: r.Link}
	for _, l := range r.InlineLinks {
		e.InlineLinks = append(e.InlineLinks, types.Link{Title: l.Title, URL: l.Link})
	}
	for _, l := range r.RelatedURLs {
		e.RelatedURLs = append(e.RelatedURLs, types.Link{Title: l.Title, URL: l.Link})
	}
	return e
}

// Crawler API JSON structures.
type crawlerQuery struct {
	Source string `json:"source"`
	URL    string `json:"url"`
	Parse  bool   `json:"parse"`
}

type crawlerResponse struct {
	Data crawlerData `json:"data"`
}

type crawlerData struct {
	Results []crawlerResult `json:"results"`
}

type crawlerResult struct {
	Title       string        `json:"title"`
	Snippet     string        `json:"snippet"`
	Link        string        `json:"link"`
	InlineLinks []crawlerLink `json:"inlineLinks"`
	RelatedURLs []crawlerLink `json:"relatedUrls"`
}

type crawlerLink struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}
