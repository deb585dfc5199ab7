// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/scholar-match/pkg/types"
)

// crossrefWorksBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefWorksBase = "https://api.crossref.org/works"

// CrossrefSource searches Crossref works by author name, most relevant
// first.
type CrossrefSource struct {
	Client *http.Client
	// Mailto is sent for polite pool access.
	Mailto string
	Rows   int
	HTTP   types.HTTPConfig
	Log    *zap.Logger
}

// Name returns the source identifier.
func (s *CrossrefSource) Name() string { return "crossref" }

// SearchAuthor queries /works?query.author=<name>&sort=score&order=desc.
func (s *CrossrefSource) SearchAuthor(ctx context.Context, name string) ([]types.BibliographicRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty author name")
	}

	params := url.Values{
		"query.author": {name},
		"sort":         {"score"},
		"order":        {"desc"},
	}
	if s.Rows > 0 {
		params.Set("rows", strconv.Itoa(s.Rows))
	}
	if s.Mailto != "" {
		params.Set("mailto", s.Mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, crossrefWorksBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var cr crossrefResponse
	if err := doJSON(ctx, s.Client, req, s.HTTP, s.Log, s.Name(), &cr); err != nil {
		return nil, err
	}

	records := make([]types.BibliographicRecord, 0, len(cr.Message.Items))
	for _, item := range cr.Message.Items {
		records = append(records, item.record())
	}
	return records, nil
}

func (w crossrefWork) record() types.BibliographicRecord {
	rec := types.BibliographicRecord{
		DOI:             NormalizeDOI(w.DOI),
		Publisher:       w.Publisher,
		PublicationYear: firstYear(w.Issued, w.PublishedPrint, w.PublishedOnline),
		CreatedYear:     w.Created.year(),
		RelevanceScore:  w.Score,
	}
	for _, a := range w.Author {
		entry := types.AuthorEntry{Given: a.Given, Family: a.Family, Literal: a.Name}
		for _, aff := range a.Affiliation {
			if aff.Name != "" {
				entry.Affiliations = append(entry.Affiliations, aff.Name)
			}
		}
		rec.Authors = append(rec.Authors, entry)
	}
	return rec
}

// firstYear returns the year of the first date that carries one.
func firstYear(dates ...crossrefDate) int {
	for _, d := range dates {
		if y := d.year(); y > 0 {
			return y
		}
	}
	return 0
}

// year returns the leading year of date-parts, e.g. [[2020, 7, 15]]. Partial
// dates arrive as [[null]] and decode to 0.
func (d crossrefDate) year() int {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Status  string          `json:"status"`
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	TotalResults int            `json:"total-results"`
	Items        []crossrefWork `json:"items"`
}

type crossrefWork struct {
	DOI             string           `json:"DOI"`
	Title           []string         `json:"title"`
	Publisher       string           `json:"publisher"`
	Author          []crossrefAuthor `json:"author"`
	Issued          crossrefDate     `json:"issued"`
	PublishedPrint  crossrefDate     `json:"published-print"`
	PublishedOnline crossrefDate     `json:"published-online"`
	Created         crossrefDate     `json:"created"`
	Score           float64          `json:"score"`
}

type crossrefAuthor struct {
	Given       string                `json:"given"`
	Family      string                `json:"family"`
	Name        string                `json:"name"`
	Affiliation []crossrefAffiliation `json:"affiliation"`
}

type crossrefAffiliation struct {
	Name string `json:"name"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}
