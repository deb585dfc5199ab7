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

// semanticAPIBase is the Semantic Scholar Graph API paper search endpoint.
// Declared as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const (
	semanticFields   = "title,authors,externalIds,year,publicationDate,venue"
	semanticMaxLimit = 100
)

// SemanticScholarSource searches Semantic Scholar papers for an author name.
// The Graph API carries no per-author affiliations in search results, so
// records from this source never satisfy an institution check on their own.
type SemanticScholarSource struct {
	Client *http.Client
	// APIKey is optional; unauthenticated requests share a lower rate limit.
	APIKey string
	Rows   int
	HTTP   types.HTTPConfig
	Log    *zap.Logger
}

// Name returns the source identifier.
func (s *SemanticScholarSource) Name() string { return "semanticscholar" }

// SearchAuthor queries /paper/search?query=<name>. Results carry no
// relevance score, so one is assigned by position: the first result gets
// 1.0 and the last 0.1.
func (s *SemanticScholarSource) SearchAuthor(ctx context.Context, name string) ([]types.BibliographicRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty author name")
	}

	limit := s.Rows
	if limit <= 0 {
		limit = types.DefaultRows
	}
	if limit > semanticMaxLimit {
		limit = semanticMaxLimit
	}

	params := url.Values{
		"query":  {name},
		"limit":  {strconv.Itoa(limit)},
		"fields": {semanticFields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	var sr semanticResponse
	if err := doJSON(ctx, s.Client, req, s.HTTP, s.Log, s.Name(), &sr); err != nil {
		return nil, err
	}

	total := len(sr.Data)
	records := make([]types.BibliographicRecord, 0, total)
	for i, p := range sr.Data {
		rec := p.record()
		rec.RelevanceScore = 1.0
		if total > 1 {
			rec.RelevanceScore = 1.0 - float64(i)/float64(total-1)*0.9
		}
		records = append(records, rec)
	}
	return records, nil
}

func (p semanticPaper) record() types.BibliographicRecord {
	rec := types.BibliographicRecord{
		DOI:             NormalizeDOI(p.ExternalIDs.DOI),
		Publisher:       p.Venue,
		PublicationYear: p.Year,
		CreatedYear:     dateYear(p.PublicationDate),
	}
	if rec.CreatedYear == 0 {
		rec.CreatedYear = p.Year
	}
	for _, a := range p.Authors {
		given, family := splitDisplayName(a.Name)
		rec.Authors = append(rec.Authors, types.AuthorEntry{Given: given, Family: family, Literal: a.Name})
	}
	return rec
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string              `json:"paperId"`
	Title           string              `json:"title"`
	Year            int                 `json:"year"`
	PublicationDate string              `json:"publicationDate"`
	Venue           string              `json:"venue"`
	Authors         []semanticAuthor    `json:"authors"`
	ExternalIDs     semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	CorpusID int    `json:"CorpusId"`
}
