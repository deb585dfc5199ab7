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

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

// openAlexMaxPerPage is the API's page size limit.
const openAlexMaxPerPage = 200

// OpenAlexSource searches OpenAlex works for an author name.
type OpenAlexSource struct {
	Client *http.Client
	// Email is sent as mailto parameter for polite pool access.
	Email string
	Rows  int
	HTTP  types.HTTPConfig
	Log   *zap.Logger
}

// Name returns the source identifier.
func (s *OpenAlexSource) Name() string { return "openalex" }

// SearchAuthor queries /works?search=<name> and maps authorships onto
// authors. OpenAlex only carries display names, so each is split into a
// leading given name and the remaining family part, keeping the full
// string as the literal.
func (s *OpenAlexSource) SearchAuthor(ctx context.Context, name string) ([]types.BibliographicRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty author name")
	}

	perPage := s.Rows
	if perPage <= 0 {
		perPage = types.DefaultRows
	}
	if perPage > openAlexMaxPerPage {
		perPage = openAlexMaxPerPage
	}

	params := url.Values{
		"search":   {name},
		"per_page": {strconv.Itoa(perPage)},
		"page":     {"1"},
	}
	if s.Email != "" {
		params.Set("mailto", s.Email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openAlexSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var oar openAlexResponse
	if err := doJSON(ctx, s.Client, req, s.HTTP, s.Log, s.Name(), &oar); err != nil {
		return nil, err
	}

	records := make([]types.BibliographicRecord, 0, len(oar.Results))
	for _, work := range oar.Results {
		records = append(records, work.record())
	}
	return records, nil
}

func (w openAlexWork) record() types.BibliographicRecord {
	rec := types.BibliographicRecord{
		DOI:             NormalizeDOI(w.DOI),
		PublicationYear: w.PublicationYear,
		CreatedYear:     dateYear(w.CreatedDate),
		RelevanceScore:  w.RelevanceScore,
	}
	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
		rec.Publisher = w.PrimaryLocation.Source.HostOrganizationName
	}

	for _, as := range w.Authorships {
		display := as.Author.DisplayName
		if display == "" {
			display = as.RawAuthorName
		}
		given, family := splitDisplayName(display)
		entry := types.AuthorEntry{Given: given, Family: family, Literal: display}
		for _, inst := range as.Institutions {
			if inst.DisplayName != "" {
				entry.Affiliations = append(entry.Affiliations, inst.DisplayName)
			}
		}
		if len(entry.Affiliations) == 0 {
			entry.Affiliations = append(entry.Affiliations, as.RawAffiliationStrings...)
		}
		rec.Authors = append(rec.Authors, entry)
	}
	return rec
}

// splitDisplayName splits "Juan Pérez Gómez" into "Juan" and "Pérez Gómez".
func splitDisplayName(display string) (given, family string) {
	fields := strings.Fields(display)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return "", fields[0]
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

// dateYear parses the year of an ISO date ("2016-06-24"), returning 0 when
// it has none.
func dateYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	DOI             string               `json:"doi"`
	PublicationYear int                  `json:"publication_year"`
	CreatedDate     string               `json:"created_date"`
	RelevanceScore  float64              `json:"relevance_score"`
	Authorships     []openAlexAuthorship `json:"authorships"`
	PrimaryLocation *openAlexLocation    `json:"primary_location"`
}

type openAlexAuthorship struct {
	Author                openAlexAuthor        `json:"author"`
	RawAuthorName         string                `json:"raw_author_name"`
	Institutions          []openAlexInstitution `json:"institutions"`
	RawAffiliationStrings []string              `json:"raw_affiliation_strings"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexInstitution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexLocation struct {
	Source *openAlexHostVenue `json:"source"`
}

type openAlexHostVenue struct {
	DisplayName          string `json:"display_name"`
	HostOrganizationName string `json:"host_organization_name"`
}
