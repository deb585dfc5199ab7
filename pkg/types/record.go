// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for scholar-match: the
// researcher identity being searched, the bibliographic and web search
// results returned by external services, and the match decisions written
// back into the roster.
package types

// AuthorEntry is one author of a bibliographic record as returned by the
// metadata service. Given and Family are the structured name parts; Literal
// is the unstructured fallback some records carry instead.
type AuthorEntry struct {
	Given   string `json:"given,omitempty" yaml:"given,omitempty"`
	Family  string `json:"family,omitempty" yaml:"family,omitempty"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`

	// Affiliations holds raw institution strings attached to this author.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}

// BibliographicRecord is one candidate publication returned by a metadata
// search for an author name.
type BibliographicRecord struct {
	// DOI is the bare identifier (e.g. "10.1000/xyz"). Records without a
	// DOI are never selected.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Authors lists the record's authors in source order.
	Authors []AuthorEntry `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Publisher is the raw publisher string.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// PublicationYear is taken from the first populated of issued,
	// published-print and published-online. Zero when unknown.
	PublicationYear int `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`

	// CreatedYear comes from the record's creation timestamp. Zero when unknown.
	CreatedYear int `json:"created_year,omitempty" yaml:"created_year,omitempty"`

	// RelevanceScore is the search service's own relevance score.
	RelevanceScore float64 `json:"relevance_score,omitempty" yaml:"relevance_score,omitempty"`
}

// DOIURL returns the resolvable https://doi.org/ form of the record's DOI,
// or "" when the record has none.
func (r BibliographicRecord) DOIURL() string {
	if r.DOI == "" {
		return ""
	}
	return DOIBase + r.DOI
}

// DOIBase is the resolver prefix for DOI links written into the roster.
const DOIBase = "https://doi.org/"
