// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-match/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-YAML schema so that
// candidate lists can be loaded into Pandoc and reference managers.
type CSLItem struct {
	ID        string    `yaml:"id"`
	Type      string    `yaml:"type"`
	Author    []CSLName `yaml:"author,omitempty"`
	Publisher string    `yaml:"publisher,omitempty"`
	Issued    *CSLDate  `yaml:"issued,omitempty"`
	DOI       string    `yaml:"DOI,omitempty"`
	URL       string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes records as a CSL-YAML list to w. Records without a DOI
// are omitted since they cannot be cited back.
func FormatCSL(records []types.BibliographicRecord, w io.Writer) error {
	items := make([]CSLItem, 0, len(records))
	for _, r := range records {
		if r.DOI == "" {
			continue
		}
		items = append(items, toCSLItem(r))
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(r types.BibliographicRecord) CSLItem {
	item := CSLItem{
		ID:        r.DOI,
		Type:      "article-journal",
		Publisher: r.Publisher,
		DOI:       r.DOI,
		URL:       r.DOIURL(),
	}

	for _, a := range r.Authors {
		name := CSLName{Family: a.Family, Given: a.Given}
		if name.Family == "" && name.Given == "" {
			name.Literal = a.Literal
		}
		item.Author = append(item.Author, name)
	}

	if r.PublicationYear > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{r.PublicationYear}}}
	}
	return item
}
