// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-match/pkg/types"
)

// fakeSource returns canned records or an error.
type fakeSource struct {
	name    string
	records []types.BibliographicRecord
	err     error
	calls   int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) SearchAuthor(_ context.Context, _ string) ([]types.BibliographicRecord, error) {
	f.calls++
	return f.records, f.err
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"10.1000/xyz", "10.1000/xyz"},
		{"https://doi.org/10.1000/xyz", "10.1000/xyz"},
		{"HTTPS://DOI.ORG/10.1000/xyz", "10.1000/xyz"},
		{"http://dx.doi.org/10.1145/1234567.1234568", "10.1145/1234567.1234568"},
		{"doi:10.1000/xyz", "10.1000/xyz"},
		{"  10.1000/xyz  ", "10.1000/xyz"},
		{"", ""},
		{"https://openalex.org/W123", ""},
		{"10.1/too-short-prefix", ""},
		{"10.1000.10/abc", "10.1000.10/abc"},
		{"https://doi.org/10.1000.10.5/abc", "10.1000.10.5/abc"},
		{"10.1000./abc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDOI(tt.in))
		})
	}
}

func TestChain_MergesInOrderAndDropsRepeatedDOIs(t *testing.T) {
	a := &fakeSource{name: "a", records: []types.BibliographicRecord{{DOI: "10.1000/one"}, {DOI: ""}}}
	b := &fakeSource{name: "b", records: []types.BibliographicRecord{{DOI: "10.1000/ONE"}, {DOI: "10.1000/two"}, {DOI: ""}}}

	c := &Chain{Sources: []BibliographicSource{a, b}}
	got, err := c.SearchAuthor(context.Background(), "Juan")
	require.NoError(t, err)

	assert.Equal(t, "a+b", c.Name())
	require.Len(t, got, 4)
	assert.Equal(t, "10.1000/one", got[0].DOI)
	assert.Equal(t, "", got[1].DOI)
	assert.Equal(t, "10.1000/two", got[2].DOI)
	assert.Equal(t, "", got[3].DOI)
}

func TestChain_ToleratesPartialFailure(t *testing.T) {
	bad := &fakeSource{name: "bad", err: fmt.Errorf("bad: %w", ErrTransport)}
	good := &fakeSource{name: "good", records: []types.BibliographicRecord{{DOI: "10.1000/one"}}}

	got, err := (&Chain{Sources: []BibliographicSource{bad, good}}).SearchAuthor(context.Background(), "Juan")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, good.calls)
}

func TestChain_AllFail(t *testing.T) {
	bad1 := &fakeSource{name: "bad1", err: fmt.Errorf("bad1: %w", ErrTransport)}
	bad2 := &fakeSource{name: "bad2", err: errors.New("boom")}

	_, err := (&Chain{Sources: []BibliographicSource{bad1, bad2}}).SearchAuthor(context.Background(), "Juan")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "boom")

	_, err = (&Chain{}).SearchAuthor(context.Background(), "Juan")
	assert.Error(t, err)
}

func TestNewBibliographicSource(t *testing.T) {
	cfg := types.Config{}.WithDefaults()

	src, err := NewBibliographicSource(cfg, http.DefaultClient, nil)
	require.NoError(t, err)
	assert.Equal(t, "crossref", src.Name())

	cfg.Bibliographic.Source = "OpenAlex"
	src, err = NewBibliographicSource(cfg, http.DefaultClient, nil)
	require.NoError(t, err)
	assert.Equal(t, "openalex", src.Name())

	cfg.Bibliographic.Source = "semanticscholar"
	src, err = NewBibliographicSource(cfg, http.DefaultClient, nil)
	require.NoError(t, err)
	assert.Equal(t, "semanticscholar", src.Name())

	cfg.Bibliographic.Source = "all"
	src, err = NewBibliographicSource(cfg, http.DefaultClient, nil)
	require.NoError(t, err)
	assert.Equal(t, "crossref+openalex+semanticscholar", src.Name())

	cfg.Bibliographic.Source = "pubmed"
	_, err = NewBibliographicSource(cfg, http.DefaultClient, nil)
	assert.Error(t, err)
}

// --- CSL export ---

func TestFormatCSL(t *testing.T) {
	records := []types.BibliographicRecord{
		{
			DOI:             "10.1000/xyz",
			Publisher:       "Elsevier BV",
			PublicationYear: 2016,
			Authors: []types.AuthorEntry{
				{Given: "Juan", Family: "Pérez-Gómez"},
				{Literal: "The Consortium"},
			},
		},
		{Publisher: "no doi"},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatCSL(records, &buf))

	var items []CSLItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "10.1000/xyz", item.ID)
	assert.Equal(t, "article-journal", item.Type)
	assert.Equal(t, "https://doi.org/10.1000/xyz", item.URL)
	assert.Equal(t, []CSLName{{Given: "Juan", Family: "Pérez-Gómez"}, {Literal: "The Consortium"}}, item.Author)
	require.NotNil(t, item.Issued)
	assert.Equal(t, [][]int{{2016}}, item.Issued.DateParts)
	assert.Contains(t, buf.String(), "DOI: 10.1000/xyz")
}

// --- lookup files ---

func TestLookupFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "juan.yaml")
	records := []types.BibliographicRecord{
		{DOI: "10.1000/xyz", PublicationYear: 2016, Authors: []types.AuthorEntry{{Given: "Juan", Family: "Pérez"}}},
		{Publisher: "no doi"},
	}
	params := LookupParams{Name: "Juan Pérez", Institution: "Universidad de Zaragoza", Year: 2015, Source: "crossref"}

	require.NoError(t, WriteLookupFile(path, params, records))

	lf, err := ReadLookupFile(path)
	require.NoError(t, err)
	assert.Equal(t, params, lf.Lookup)
	assert.Equal(t, records, lf.Records)
	assert.Equal(t, 2, lf.Summary.Total)
	assert.Equal(t, 1, lf.Summary.WithDOI)
	assert.False(t, lf.Summary.Timestamp.IsZero())
}

func TestReadLookupFileErrors(t *testing.T) {
	_, err := ReadLookupFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, WriteLookupFile(path, LookupParams{}, nil))
	_, err = ReadLookupFile(path)
	assert.ErrorContains(t, err, "no name")
}
