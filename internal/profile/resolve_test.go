// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/scholar-match/pkg/types"
)

const juanProfile = "https://scholar.google.com/citations?user=AbC123&hl=es"

func TestResolve_UserProfilesTitle(t *testing.T) {
	entries := []types.SearchEntry{
		{Title: "Some paper", Link: "https://example.org/paper"},
		{Title: "User profiles for Juan Pérez Gómez", Link: juanProfile},
	}

	got, ok := Resolver{}.Resolve("Juan Pérez Gómez", entries)
	assert.True(t, ok)
	assert.Equal(t, juanProfile, got.URL)
	assert.Equal(t, "User profiles for Juan Pérez Gómez", got.Entry.Title)
}

func TestResolve_NestedLinks(t *testing.T) {
	entries := []types.SearchEntry{
		{
			Title: "USER PROFILES FOR juan perez",
			Link:  "https://scholar.google.com/scholar?q=juan+perez",
			InlineLinks: []types.Link{
				{Title: "dup", URL: "https://scholar.google.com/scholar?q=juan+perez"},
				{Title: "Juan Pérez", URL: juanProfile},
			},
			RelatedURLs: []types.Link{{URL: "https://scholar.google.com/citations?user=Other"}},
		},
	}

	got, ok := Resolver{}.Resolve("Juan Pérez", entries)
	assert.True(t, ok)
	assert.Equal(t, juanProfile, got.URL)
}

func TestResolve_RelatedURLs(t *testing.T) {
	entries := []types.SearchEntry{{
		Title:       "User profiles for Juan Pérez",
		RelatedURLs: []types.Link{{URL: juanProfile}},
	}}
	got, ok := Resolver{}.Resolve("Juan Pérez", entries)
	assert.True(t, ok)
	assert.Equal(t, juanProfile, got.URL)
}

func TestResolve_FallbackToPrimaryLinks(t *testing.T) {
	entries := []types.SearchEntry{
		{Title: "User profiles for Juan Pérez", Link: "https://scholar.google.com/scholar?q=x"},
		{Title: "Juan Pérez - Google Scholar", Link: juanProfile},
	}
	got, ok := Resolver{}.Resolve("Juan Pérez", entries)
	assert.True(t, ok)
	assert.Equal(t, juanProfile, got.URL)
	assert.Equal(t, "Juan Pérez - Google Scholar", got.Entry.Title)
}

func TestResolve_FallbackIgnoresNestedLinks(t *testing.T) {
	entries := []types.SearchEntry{{
		Title:       "A paper",
		Link:        "https://example.org",
		InlineLinks: []types.Link{{URL: juanProfile}},
	}}
	_, ok := Resolver{}.Resolve("Juan Pérez", entries)
	assert.False(t, ok)
}

func TestResolve_NothingFound(t *testing.T) {
	entries := []types.SearchEntry{
		{Title: "Juan Pérez Gómez - Wikipedia", Link: "https://es.wikipedia.org/wiki/Juan"},
		{Title: "Some paper", Link: "https://doi.org/10.1/x"},
	}
	_, ok := Resolver{}.Resolve("Juan Pérez Gómez", entries)
	assert.False(t, ok)

	_, ok = Resolver{}.Resolve("Juan Pérez Gómez", nil)
	assert.False(t, ok)
}

func TestResolve_Strict(t *testing.T) {
	other := types.SearchEntry{
		Title:       "User profiles for Maria Lopez",
		InlineLinks: []types.Link{{URL: "https://scholar.google.com/citations?user=Maria"}},
	}
	snippetOnly := types.SearchEntry{
		Title:       "Scholar results",
		Snippet:     "User profiles for Juan Pérez Gómez",
		InlineLinks: []types.Link{{URL: juanProfile}},
	}
	firstTokenOnly := types.SearchEntry{
		Title:       "User profiles for JUAN P. GOMEZ",
		InlineLinks: []types.Link{{URL: juanProfile}},
	}

	t.Run("other person rejected in strict mode", func(t *testing.T) {
		_, ok := Resolver{Strict: true}.Resolve("Juan Pérez Gómez", []types.SearchEntry{other})
		assert.False(t, ok)

		got, ok := Resolver{}.Resolve("Juan Pérez Gómez", []types.SearchEntry{other})
		assert.True(t, ok, "lenient mode trusts the title phrase")
		assert.Contains(t, got.URL, "Maria")
	})

	t.Run("snippet carries the phrase", func(t *testing.T) {
		got, ok := Resolver{Strict: true}.Resolve("Juan Pérez Gómez", []types.SearchEntry{snippetOnly})
		assert.True(t, ok)
		assert.Equal(t, juanProfile, got.URL)

		_, ok = Resolver{}.Resolve("Juan Pérez Gómez", []types.SearchEntry{snippetOnly})
		assert.False(t, ok)
	})

	t.Run("first token suffices", func(t *testing.T) {
		got, ok := Resolver{Strict: true}.Resolve("Juan Pérez Gómez", []types.SearchEntry{firstTokenOnly})
		assert.True(t, ok)
		assert.Equal(t, juanProfile, got.URL)
	})
}

func TestIsProfileURL(t *testing.T) {
	assert.True(t, IsProfileURL(juanProfile))
	assert.False(t, IsProfileURL("https://scholar.google.com/scholar?q=x"))
	assert.False(t, IsProfileURL(""))
}
