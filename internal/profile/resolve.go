// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile decides whether web search results for a researcher's
// name contain a Google Scholar citations profile and extracts its link.
package profile

import (
	"strings"

	"github.com/pdiddy/scholar-match/internal/normalize"
	"github.com/pdiddy/scholar-match/pkg/types"
)

const (
	// ProfilePattern marks a Scholar citations profile URL.
	ProfilePattern = "scholar.google.com/citations?"

	// profilePhrase introduces the "User profiles for <name>" result block.
	profilePhrase = "user profiles for"
)

// Resolver finds a profile link in search results.
type Resolver struct {
	// Strict also accepts the phrase in the snippet and requires the
	// researcher's name (or its first token) in the title or snippet.
	Strict bool
}

// Resolve returns the profile for name found in entries. Candidate
// profile entries are tried first: their primary, inline and related
// links are collected in order and the first link matching ProfilePattern
// wins. Failing that, the primary link of every entry is checked. The
// boolean is false when nothing matched, which is an expected outcome.
func (r Resolver) Resolve(name string, entries []types.SearchEntry) (types.ScholarProfileResult, bool) {
	for _, e := range entries {
		if !r.isCandidate(name, e) {
			continue
		}
		for _, link := range entryLinks(e) {
			if IsProfileURL(link) {
				return types.ScholarProfileResult{URL: link, Entry: e}, true
			}
		}
	}

	for _, e := range entries {
		if IsProfileURL(e.Link) {
			return types.ScholarProfileResult{URL: e.Link, Entry: e}, true
		}
	}
	return types.ScholarProfileResult{}, false
}

// IsProfileURL reports whether link points at a Scholar citations profile.
func IsProfileURL(link string) bool {
	return strings.Contains(link, ProfilePattern)
}

func (r Resolver) isCandidate(name string, e types.SearchEntry) bool {
	title := normalize.Fold(e.Title)
	if !r.Strict {
		return strings.Contains(title, profilePhrase)
	}

	snippet := normalize.Fold(e.Snippet)
	if !strings.Contains(title, profilePhrase) && !strings.Contains(snippet, profilePhrase) {
		return false
	}

	full := strings.Join(strings.Fields(normalize.Fold(name)), " ")
	if full == "" {
		return false
	}
	if strings.Contains(title, full) || strings.Contains(snippet, full) {
		return true
	}
	first := strings.Fields(full)[0]
	return strings.Contains(title, first) || strings.Contains(snippet, first)
}

// entryLinks returns the entry's primary link followed by its inline and
// related links, without duplicates or blanks.
func entryLinks(e types.SearchEntry) []string {
	seen := make(map[string]bool)
	var links []string
	add := func(l string) {
		if l == "" || seen[l] {
			return
		}
		seen[l] = true
		links = append(links, l)
	}

	add(e.Link)
	for _, l := range e.InlineLinks {
		add(l.URL)
	}
	for _, l := range e.RelatedURLs {
		add(l.URL)
	}
	return links
}
