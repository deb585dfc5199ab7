// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Link is a nested link inside a web search result.
type Link struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	URL   string `json:"link" yaml:"link"`
}

// SearchEntry is one web search result for a person's name.
type SearchEntry struct {
	Title       string `json:"title" yaml:"title"`
	Snippet     string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	Link        string `json:"link,omitempty" yaml:"link,omitempty"`
	InlineLinks []Link `json:"inline_links,omitempty" yaml:"inline_links,omitempty"`
	RelatedURLs []Link `json:"related_urls,omitempty" yaml:"related_urls,omitempty"`
}

// ScholarProfileResult is a resolved Scholar citations profile and the
// search result it was extracted from.
type ScholarProfileResult struct {
	URL   string      `json:"url" yaml:"url"`
	Entry SearchEntry `json:"entry" yaml:"entry"`
}
