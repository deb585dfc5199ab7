// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/scholar-match/internal/normalize"
	"github.com/pdiddy/scholar-match/pkg/types"
)

func TestMatchesTokenPresence(t *testing.T) {
	tests := []struct {
		name     string
		author   types.AuthorEntry
		fullName string
		want     bool
	}{
		{"full name", types.AuthorEntry{Given: "Rebeca", Family: "Acin Perez"}, "Rebeca Acin Perez", true},
		{"hyphenated family", types.AuthorEntry{Given: "R.", Family: "Acin-Perez"}, "Rebeca Acin Perez", true},
		{"accents ignored", types.AuthorEntry{Given: "Rebeca", Family: "Acín-Pérez"}, "Rebeca Acin Perez", true},
		{"last surname alone", types.AuthorEntry{Given: "M.", Family: "Perez"}, "Rebeca Acin Perez", true},
		{"literal only", types.AuthorEntry{Literal: "Juan Pérez Gómez"}, "Juan Perez Gomez", true},
		{"surname variation alone", types.AuthorEntry{Given: "Ana", Family: "Lopez"}, "Juan Lopez", true},
		{"unrelated", types.AuthorEntry{Given: "John", Family: "Smith"}, "Rebeca Acin Perez", false},
		{"empty author", types.AuthorEntry{}, "Rebeca Acin Perez", false},
		{"empty name", types.AuthorEntry{Given: "John", Family: "Smith"}, "", false},
		{"hyphenated target, spaced author", types.AuthorEntry{Given: "Rebeca", Family: "Acín Pérez"}, "Rebeca Acín-Pérez", true},
		{"hyphenated target, hyphenated author", types.AuthorEntry{Given: "Rebeca", Family: "Acín-Pérez"}, "Rebeca Acín-Pérez", true},
		{"hyphenated target, literal author", types.AuthorEntry{Literal: "Juan Pérez Gómez"}, "Juan Pérez-Gómez", true},
		{"hyphenated target, unrelated author", types.AuthorEntry{Given: "Rebeca", Family: "Smith"}, "Rebeca Acín-Pérez", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesTokenPresence(tt.author, tt.fullName))
		})
	}
}

func TestMatchesSpanishName(t *testing.T) {
	juan := normalize.ParseSpanishName("Juan Pérez Gómez")
	mariaJose := normalize.ParseSpanishName("María-José García López")
	tests := []struct {
		name   string
		author types.AuthorEntry
		pn     types.PersonName
		want   bool
	}{
		{"hyphenated compound family", types.AuthorEntry{Given: "Juan", Family: "Pérez-Gómez"}, juan, true},
		{"maternal only", types.AuthorEntry{Given: "Juan Carlos", Family: "Gomez"}, juan, true},
		{"given mismatch", types.AuthorEntry{Given: "Pedro", Family: "Pérez"}, juan, false},
		{"surname mismatch", types.AuthorEntry{Given: "Juan", Family: "Martínez"}, juan, false},
		{"initial only given", types.AuthorEntry{Given: "J.", Family: "Pérez"}, juan, false},
		{"missing family", types.AuthorEntry{Given: "Juan"}, juan, false},
		{"unparsable name", types.AuthorEntry{Given: "Cher", Family: "Cher"}, normalize.ParseSpanishName("Cher"), false},
		{"two-token name", types.AuthorEntry{Given: "Ana", Family: "Ruiz"}, normalize.ParseSpanishName("Ana Ruiz"), true},
		{"hyphenated given, spaced author", types.AuthorEntry{Given: "María José", Family: "García"}, mariaJose, true},
		{"hyphenated given, hyphenated author", types.AuthorEntry{Given: "Maria-Jose", Family: "López"}, mariaJose, true},
		{"hyphenated given, partial author", types.AuthorEntry{Given: "María", Family: "García"}, mariaJose, false},
		{"spaced given, hyphenated author", types.AuthorEntry{Given: "Juan-Carlos", Family: "Pérez"}, juan, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesSpanishName(tt.author, tt.pn))
		})
	}
}

func TestNameTokensExactMatch(t *testing.T) {
	assert.True(t, NameTokensExactMatch(types.AuthorEntry{Given: "Rebeca", Family: "Acín-Pérez"}, "Rebeca Acin Perez"))
	assert.True(t, NameTokensExactMatch(types.AuthorEntry{Given: "Perez", Family: "Rebeca Acin"}, "rebeca acin perez"), "order is irrelevant")
	assert.False(t, NameTokensExactMatch(types.AuthorEntry{Given: "Rebeca María", Family: "Acín-Pérez"}, "Rebeca Acin Perez"), "extra middle name")
	assert.False(t, NameTokensExactMatch(types.AuthorEntry{Given: "Rebeca", Family: "Acín"}, "Rebeca Acin Perez"), "missing token")
	assert.False(t, NameTokensExactMatch(types.AuthorEntry{}, ""))
}

func TestTokenOverlap(t *testing.T) {
	tokens := []string{"juan", "perez", "gomez"}
	assert.Equal(t, 3, TokenOverlap(tokens, types.AuthorEntry{Given: "Juan", Family: "Pérez-Gómez"}))
	assert.Equal(t, 1, TokenOverlap(tokens, types.AuthorEntry{Given: "Ana", Family: "Gómez"}))
	assert.Equal(t, 0, TokenOverlap(tokens, types.AuthorEntry{Given: "John", Family: "Smith"}))

	hyphenated := normalize.TokenizeNameFields("Rebeca Acín-Pérez")
	assert.Equal(t, 3, TokenOverlap(hyphenated, types.AuthorEntry{Given: "Rebeca", Family: "Acín-Pérez"}))
	assert.Equal(t, 3, TokenOverlap(hyphenated, types.AuthorEntry{Given: "Rebeca", Family: "Acín Pérez"}))
}

func TestNewTarget(t *testing.T) {
	target := NewTarget("  Juan Pérez Gómez ", " Universidad de Zaragoza", 2015)
	assert.Equal(t, "Juan Pérez Gómez", target.FullName)
	assert.Equal(t, "Universidad de Zaragoza", target.Institution)
	assert.Equal(t, "pérez", target.Name.PaternalSurname)
	assert.Equal(t, 2015, target.Year)
}
