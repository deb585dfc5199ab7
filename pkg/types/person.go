// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PersonName is a researcher's name decomposed by the Spanish two-surname
// convention. Tokens are lowercase. An empty PaternalSurname means the name
// had fewer than two tokens and no surname-based matching may be attempted.
type PersonName struct {
	RawFullName     string   `json:"raw_full_name" yaml:"raw_full_name"`
	GivenNames      []string `json:"given_names,omitempty" yaml:"given_names,omitempty"`
	PaternalSurname string   `json:"paternal_surname,omitempty" yaml:"paternal_surname,omitempty"`
	MaternalSurname string   `json:"maternal_surname,omitempty" yaml:"maternal_surname,omitempty"`
}

// HasSurname reports whether the name was parsable into at least a
// paternal surname.
func (n PersonName) HasSurname() bool {
	return n.PaternalSurname != ""
}

// FirstGiven returns the first given-name token, or "".
func (n PersonName) FirstGiven() string {
	if len(n.GivenNames) == 0 {
		return ""
	}
	return n.GivenNames[0]
}

// Target is the identity a roster row asks us to find: the researcher's
// full name, the institution they worked at and the scholarship year.
type Target struct {
	FullName string     `json:"full_name" yaml:"full_name"`
	Name     PersonName `json:"name" yaml:"name"`

	// Institution is the raw institution string from the roster. Empty
	// means no institution constraint, which never counts as a match.
	Institution string `json:"institution,omitempty" yaml:"institution,omitempty"`

	// Year is the scholarship year. Zero means unknown and disables the
	// year-proximity signal.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`
}

// YearWindow is the number of years either side of the scholarship year
// within which a publication counts as contemporary.
const YearWindow = 5

// WithinYearWindow reports whether year lies within YearWindow of the
// target year. Unknown years on either side never match.
func (t Target) WithinYearWindow(year int) bool {
	if t.Year == 0 || year == 0 {
		return false
	}
	return year >= t.Year-YearWindow && year <= t.Year+YearWindow
}
