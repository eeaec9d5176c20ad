package domain

import "strings"

// NoAddressText is rendered when geocoding produced no candidates.
const NoAddressText = "No address found"

// Address is a structured reverse-geocoding result.
type Address struct {
	// Lines are the formatted address lines, most specific first.
	Lines []string

	Locality    string
	PostalCode  string
	CountryCode string
	CountryName string
}

// String joins the address lines, falling back to locality and country.
func (a Address) String() string {
	if len(a.Lines) > 0 {
		return strings.Join(a.Lines, ", ")
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{a.PostalCode, a.Locality, a.CountryName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return NoAddressText
	}
	return strings.Join(parts, " ")
}

// AddressCandidates are geocoding results ordered by provider relevance.
type AddressCandidates []Address

// Best returns the first candidate, or false if there is none.
func (c AddressCandidates) Best() (Address, bool) {
	if len(c) == 0 {
		return Address{}, false
	}
	return c[0], true
}
