// Package filter narrows a property list by price, type, size and location
// criteria. It holds no state; Apply is a pure function of its inputs.
package filter

import (
	"slices"
	"strings"

	"github.com/runnerr0/homehub/internal/catalog"
)

// Spec is a parsed set of criteria. A nil bound, an empty type set and a
// blank location are unset and constrain nothing. Bounds are inclusive.
type Spec struct {
	PriceMin      *int
	PriceMax      *int
	BedroomsMin   *int
	BathroomsMin  *int
	SquareFeetMin *int
	PropertyTypes []catalog.PropertyType
	Location      string
}

// Int returns a pointer to v for building a Spec literal.
func Int(v int) *int { return &v }

// Clear returns a Spec with every criterion unset.
func Clear() Spec { return Spec{} }

func (s Spec) hasTypes() bool    { return len(s.PropertyTypes) > 0 }
func (s Spec) hasLocation() bool { return strings.TrimSpace(s.Location) != "" }

// ActiveCount returns how many criteria are set.
func (s Spec) ActiveCount() int {
	n := 0
	for _, b := range []*int{s.PriceMin, s.PriceMax, s.BedroomsMin, s.BathroomsMin, s.SquareFeetMin} {
		if b != nil {
			n++
		}
	}
	if s.hasTypes() {
		n++
	}
	if s.hasLocation() {
		n++
	}
	return n
}

// IsZero reports whether no criterion is set.
func (s Spec) IsZero() bool { return s.ActiveCount() == 0 }

// Matches reports whether p satisfies every set criterion.
func (s Spec) Matches(p catalog.Property) bool {
	if s.PriceMin != nil && p.Price < float64(*s.PriceMin) {
		return false
	}
	if s.PriceMax != nil && p.Price > float64(*s.PriceMax) {
		return false
	}
	if s.hasTypes() && !slices.Contains(s.PropertyTypes, p.PropertyType) {
		return false
	}
	if s.BedroomsMin != nil && p.Bedrooms < float64(*s.BedroomsMin) {
		return false
	}
	if s.BathroomsMin != nil && p.Bathrooms < float64(*s.BathroomsMin) {
		return false
	}
	if s.SquareFeetMin != nil && p.SquareFeet < float64(*s.SquareFeetMin) {
		return false
	}
	if s.hasLocation() && !MatchesLocation(p, s.Location) {
		return false
	}
	return true
}

// Apply returns the properties matching spec in their input order. The
// result is never nil and props is not modified.
func Apply(props []catalog.Property, spec Spec) []catalog.Property {
	out := make([]catalog.Property, 0, len(props))
	for _, p := range props {
		if spec.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// MatchesLocation reports whether the trimmed, lower-cased query is a
// substring of the lower-cased city, state or address.
func MatchesLocation(p catalog.Property, query string) bool {
	return p.MatchesLocation(query)
}
