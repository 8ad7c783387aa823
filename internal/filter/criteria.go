package filter

import (
	"strconv"
	"strings"

	"github.com/runnerr0/homehub/internal/catalog"
)

// Criteria is the text form of a Spec, as gathered from flags, query
// strings or form fields. Empty strings are unset.
type Criteria struct {
	PriceMin      string   `json:"priceMin,omitempty"`
	PriceMax      string   `json:"priceMax,omitempty"`
	BedroomsMin   string   `json:"bedroomsMin,omitempty"`
	BathroomsMin  string   `json:"bathroomsMin,omitempty"`
	SquareFeetMin string   `json:"squareFeetMin,omitempty"`
	PropertyTypes []string `json:"propertyType,omitempty"`
	Location      string   `json:"location,omitempty"`
}

// ParseInt reads a base-10 integer, ignoring surrounding space. A decimal
// such as "1.5" truncates toward zero so half-bath choices still parse.
// Anything else returns nil: the criterion is left unset.
func ParseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && !allDigits(frac) {
		return nil
	}
	if whole == "" || whole == "-" || whole == "+" {
		return nil
	}

	v, err := strconv.Atoi(whole)
	if err != nil {
		return nil
	}
	return &v
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Spec parses the criteria. Malformed numbers become unset bounds, type
// names are normalized and blanks dropped.
func (c Criteria) Spec() Spec {
	s := Spec{
		PriceMin:      ParseInt(c.PriceMin),
		PriceMax:      ParseInt(c.PriceMax),
		BedroomsMin:   ParseInt(c.BedroomsMin),
		BathroomsMin:  ParseInt(c.BathroomsMin),
		SquareFeetMin: ParseInt(c.SquareFeetMin),
		Location:      strings.TrimSpace(c.Location),
	}
	for _, t := range c.PropertyTypes {
		if pt := catalog.ParsePropertyType(t); pt != "" {
			s.PropertyTypes = append(s.PropertyTypes, pt)
		}
	}
	return s
}

// ActiveCount counts the criteria that parse to a set value, so it always
// agrees with what Apply enforces.
func (c Criteria) ActiveCount() int {
	return c.Spec().ActiveCount()
}
