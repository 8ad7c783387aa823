package catalog

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PropertyType classifies a listing. The set is open; the constants are the
// types offered as filter choices.
type PropertyType string

const (
	House     PropertyType = "House"
	Condo     PropertyType = "Condo"
	Townhouse PropertyType = "Townhouse"
	Apartment PropertyType = "Apartment"
)

// KnownPropertyTypes returns the filterable types in display order.
func KnownPropertyTypes() []PropertyType {
	return []PropertyType{House, Condo, Townhouse, Apartment}
}

// ParsePropertyType normalizes user text such as "condo" or " HOUSE " to
// its title-cased form. Unknown types pass through title-cased.
func ParsePropertyType(s string) PropertyType {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	caser := cases.Title(language.English)
	return PropertyType(caser.String(s))
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Property is a single listing.
type Property struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Price        float64      `json:"price"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	ZipCode      string       `json:"zipCode,omitempty"`
	PropertyType PropertyType `json:"propertyType"`
	Bedrooms     float64      `json:"bedrooms"`
	Bathrooms    float64      `json:"bathrooms"`
	SquareFeet   float64      `json:"squareFeet"`
	YearBuilt    int          `json:"yearBuilt,omitempty"`
	ListingDate  time.Time    `json:"listingDate"`
	Description  string       `json:"description,omitempty"`
	Features     []string     `json:"features,omitempty"`
	Images       []string     `json:"images,omitempty"`
	Coordinates  Coordinates  `json:"coordinates"`
}

// Clone returns a deep copy so callers cannot reach catalog state.
func (p Property) Clone() Property {
	if p.Features != nil {
		p.Features = append([]string(nil), p.Features...)
	}
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}

// MatchesLocation reports whether query (trimmed, case-insensitive) is a
// substring of the city, state or address. A blank query matches.
func (p Property) MatchesLocation(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.City), q) ||
		strings.Contains(strings.ToLower(p.State), q) ||
		strings.Contains(strings.ToLower(p.Address), q)
}

// Location renders "address, city, state zip" for display.
func (p Property) Location() string {
	loc := p.Address
	if p.City != "" {
		loc += ", " + p.City
	}
	if p.State != "" {
		loc += ", " + p.State
	}
	if p.ZipCode != "" {
		loc += " " + p.ZipCode
	}
	return loc
}
