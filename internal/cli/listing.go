package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/homehub/internal/catalog"
	"github.com/runnerr0/homehub/internal/money"
)

const favoriteMarker = "★"

// listingJSON is the JSON form of a listing in command output.
type listingJSON struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	PriceLabel   string   `json:"price_label"`
	PropertyType string   `json:"property_type"`
	Bedrooms     float64  `json:"bedrooms"`
	Bathrooms    float64  `json:"bathrooms"`
	SquareFeet   float64  `json:"square_feet"`
	Location     string   `json:"location"`
	ListingDate  string   `json:"listing_date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Features     []string `json:"features,omitempty"`
	Favorite     bool     `json:"favorite"`
}

func toListingJSON(p catalog.Property, favorite bool) listingJSON {
	out := listingJSON{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price,
		PriceLabel:   money.USD(p.Price),
		PropertyType: string(p.PropertyType),
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		SquareFeet:   p.SquareFeet,
		Location:     p.Location(),
		Description:  p.Description,
		Features:     p.Features,
		Favorite:     favorite,
	}
	if !p.ListingDate.IsZero() {
		out.ListingDate = p.ListingDate.UTC().Format(time.RFC3339)
	}
	return out
}

// summary is the one-line fact sheet of a listing.
func summary(p catalog.Property) string {
	parts := []string{money.USD(p.Price)}
	if p.PropertyType != "" {
		parts = append(parts, string(p.PropertyType))
	}
	parts = append(parts,
		money.Number(p.Bedrooms)+" bd",
		money.Number(p.Bathrooms)+" ba",
		money.Number(p.SquareFeet)+" sqft",
	)
	return strings.Join(parts, " · ")
}

// printListing prints a numbered listing entry.
func printListing(n int, p catalog.Property, favorite bool) {
	fmt.Printf("%d. %s", n, p.Title)
	if favorite {
		fmt.Printf(" %s", favoriteMarker)
	}
	fmt.Println()
	fmt.Printf("   %s\n", summary(p))
	if loc := p.Location(); loc != "" {
		fmt.Printf("   %s\n", loc)
	}
	fmt.Printf("   id: %s\n", p.ID)
}
