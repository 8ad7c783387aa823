package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/runnerr0/homehub/internal/catalog"
	"github.com/runnerr0/homehub/internal/filter"
)

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	return withApp(c.globals, func(a *app) error { return c.run(a, args) })
}

// criteria collects the flag values. Positional arguments are a location
// query when --location is not given.
func (c *SearchCommand) criteria(args []string) filter.Criteria {
	loc := c.Location
	if loc == "" && len(args) > 0 {
		loc = strings.Join(args, " ")
	}
	return filter.Criteria{
		PriceMin:      c.PriceMin,
		PriceMax:      c.PriceMax,
		BedroomsMin:   c.Beds,
		BathroomsMin:  c.Baths,
		SquareFeetMin: c.Sqft,
		PropertyTypes: c.Types,
		Location:      loc,
	}
}

type jsonSearchOutput struct {
	Count         int             `json:"count"`
	ActiveFilters int             `json:"active_filters"`
	Criteria      filter.Criteria `json:"criteria"`
	Results       []listingJSON   `json:"results"`
}

func (c *SearchCommand) run(a *app, args []string) error {
	ctx := context.Background()

	criteria := c.criteria(args)
	all, err := a.catalog.All(ctx)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	results := filter.Apply(all, criteria.Spec())
	saved := a.favorites.IDSet(ctx)
	active := criteria.ActiveCount()

	if jsonOutput(c.globals) {
		out := jsonSearchOutput{
			Count:         len(results),
			ActiveFilters: active,
			Criteria:      criteria,
			Results:       make([]listingJSON, len(results)),
		}
		for i, p := range results {
			_, fav := saved[p.ID]
			out.Results[i] = toListingJSON(p, fav)
		}
		return printJSON(out)
	}

	c.printHuman(results, saved, active)
	return nil
}

func (c *SearchCommand) printHuman(results []catalog.Property, saved map[string]struct{}, active int) {
	header := fmt.Sprintf("%d %s found", len(results), plural(len(results), "property", "properties"))
	if active > 0 {
		header += fmt.Sprintf(" (%d active %s)", active, plural(active, "filter", "filters"))
	}
	fmt.Println(header)

	if len(results) == 0 {
		fmt.Println("Try widening the price range or clearing filters.")
		return
	}
	fmt.Println()

	for i, p := range results {
		_, fav := saved[p.ID]
		printListing(i+1, p, fav)
		if i < len(results)-1 {
			fmt.Println()
		}
	}
}
