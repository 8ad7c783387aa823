package cli

import (
	"context"
	"fmt"
)

// Execute implements the go-flags Commander interface for FeaturedCommand.
func (c *FeaturedCommand) Execute(args []string) error {
	return withApp(c.globals, func(a *app) error { return c.run(a) })
}

func (c *FeaturedCommand) run(a *app) error {
	ctx := context.Background()

	props, err := a.catalog.Featured(ctx, c.Count)
	if err != nil {
		return err
	}
	saved := a.favorites.IDSet(ctx)

	if jsonOutput(c.globals) {
		out := make([]listingJSON, len(props))
		for i, p := range props {
			_, fav := saved[p.ID]
			out[i] = toListingJSON(p, fav)
		}
		return printJSON(out)
	}

	fmt.Println("Featured Properties")
	fmt.Println("===================")
	for i, p := range props {
		fmt.Println()
		_, fav := saved[p.ID]
		printListing(i+1, p, fav)
	}
	return nil
}
