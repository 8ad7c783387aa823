package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/homehub/internal/money"
)

// Execute implements the go-flags Commander interface for FavoritesListCommand.
func (c *FavoritesListCommand) Execute(args []string) error {
	return withApp(c.globals, func(a *app) error { return c.run(a) })
}

type jsonFavorite struct {
	PropertyID string      `json:"property_id"`
	SavedDate  string      `json:"saved_date"`
	Property   listingJSON `json:"property"`
}

type jsonFavoritesOutput struct {
	Count     int            `json:"count"`
	Favorites []jsonFavorite `json:"favorites"`
}

func (c *FavoritesListCommand) run(a *app) error {
	entries, err := a.favorites.Resolve(context.Background(), a.catalog)
	if err != nil {
		return fmt.Errorf("list favorites: %w", err)
	}

	if jsonOutput(c.globals) {
		out := jsonFavoritesOutput{Count: len(entries), Favorites: make([]jsonFavorite, len(entries))}
		for i, e := range entries {
			out.Favorites[i] = jsonFavorite{
				PropertyID: e.PropertyID,
				SavedDate:  e.SavedDate.UTC().Format(time.RFC3339),
				Property:   toListingJSON(e.Property, true),
			}
		}
		return printJSON(out)
	}

	if len(entries) == 0 {
		fmt.Println("No saved properties yet.")
		return nil
	}

	fmt.Printf("%d saved %s\n", len(entries), plural(len(entries), "property", "properties"))
	for i, e := range entries {
		fmt.Println()
		fmt.Printf("%d. %s\n", i+1, e.Property.Title)
		fmt.Printf("   %s\n", summary(e.Property))
		fmt.Printf("   id: %s · saved %s\n", e.PropertyID, e.SavedDate.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// Execute implements the go-flags Commander interface for FavoritesAddCommand.
func (c *FavoritesAddCommand) Execute(args []string) error {
	if idArg(c.ID, args) == "" {
		return fmt.Errorf("--id is required for favorites add")
	}
	return withApp(c.globals, func(a *app) error { return c.run(a, args) })
}

func (c *FavoritesAddCommand) run(a *app, args []string) error {
	ctx := context.Background()
	id := idArg(c.ID, args)

	p, err := a.catalog.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fav, err := a.favorites.Add(ctx, id)
	if err != nil {
		return err
	}

	if jsonOutput(c.globals) {
		return printJSON(map[string]interface{}{
			"property_id": fav.PropertyID,
			"saved_date":  fav.SavedDate.UTC().Format(time.RFC3339),
			"count":       a.favorites.Count(ctx),
		})
	}

	fmt.Printf("Saved %s (%s) to favorites\n", p.Title, money.USD(p.Price))
	return nil
}

// Execute implements the go-flags Commander interface for FavoritesRemoveCommand.
func (c *FavoritesRemoveCommand) Execute(args []string) error {
	if idArg(c.ID, args) == "" {
		return fmt.Errorf("--id is required for favorites remove")
	}
	return withApp(c.globals, func(a *app) error { return c.run(a, args) })
}

// run removes by id without consulting the catalog, so favorites of
// listings that have since disappeared can still be removed.
func (c *FavoritesRemoveCommand) run(a *app, args []string) error {
	ctx := context.Background()
	id := idArg(c.ID, args)

	if _, err := a.favorites.Remove(ctx, id); err != nil {
		return err
	}

	if jsonOutput(c.globals) {
		return printJSON(map[string]interface{}{
			"property_id": id,
			"removed":     true,
			"count":       a.favorites.Count(ctx),
		})
	}

	fmt.Printf("Removed %s from favorites\n", id)
	return nil
}
