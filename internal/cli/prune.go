package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/runnerr0/homehub/internal/catalog"
	"github.com/runnerr0/homehub/internal/favorites"
	"github.com/runnerr0/homehub/internal/logger"
)

// Execute implements the go-flags Commander interface for FavoritesPruneCommand.
func (c *FavoritesPruneCommand) Execute(args []string) error {
	return withApp(c.globals, func(a *app) error { return c.run(a) })
}

// orphans returns the saved ids that no listing has.
func orphans(ctx context.Context, a *app) ([]string, error) {
	var out []string
	for _, id := range a.favorites.ListIDs(ctx) {
		_, err := a.catalog.GetByID(ctx, id)
		if errors.Is(err, catalog.ErrPropertyNotFound) {
			out = append(out, id)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *FavoritesPruneCommand) run(a *app) error {
	ctx := context.Background()

	ids, err := orphans(ctx, a)
	if err != nil {
		return fmt.Errorf("prune favorites: %w", err)
	}

	pruned := make([]string, 0, len(ids))
	if !c.DryRun {
		for _, id := range ids {
			_, err := a.favorites.Remove(ctx, id)
			if errors.Is(err, favorites.ErrFavoriteNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("prune favorites: %w", err)
			}
			pruned = append(pruned, id)
		}
		a.log.Info("Pruned favorites", logger.Fields{"count": len(pruned)})
	}

	if jsonOutput(c.globals) {
		return printJSON(map[string]interface{}{
			"dry_run": c.DryRun,
			"orphans": ids,
			"pruned":  pruned,
		})
	}

	if len(ids) == 0 {
		fmt.Println("Nothing to prune.")
		return nil
	}
	if c.DryRun {
		fmt.Printf("Would prune %d %s:\n", len(ids), plural(len(ids), "favorite", "favorites"))
		for _, id := range ids {
			fmt.Printf("  %s\n", id)
		}
		return nil
	}
	fmt.Printf("Pruned %d %s.\n", len(pruned), plural(len(pruned), "favorite", "favorites"))
	return nil
}
