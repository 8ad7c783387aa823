// Package cli implements the homehub command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Status          *StatusCommand
	Search          *SearchCommand
	Show            *ShowCommand
	Featured        *FeaturedCommand
	Favorites       *FavoritesCommand
	FavoritesList   *FavoritesListCommand
	FavoritesAdd    *FavoritesAddCommand
	FavoritesRemove *FavoritesRemoveCommand
	FavoritesClear  *FavoritesClearCommand
	FavoritesPrune  *FavoritesPruneCommand
	Mortgage        *MortgageCommand
	Map             *MapCommand
	Serve           *ServeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "homehub"
	parser.LongDescription = "Browse local real-estate listings, keep favorites and estimate mortgage payments."

	cmds := &commands{
		Status:          &StatusCommand{globals: &globals, version: version},
		Search:          &SearchCommand{globals: &globals, version: version},
		Show:            &ShowCommand{globals: &globals, version: version},
		Featured:        &FeaturedCommand{globals: &globals, version: version},
		Favorites:       &FavoritesCommand{},
		FavoritesList:   &FavoritesListCommand{globals: &globals, version: version},
		FavoritesAdd:    &FavoritesAddCommand{globals: &globals, version: version},
		FavoritesRemove: &FavoritesRemoveCommand{globals: &globals, version: version},
		FavoritesClear:  &FavoritesClearCommand{globals: &globals, version: version},
		FavoritesPrune:  &FavoritesPruneCommand{globals: &globals, version: version},
		Mortgage:        &MortgageCommand{globals: &globals, version: version},
		Map:             &MapCommand{globals: &globals, version: version},
		Serve:           &ServeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("status", "Show dataset and storage statistics", "Show dataset size, favorites count, storage backend and medium statistics.", cmds.Status)
	parser.AddCommand("search", "Search listings", "Search listings by price, rooms, size, type and location.", cmds.Search)
	parser.AddCommand("show", "Show one listing", "Print the full details of a listing.", cmds.Show)
	parser.AddCommand("featured", "Show featured listings", "Print the featured listings.", cmds.Featured)

	fav, _ := parser.AddCommand("favorites", "Manage saved listings", "List, add, remove, prune or clear saved listings.", cmds.Favorites)
	fav.Aliases = []string{"fav"}
	fav.AddCommand("list", "List saved listings", "List saved listings in the order they were saved.", cmds.FavoritesList)
	fav.AddCommand("add", "Save a listing", "Save a listing to favorites.", cmds.FavoritesAdd)
	fav.AddCommand("remove", "Unsave a listing", "Remove a listing from favorites.", cmds.FavoritesRemove)
	fav.AddCommand("clear", "Delete ALL favorites", "Delete ALL favorites. Destructive operation with safety prompt.", cmds.FavoritesClear)
	fav.AddCommand("prune", "Drop favorites of removed listings", "Remove saved ids that no longer match a listing.", cmds.FavoritesPrune)

	parser.AddCommand("mortgage", "Estimate a monthly payment", "Estimate the monthly payment for a fixed-rate loan.", cmds.Mortgage)
	parser.AddCommand("map", "Show map pins", "Print listing pins grouped by geohash cell.", cmds.Map)
	parser.AddCommand("serve", "Run the local JSON API", "Run the local JSON API until interrupted.", cmds.Serve)

	return parser, &globals, cmds
}

// Run is the main entry point for the homehub CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses args, or os.Args when args is nil, and executes the
// matched subcommand. Help output is not an error.
func RunWithArgs(version string, args []string) error {
	if args == nil {
		args = os.Args[1:]
	}
	if wantsVersion(args) {
		fmt.Printf("homehub %s\n", version)
		return nil
	}

	parser, _, _ := buildParser(version)
	_, err := parser.ParseArgs(args)

	var flagsErr *goflags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp {
		return nil
	}
	return err
}

// wantsVersion reports whether --version appears before any "--" separator.
// It is valid without a subcommand.
func wantsVersion(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version":
			return true
		case "--":
			return false
		}
	}
	return false
}
