package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

const clearConfirmation = "CLEAR"

// Execute implements the go-flags Commander interface for FavoritesClearCommand.
func (c *FavoritesClearCommand) Execute(args []string) error {
	if !c.Force {
		if err := c.confirm(); err != nil {
			return err
		}
	}
	return withApp(c.globals, func(a *app) error { return c.run(a) })
}

// confirm asks the user to type the confirmation word.
func (c *FavoritesClearCommand) confirm() error {
	fmt.Println("⚠ WARNING: This will permanently delete ALL saved properties.")
	fmt.Println()
	fmt.Println("This action cannot be undone.")
	fmt.Println()
	fmt.Printf("Type %q to confirm: ", clearConfirmation)

	var in io.Reader = os.Stdin
	if c.in != nil {
		in = c.in
	}
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return fmt.Errorf("aborted: no input received")
	}
	if strings.TrimSpace(scanner.Text()) != clearConfirmation {
		return fmt.Errorf("aborted: confirmation text did not match")
	}
	return nil
}

func (c *FavoritesClearCommand) run(a *app) error {
	ctx := context.Background()
	n := a.favorites.Count(ctx)

	if err := a.favorites.Clear(ctx); err != nil {
		return err
	}

	if jsonOutput(c.globals) {
		return printJSON(map[string]interface{}{
			"cleared": true,
			"removed": n,
		})
	}

	fmt.Printf("Cleared %d %s.\n", n, plural(n, "favorite", "favorites"))
	return nil
}
