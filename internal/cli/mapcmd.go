package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/homehub/internal/mapview"
)

// Execute implements the go-flags Commander interface for MapCommand.
func (c *MapCommand) Execute(args []string) error {
	return withApp(c.globals, func(a *app) error { return c.run(a) })
}

type jsonMapOutput struct {
	Precision uint           `json:"precision"`
	Cells     []mapview.Cell `json:"cells"`
}

func (c *MapCommand) run(a *app) error {
	precision := c.Precision
	if precision == 0 {
		precision = a.cfg.Map.Precision
	}
	if precision > mapview.MaxPrecision {
		return fmt.Errorf("invalid --precision %d (want 1-%d)", precision, mapview.MaxPrecision)
	}

	props, err := a.catalog.SearchByLocation(context.Background(), c.Location)
	if err != nil {
		return err
	}
	cells := mapview.Group(mapview.Pins(props, precision))

	if jsonOutput(c.globals) {
		return printJSON(jsonMapOutput{Precision: precision, Cells: cells})
	}

	fmt.Printf("%d %s in %d %s (precision %d)\n",
		len(props), plural(len(props), "pin", "pins"),
		len(cells), plural(len(cells), "cell", "cells"), precision)
	for _, cell := range cells {
		fmt.Println()
		fmt.Printf("%s  center %.4f, %.4f\n", cell.Geohash, cell.CenterLat, cell.CenterLng)
		for _, pin := range cell.Pins {
			fmt.Printf("  %-10s %s (id %s) at %.0f%%, %.0f%%\n", pin.Label, pin.Title, pin.PropertyID, pin.Left, pin.Top)
		}
	}
	return nil
}
