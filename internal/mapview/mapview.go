// Package mapview lays properties out as pins on the mock map and buckets
// them into geohash cells. It does no geocoding; coordinates come from the
// dataset.
package mapview

import (
	"sort"

	"github.com/mmcloughlin/geohash"

	"github.com/runnerr0/homehub/internal/catalog"
	"github.com/runnerr0/homehub/internal/money"
)

// MaxPrecision is the longest geohash Encode produces.
const MaxPrecision = 12

// Grid placement of pins on the mock map, in percent of width and height.
const (
	pinsPerRow  = 4
	gridOrigin  = 20.0
	columnWidth = 20.0
	rowHeight   = 25.0
)

// Pin is one property marker.
type Pin struct {
	PropertyID string  `json:"propertyId"`
	Title      string  `json:"title"`
	Label      string  `json:"label"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Geohash    string  `json:"geohash"`
	Cell       string  `json:"cell"`
	Left       float64 `json:"left"`
	Top        float64 `json:"top"`
}

// Cell groups the pins sharing a truncated geohash.
type Cell struct {
	Geohash   string   `json:"geohash"`
	CenterLat float64  `json:"centerLat"`
	CenterLng float64  `json:"centerLng"`
	Neighbors []string `json:"neighbors"`
	Pins      []Pin    `json:"pins"`
}

func clampPrecision(precision uint) uint {
	if precision < 1 {
		return 1
	}
	if precision > MaxPrecision {
		return MaxPrecision
	}
	return precision
}

// Pins returns a marker per property, in input order, with its price label,
// full geohash and the cell at the given precision.
func Pins(props []catalog.Property, precision uint) []Pin {
	precision = clampPrecision(precision)

	pins := make([]Pin, 0, len(props))
	for i, p := range props {
		hash := geohash.Encode(p.Coordinates.Lat, p.Coordinates.Lng)
		pins = append(pins, Pin{
			PropertyID: p.ID,
			Title:      p.Title,
			Label:      money.USD(p.Price),
			Lat:        p.Coordinates.Lat,
			Lng:        p.Coordinates.Lng,
			Geohash:    hash,
			Cell:       hash[:precision],
			Left:       gridOrigin + float64(i%pinsPerRow)*columnWidth,
			Top:        gridOrigin + float64(i/pinsPerRow)*rowHeight,
		})
	}
	return pins
}

// Group buckets pins by cell. Cells are sorted by geohash; pins keep their
// input order within a cell.
func Group(pins []Pin) []Cell {
	byCell := map[string]*Cell{}
	var order []string
	for _, pin := range pins {
		c, ok := byCell[pin.Cell]
		if !ok {
			lat, lng := geohash.DecodeCenter(pin.Cell)
			c = &Cell{
				Geohash:   pin.Cell,
				CenterLat: lat,
				CenterLng: lng,
				Neighbors: geohash.Neighbors(pin.Cell),
			}
			byCell[pin.Cell] = c
			order = append(order, pin.Cell)
		}
		c.Pins = append(c.Pins, pin)
	}

	sort.Strings(order)
	cells := make([]Cell, 0, len(order))
	for _, h := range order {
		cells = append(cells, *byCell[h])
	}
	return cells
}
