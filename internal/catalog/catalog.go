// Package catalog holds the in-memory property listings that every other
// homehub component reads from.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrPropertyNotFound is returned when no listing has the requested id.
var ErrPropertyNotFound = errors.New("property not found")

// Catalog is a concurrency-safe, ordered collection of properties. Every
// record handed out is a copy.
type Catalog struct {
	mu    sync.RWMutex
	props []Property
	now   func() time.Time
	newID func() string
}

// New returns a Catalog holding a private copy of props.
func New(props []Property) *Catalog {
	c := &Catalog{
		props: make([]Property, 0, len(props)),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, p := range props {
		c.props = append(c.props, p.Clone())
	}
	return c
}

func (c *Catalog) indexOf(id string) int {
	for i := range c.props {
		if c.props[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) collect(keep func(Property) bool) []Property {
	out := []Property{}
	for _, p := range c.props {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Len returns the number of listings.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.props)
}

// All returns every listing in catalog order.
func (c *Catalog) All(ctx context.Context) ([]Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(Property) bool { return true }), nil
}

// GetByID returns the listing with the given id.
func (c *Catalog) GetByID(ctx context.Context, id string) (Property, error) {
	if err := ctx.Err(); err != nil {
		return Property{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return Property{}, fmt.Errorf("%w: %s", ErrPropertyNotFound, id)
	}
	return c.props[i].Clone(), nil
}

// Create appends p with a fresh id and the current listing date.
func (c *Catalog) Create(ctx context.Context, p Property) (Property, error) {
	if err := ctx.Err(); err != nil {
		return Property{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p = p.Clone()
	p.ID = c.newID()
	p.ListingDate = c.now().UTC()
	c.props = append(c.props, p)
	return p.Clone(), nil
}

// Update applies fn to a copy of the listing and stores the result. The id
// cannot be changed.
func (c *Catalog) Update(ctx context.Context, id string, fn func(*Property)) (Property, error) {
	if err := ctx.Err(); err != nil {
		return Property{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return Property{}, fmt.Errorf("%w: %s", ErrPropertyNotFound, id)
	}
	updated := c.props[i].Clone()
	fn(&updated)
	updated.ID = id
	c.props[i] = updated
	return updated.Clone(), nil
}

// Delete removes the listing and returns it.
func (c *Catalog) Delete(ctx context.Context, id string) (Property, error) {
	if err := ctx.Err(); err != nil {
		return Property{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return Property{}, fmt.Errorf("%w: %s", ErrPropertyNotFound, id)
	}
	deleted := c.props[i]
	c.props = append(c.props[:i], c.props[i+1:]...)
	return deleted, nil
}

// SearchByLocation returns listings whose city, state or address contains
// query, case-insensitively.
func (c *Catalog) SearchByLocation(ctx context.Context, query string) ([]Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(p Property) bool { return p.MatchesLocation(query) }), nil
}

// ByPriceRange returns listings priced within [min, max].
func (c *Catalog) ByPriceRange(ctx context.Context, min, max float64) ([]Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(p Property) bool { return p.Price >= min && p.Price <= max }), nil
}

// Featured returns the first n listings.
func (c *Catalog) Featured(ctx context.Context, n int) ([]Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n < 0 {
		n = 0
	}
	if n > len(c.props) {
		n = len(c.props)
	}
	out := make([]Property, 0, n)
	for _, p := range c.props[:n] {
		out = append(out, p.Clone())
	}
	return out, nil
}
