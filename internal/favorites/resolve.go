package favorites

import (
	"context"
	"errors"

	"github.com/runnerr0/homehub/internal/catalog"
)

// Entry pairs a saved favorite with its current listing.
type Entry struct {
	Favorite
	Property catalog.Property `json:"property"`
}

// Resolve looks every favorite up in cat, in saved order. Favorites whose
// listing no longer exists are skipped; any other lookup error is returned.
func (s *Store) Resolve(ctx context.Context, cat *catalog.Catalog) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	favs := s.List(ctx)
	out := make([]Entry, 0, len(favs))
	for _, f := range favs {
		p, err := cat.GetByID(ctx, f.PropertyID)
		if errors.Is(err, catalog.ErrPropertyNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Favorite: f, Property: p})
	}
	return out, nil
}
