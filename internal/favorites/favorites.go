// Package favorites keeps the user's deduplicated list of saved properties
// in a key/value medium and notifies subscribers when it changes.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/runnerr0/homehub/internal/logger"
	"github.com/runnerr0/homehub/internal/storage"
)

// DefaultKey is the storage key holding the favorites collection.
const DefaultKey = "homehub_favorites"

var (
	// ErrDuplicateFavorite is returned by Add for an id already saved.
	ErrDuplicateFavorite = errors.New("property already in favorites")
	// ErrFavoriteNotFound is returned by Remove and Get for an unsaved id.
	ErrFavoriteNotFound = errors.New("property not in favorites")
)

// Favorite marks a property as saved at a point in time.
type Favorite struct {
	PropertyID string    `json:"propertyId"`
	SavedDate  time.Time `json:"savedDate"`
}

// Store is the sole reader and writer of the favorites key.
type Store struct {
	kv  storage.KeyValue
	key string
	log logger.Logger
	now func() time.Time

	mu sync.Mutex

	subMu     sync.Mutex
	nextSubID int
	subs      []subscription
}

type subscription struct {
	id int
	fn func()
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for storage read failures and tracing.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock sets the time source for SavedDate.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store over kv.
func New(kv storage.KeyValue, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		key: DefaultKey,
		log: logger.Nop{},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithFields(logger.Fields{"component": "favorites", "key": s.key})
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string { return s.key }

// decode parses a stored collection. Any failure yields an empty list.
func (s *Store) decode(raw string) []Favorite {
	var favs []Favorite
	if err := json.Unmarshal([]byte(raw), &favs); err != nil {
		s.log.Warn("Stored favorites are unreadable, treating as empty", logger.Fields{"error": err.Error()})
		return []Favorite{}
	}
	if favs == nil {
		favs = []Favorite{}
	}
	return favs
}

func encode(favs []Favorite) (string, error) {
	data, err := json.Marshal(favs)
	if err != nil {
		return "", fmt.Errorf("encode favorites: %w", err)
	}
	return string(data), nil
}

func indexOf(favs []Favorite, propertyID string) int {
	for i, f := range favs {
		if f.PropertyID == propertyID {
			return i
		}
	}
	return -1
}

// read loads the collection. Read and parse failures are logged and
// reported as an empty collection.
func (s *Store) read(ctx context.Context) []Favorite {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Error("Failed to read favorites, treating as empty", err, nil)
		}
		return []Favorite{}
	}
	return s.decode(raw)
}

// mutate runs a read-modify-write cycle on the collection. When the medium
// is an Updater the cycle runs inside its atomic update.
func (s *Store) mutate(ctx context.Context, fn func([]Favorite) ([]Favorite, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.kv.(storage.Updater); ok {
		return u.Update(ctx, s.key, func(current string, found bool) (string, error) {
			favs := []Favorite{}
			if found {
				favs = s.decode(current)
			}
			next, err := fn(favs)
			if err != nil {
				return "", err
			}
			return encode(next)
		})
	}

	next, err := fn(s.read(ctx))
	if err != nil {
		return err
	}
	raw, err := encode(next)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, raw)
}

// List returns the saved favorites in the order they were added. It never
// fails; unreadable storage yields an empty list.
func (s *Store) List(ctx context.Context) []Favorite {
	return s.read(ctx)
}

// ListIDs returns the saved property ids in the order they were added.
func (s *Store) ListIDs(ctx context.Context) []string {
	favs := s.List(ctx)
	ids := make([]string, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.PropertyID)
	}
	return ids
}

// IDSet returns the saved property ids as a set for membership checks.
func (s *Store) IDSet(ctx context.Context) map[string]struct{} {
	ids := s.ListIDs(ctx)
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// IsFavorite reports whether propertyID is saved.
func (s *Store) IsFavorite(ctx context.Context, propertyID string) bool {
	_, ok := s.IDSet(ctx)[propertyID]
	return ok
}

// Count returns the number of saved favorites.
func (s *Store) Count(ctx context.Context) int {
	return len(s.List(ctx))
}

// Get returns the favorite record for propertyID.
func (s *Store) Get(ctx context.Context, propertyID string) (Favorite, error) {
	favs := s.List(ctx)
	if i := indexOf(favs, propertyID); i >= 0 {
		return favs[i], nil
	}
	return Favorite{}, fmt.Errorf("%w: %s", ErrFavoriteNotFound, propertyID)
}

// Add saves propertyID with the current time.
func (s *Store) Add(ctx context.Context, propertyID string) (Favorite, error) {
	log := s.log.WithFields(logger.Fields{"use_case": "AddFavorite", "property_id": propertyID})
	log.Debug("Use case started", nil)

	fav := Favorite{PropertyID: propertyID, SavedDate: s.now().UTC()}
	err := s.mutate(ctx, func(favs []Favorite) ([]Favorite, error) {
		if indexOf(favs, propertyID) >= 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFavorite, propertyID)
		}
		return append(favs, fav), nil
	})
	if err != nil {
		if !errors.Is(err, ErrDuplicateFavorite) {
			log.Error("Failed to add favorite", err, nil)
		}
		return Favorite{}, err
	}

	log.Debug("Use case finished successfully", nil)
	s.notify()
	return fav, nil
}

// Remove deletes propertyID and returns the removed record.
func (s *Store) Remove(ctx context.Context, propertyID string) (Favorite, error) {
	log := s.log.WithFields(logger.Fields{"use_case": "RemoveFavorite", "property_id": propertyID})
	log.Debug("Use case started", nil)

	var removed Favorite
	err := s.mutate(ctx, func(favs []Favorite) ([]Favorite, error) {
		i := indexOf(favs, propertyID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrFavoriteNotFound, propertyID)
		}
		removed = favs[i]
		return append(favs[:i], favs[i+1:]...), nil
	})
	if err != nil {
		if !errors.Is(err, ErrFavoriteNotFound) {
			log.Error("Failed to remove favorite", err, nil)
		}
		return Favorite{}, err
	}

	log.Debug("Use case finished successfully", nil)
	s.notify()
	return removed, nil
}

// Clear drops every favorite by deleting the storage key.
func (s *Store) Clear(ctx context.Context) error {
	log := s.log.WithFields(logger.Fields{"use_case": "ClearFavorites"})
	log.Debug("Use case started", nil)

	s.mu.Lock()
	err := s.kv.Delete(ctx, s.key)
	s.mu.Unlock()
	if err != nil {
		log.Error("Failed to clear favorites", err, nil)
		return fmt.Errorf("clear favorites: %w", err)
	}

	log.Debug("Use case finished successfully", nil)
	s.notify()
	return nil
}
