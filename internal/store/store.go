// Package store provides the authoritative point collection and its
// SQLite-backed repository.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/fh2207/waveview/internal/events"
	"github.com/fh2207/waveview/internal/point"
)

// Store errors.
var (
	ErrPointNotFound  = errors.New("point not found")
	ErrDuplicatePoint = errors.New("point with this ID already exists")
)

// SourceName identifies store-originated events on the bus.
const SourceName = "store"

// UpdateOptions carries the fields of a point to change. Nil fields are
// left untouched.
type UpdateOptions struct {
	Time      *float64
	Editable  *bool
	Color     *string
	LabelText *string
}

// Store is the in-memory authoritative point collection. Mutations publish
// the corresponding points.* notification on the bus so attached views can
// reconcile their markers.
type Store struct {
	mu     sync.RWMutex
	points map[string]*point.Point
	bus    *events.Bus
}

// New creates an empty store publishing to the given bus.
func New(bus *events.Bus) *Store {
	return &Store{
		points: make(map[string]*point.Point),
		bus:    bus,
	}
}

// Add inserts points into the collection and publishes points.add.
// Returns ErrDuplicatePoint if any ID is already present; in that case no
// point is inserted.
func (s *Store) Add(points ...*point.Point) error {
	s.mu.Lock()
	for _, p := range points {
		if err := p.Validate(); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("invalid point: %w", err)
		}
		if _, exists := s.points[p.ID]; exists {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrDuplicatePoint, p.ID)
		}
	}
	for _, p := range points {
		s.points[p.ID] = p
	}
	s.mu.Unlock()

	if len(points) > 0 {
		s.bus.Publish(&point.Event{
			Type:   point.EventPointsAdd,
			Source: SourceName,
			Points: points,
		})
	}
	return nil
}

// Update changes fields of an existing point and publishes points.update.
func (s *Store) Update(id string, opts UpdateOptions) error {
	s.mu.Lock()
	p, ok := s.points[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPointNotFound, id)
	}
	if opts.Time != nil {
		p.SetTime(*opts.Time)
	}
	if opts.Editable != nil {
		p.Editable = *opts.Editable
	}
	if opts.Color != nil {
		p.Color = *opts.Color
	}
	if opts.LabelText != nil {
		p.LabelText = *opts.LabelText
	}
	s.mu.Unlock()

	s.bus.Publish(&point.Event{
		Type:   point.EventPointsUpdate,
		Source: SourceName,
		Point:  p,
	})
	return nil
}

// Remove deletes points by ID and publishes points.remove for the ones that
// existed. Unknown IDs are skipped.
func (s *Store) Remove(ids ...string) {
	s.mu.Lock()
	var removed []*point.Point
	for _, id := range ids {
		if p, ok := s.points[id]; ok {
			removed = append(removed, p)
			delete(s.points, id)
		}
	}
	s.mu.Unlock()

	if len(removed) > 0 {
		s.bus.Publish(&point.Event{
			Type:   point.EventPointsRemove,
			Source: SourceName,
			Points: removed,
		})
	}
}

// RemoveAll clears the collection and publishes points.remove_all.
func (s *Store) RemoveAll() {
	s.mu.Lock()
	s.points = make(map[string]*point.Point)
	s.mu.Unlock()

	s.bus.Publish(&point.Event{
		Type:   point.EventPointsRemoveAll,
		Source: SourceName,
	})
}

// Find returns all points visible in the half-open window
// [startTime, endTime). Order is unspecified; the result may be empty.
func (s *Store) Find(startTime, endTime float64) []*point.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*point.Point
	for _, p := range s.points {
		if p.Visible(startTime, endTime) {
			out = append(out, p)
		}
	}
	return out
}

// Get returns the point with the given ID, or nil.
func (s *Store) Get(id string) *point.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.points[id]
}

// All returns every point sorted by time.
func (s *Store) All() []*point.Point {
	s.mu.RLock()
	out := make([]*point.Point, 0, len(s.points))
	for _, p := range s.points {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// Len returns the number of points in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}
