package rangeset

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/emirpasic/gods/v2/maps/linkedhashmap"
	"github.com/google/uuid"
	"k8s.io/apimachinery/pkg/labels"
)

var (
	ErrNotFound     = errors.New("range not found")
	ErrCollision    = errors.New("range collides with an existing range")
	ErrInvalidRange = errors.New("invalid range")
)

// RangeSet holds non overlapping ranges in insertion order.
type RangeSet interface {
	Get(id uuid.UUID) (Range, error)
	Add(r Range) (Range, error)
	Update(r Range) error
	Remove(id uuid.UUID) error
	RemoveByLabel(selector labels.Selector) []Range

	Count() int
	Has(id uuid.UUID) bool

	WouldCollide(candidate Range) bool
	Collisions(candidate Range) []Range
	Find(angle float64) (Range, bool)

	Iterate() *Iterator
	GetAll() []Range
	GetByLabel(selector labels.Selector) []Range
}

func NewRangeSet(initEntries ...Range) (RangeSet, error) {
	r := &rangeSet{
		m:      new(sync.RWMutex),
		ranges: linkedhashmap.New[uuid.UUID, Range](),
	}

	var errm error
	for _, e := range initEntries {
		if _, err := r.add(e); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return r, errm
}

type rangeSet struct {
	m      *sync.RWMutex
	ranges *linkedhashmap.Map[uuid.UUID, Range]
}

func (r *rangeSet) Get(id uuid.UUID) (Range, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.ranges.Get(id)
	if !ok {
		return Range{}, fmt.Errorf("no match found for %s: %w", id, ErrNotFound)
	}
	return e.clone(), nil
}

// Add inserts r when it does not collide with any range in the set. A range
// without ID gets a fresh one.
func (r *rangeSet) Add(e Range) (Range, error) {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(e)
}

// Update replaces the angles and labels of an existing range in place; its
// position in the iteration order is kept. No collision check is done, the
// caller owns the movement constraints.
func (r *rangeSet) Update(e Range) error {
	r.m.Lock()
	defer r.m.Unlock()

	if !e.IsValid() {
		return fmt.Errorf("lower %g above upper %g: %w", e.Lower, e.Upper, ErrInvalidRange)
	}
	if _, ok := r.ranges.Get(e.ID); !ok {
		return fmt.Errorf("update failed for %s: %w", e.ID, ErrNotFound)
	}
	r.ranges.Put(e.ID, e.clone())
	return nil
}

func (r *rangeSet) Remove(id uuid.UUID) error {
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.ranges.Get(id); !ok {
		return fmt.Errorf("release failed for %s: %w", id, ErrNotFound)
	}
	r.ranges.Remove(id)
	return nil
}

func (r *rangeSet) RemoveByLabel(selector labels.Selector) []Range {
	r.m.Lock()
	defer r.m.Unlock()

	removed := r.getByLabel(selector)
	for _, e := range removed {
		r.ranges.Remove(e.ID)
	}
	return removed
}

func (r *rangeSet) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.ranges.Size()
}

func (r *rangeSet) Has(id uuid.UUID) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.ranges.Get(id)
	return ok
}

func (r *rangeSet) WouldCollide(candidate Range) bool {
	return len(r.Collisions(candidate)) != 0
}

// Collisions returns the ranges, other than the candidate itself, that the
// candidate collides with.
func (r *rangeSet) Collisions(candidate Range) []Range {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.collisions(candidate)
}

// Find returns the first range, in insertion order, containing angle.
func (r *rangeSet) Find(angle float64) (Range, bool) {
	r.m.RLock()
	defer r.m.RUnlock()

	for _, e := range r.ranges.Values() {
		if e.Contains(angle) {
			return e.clone(), true
		}
	}
	return Range{}, false
}

func (r *rangeSet) Iterate() *Iterator {
	r.m.RLock()
	defer r.m.RUnlock()

	return &Iterator{current: -1, ranges: r.values()}
}

func (r *rangeSet) GetAll() []Range {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.values()
}

// values returns a snapshot of the ranges in insertion order, detached from
// the stored labels.
func (r *rangeSet) values() []Range {
	entries := r.ranges.Values()
	for i := range entries {
		entries[i] = entries[i].clone()
	}
	return entries
}

func (r *rangeSet) GetByLabel(selector labels.Selector) []Range {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.getByLabel(selector)
}

func (r *rangeSet) getByLabel(selector labels.Selector) []Range {
	var entries []Range
	for _, e := range r.ranges.Values() {
		if selector.Matches(e.Labels) {
			entries = append(entries, e.clone())
		}
	}
	return entries
}

func (r *rangeSet) add(e Range) (Range, error) {
	if !e.IsValid() {
		return Range{}, fmt.Errorf("lower %g above upper %g: %w", e.Lower, e.Upper, ErrInvalidRange)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if _, ok := r.ranges.Get(e.ID); ok {
		return Range{}, fmt.Errorf("entry %s already exists: %w", e.ID, ErrInvalidRange)
	}
	if c := r.collisions(e); len(c) != 0 {
		return Range{}, fmt.Errorf("range [%g-%g] overlaps %s: %w", e.Lower, e.Upper, c[0], ErrCollision)
	}
	r.ranges.Put(e.ID, e.clone())
	return e, nil
}

func (r *rangeSet) collisions(candidate Range) []Range {
	var hits []Range
	for _, e := range r.ranges.Values() {
		if e.ID == candidate.ID {
			continue
		}
		if e.Collides(candidate) {
			hits = append(hits, e.clone())
		}
	}
	return hits
}

func (r Range) clone() Range {
	r.Labels = maps.Clone(r.Labels)
	return r
}
