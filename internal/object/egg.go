package object

import (
	"fmt"
	"slices"

	"github.com/tomz197/eggcatch/internal/loop/config"
)

// Egg is a falling item. Y decreases as it falls.
type Egg struct {
	ID   uint64  // Unique per session, increasing in creation order
	Lane int     // Lane it fell from
	X    float64 // Lane X position, fixed for the egg's lifetime
	Y    float64 // Current height
}

// FallSpeed returns the fall speed in units per second for a speed level.
func FallSpeed(speedLevel int) float64 {
	return config.BaseFallSpeed + float64(speedLevel)*config.SpeedBonus
}

// ItemSet owns the active eggs, kept in creation order.
type ItemSet struct {
	eggs   []*Egg
	nextID uint64
}

// NewItemSet creates an empty item set. The first egg gets ID 1.
func NewItemSet() *ItemSet {
	return &ItemSet{nextID: 1}
}

// Add creates an egg at the given lane and height.
func (s *ItemSet) Add(lane int, x, y float64) *Egg {
	egg := &Egg{ID: s.nextID, Lane: lane, X: x, Y: y}
	s.nextID++
	s.eggs = append(s.eggs, egg)
	return egg
}

// Len returns the number of active eggs.
func (s *ItemSet) Len() int {
	return len(s.eggs)
}

// Get returns the active egg with the given ID.
func (s *ItemSet) Get(id uint64) (*Egg, bool) {
	for _, egg := range s.eggs {
		if egg.ID == id {
			return egg, true
		}
	}
	return nil, false
}

// Items returns a copy of every active egg in creation order.
func (s *ItemSet) Items() []Egg {
	out := make([]Egg, len(s.eggs))
	for i, egg := range s.eggs {
		out[i] = *egg
	}
	return out
}

// Advance moves every egg down by the fall speed of speedLevel over dt seconds.
func (s *ItemSet) Advance(dt float64, speedLevel int) {
	step := FallSpeed(speedLevel) * dt
	for _, egg := range s.eggs {
		egg.Y -= step
	}
}

// Cull removes and returns every egg below lowerBound, oldest first.
func (s *ItemSet) Cull(lowerBound float64) []*Egg {
	var culled []*Egg
	kept := s.eggs[:0] // reuse backing array
	for _, egg := range s.eggs {
		if egg.Y < lowerBound {
			culled = append(culled, egg)
		} else {
			kept = append(kept, egg)
		}
	}
	clear(s.eggs[len(kept):])
	s.eggs = kept
	return culled
}

// Remove removes a single egg, typically because it was caught.
func (s *ItemSet) Remove(id uint64) (*Egg, error) {
	for i, egg := range s.eggs {
		if egg.ID == id {
			s.eggs = slices.Delete(s.eggs, i, i+1)
			return egg, nil
		}
	}
	return nil, fmt.Errorf("egg %d: %w", id, ErrNotFound)
}

// RemoveAll clears the set and returns the eggs that were active.
func (s *ItemSet) RemoveAll() []*Egg {
	removed := s.eggs
	s.eggs = nil
	return removed
}
