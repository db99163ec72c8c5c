package object

import "fmt"

// LaneGrid is the fixed, ordered table of lane X positions.
// It is built once when a session starts and never changes afterwards.
type LaneGrid struct {
	xs []float64
}

// NewLaneGrid captures the X position of each spawn source, in order.
func NewLaneGrid(xs []float64) (LaneGrid, error) {
	if len(xs) == 0 {
		return LaneGrid{}, fmt.Errorf("lane grid needs at least one lane: %w", ErrInvalidConfiguration)
	}
	lanes := make([]float64, len(xs))
	copy(lanes, xs)
	return LaneGrid{xs: lanes}, nil
}

// Len returns the number of lanes.
func (g LaneGrid) Len() int {
	return len(g.xs)
}

// Position returns the X coordinate of the given lane.
func (g LaneGrid) Position(lane int) (float64, error) {
	if lane < 0 || lane >= len(g.xs) {
		return 0, fmt.Errorf("lane %d of %d: %w", lane, len(g.xs), ErrOutOfRange)
	}
	return g.xs[lane], nil
}

// Positions returns a copy of the lane table.
func (g LaneGrid) Positions() []float64 {
	out := make([]float64, len(g.xs))
	copy(out, g.xs)
	return out
}

// Clamp limits a lane index to [0, Len()-1].
func (g LaneGrid) Clamp(lane int) int {
	if lane < 0 {
		return 0
	}
	if lane >= len(g.xs) {
		return len(g.xs) - 1
	}
	return lane
}
