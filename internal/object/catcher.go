package object

// Catcher is the player-controlled bucket. Its X comes from one of two
// update paths: snapping to a lane, or free dragging. The later write wins.
type Catcher struct {
	grid LaneGrid
	lane int     // Always within [0, grid.Len()-1]
	x    float64 // Current horizontal position
}

// NewCatcher places the catcher on the given lane (clamped to the grid).
func NewCatcher(grid LaneGrid, lane int) *Catcher {
	c := &Catcher{grid: grid}
	c.snap(grid.Clamp(lane))
	return c
}

// MoveByLane moves the catcher delta lanes, clamped to the grid edges,
// and snaps X to the new lane.
func (c *Catcher) MoveByLane(delta int) {
	c.snap(c.grid.Clamp(c.lane + delta))
}

// MoveFree offsets X by dx without touching the lane index.
func (c *Catcher) MoveFree(dx float64) {
	c.x += dx
}

// Lane returns the current lane index.
func (c *Catcher) Lane() int {
	return c.lane
}

// X returns the current horizontal position.
func (c *Catcher) X() float64 {
	return c.x
}

func (c *Catcher) snap(lane int) {
	c.lane = lane
	// lane is already clamped, so Position cannot fail.
	c.x, _ = c.grid.Position(lane)
}
