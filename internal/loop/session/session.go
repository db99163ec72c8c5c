// Package session composes the simulation entities into one playable
// catch game and exposes its boundary: Tick, OnCatch, the move commands
// and a read-only Snapshot.
//
// A Session is not safe for concurrent use. Hosts drive it from a single
// goroutine (see the server package).
package session

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/eggcatch/internal/object"
)

// Layout is the fixed playfield geometry a session is started with.
type Layout struct {
	Lanes      []float64 // X of each spawn source, in order
	SpawnY     float64   // Height eggs start falling from
	LowerBound float64   // Eggs below this height are missed
}

// State holds the session counters.
type State struct {
	Score        int
	ItemsSpawned int
	SpeedLevel   int
	GameOver     bool
}

// Snapshot is an immutable view of a session for rendering.
type Snapshot struct {
	Score        int
	SpeedLevel   int
	Lives        int
	MaxLives     int
	Combo        int
	GameOver     bool
	Items        []object.Egg
	CatcherX     float64
	CatcherLane  int
	ItemsSpawned int
	SpawnPeriod  float64
}

// Session is one game from first egg to game over.
type Session struct {
	layout    Layout
	grid      object.LaneGrid
	state     State
	scheduler *object.SpawnScheduler
	items     *object.ItemSet
	catcher   *object.Catcher
	lives     *object.LifeTracker
	rng       object.Rand
	logger    *log.Logger
	events    []Event
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the lane picker. Defaults to a time-seeded math/rand source.
func WithRand(r object.Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// WithLogger sets the logger used for session lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New builds a session from a layout and starts it: the first egg is spawned
// immediately and the spawn timer is armed.
func New(layout Layout, opts ...Option) (*Session, error) {
	grid, err := object.NewLaneGrid(layout.Lanes)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if layout.LowerBound >= layout.SpawnY {
		return nil, fmt.Errorf("new session: lower bound %.0f not below spawn height %.0f: %w",
			layout.LowerBound, layout.SpawnY, object.ErrInvalidConfiguration)
	}

	s := &Session{
		layout:    layout,
		grid:      grid,
		scheduler: object.NewSpawnScheduler(),
		items:     object.NewItemSet(),
		catcher:   object.NewCatcher(grid, grid.Len()/2),
		lives:     object.NewLifeTracker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.spawn()
	s.scheduler.Start()
	return s, nil
}

// Tick advances the simulation by dt: eggs fall, eggs below the lower bound
// are resolved as misses, then the spawn timer runs. Eggs spawned here are
// not culled until the next tick.
func (s *Session) Tick(dt time.Duration) {
	if s.state.GameOver {
		return
	}
	secs := dt.Seconds()

	s.items.Advance(secs, s.state.SpeedLevel)
	for _, egg := range s.items.Cull(s.layout.LowerBound) {
		if s.miss(egg) {
			break
		}
	}

	s.scheduler.Advance(secs)
	for s.scheduler.Fire() {
		s.spawn()
	}
}

// miss resolves one missed egg and reports whether it ended the session.
// Only the miss that ends the session is processed; eggs culled alongside
// it are discarded with the rest of the field.
func (s *Session) miss(egg *object.Egg) bool {
	s.emit(Event{Type: EventMissed, Egg: *egg})

	last := s.lives.Lives() <= 1
	if !s.lives.ApplyMiss() {
		s.logger.Error("miss with no lives left", "egg", egg.ID)
	}
	s.emit(Event{Type: EventLifeLost, Egg: *egg})
	if !last {
		return false
	}

	s.scheduler.Stop()
	s.items.RemoveAll()
	s.state.GameOver = true
	s.emit(Event{Type: EventGameOver})
	s.logger.Info("game over", "score", s.state.Score, "spawned", s.state.ItemsSpawned)
	return true
}

// spawn creates one egg in a random lane and applies the speed and rate steps.
func (s *Session) spawn() {
	lane := object.PickLane(s.rng, s.grid.Len())
	x, _ := s.grid.Position(lane)
	egg := s.items.Add(lane, x, s.layout.SpawnY)

	s.state.ItemsSpawned++
	s.state.SpeedLevel = object.SpeedLevel(s.state.ItemsSpawned)
	s.emit(Event{Type: EventSpawned, Egg: *egg})

	if s.scheduler.Reschedule(s.state.ItemsSpawned) {
		s.emit(Event{Type: EventRateChanged, Period: s.scheduler.Period()})
		s.logger.Debug("spawn rate changed", "spawned", s.state.ItemsSpawned, "period", s.scheduler.Period())
	}
}

// OnCatch resolves a catch reported by the collision layer. An unknown or
// already resolved egg returns object.ErrNotFound and changes nothing.
func (s *Session) OnCatch(id uint64) error {
	egg, err := s.items.Remove(id)
	if err != nil {
		return fmt.Errorf("catch: %w", err)
	}

	s.state.Score++
	gained := s.lives.ApplyCatch()
	s.emit(Event{Type: EventCaught, Egg: *egg})
	if gained {
		s.emit(Event{Type: EventLifeGained, Egg: *egg})
		s.logger.Debug("life regenerated", "lives", s.lives.Lives())
	}
	return nil
}

// OnMoveLane moves the bucket by delta lanes, clamped to the lane grid.
func (s *Session) OnMoveLane(delta int) {
	s.catcher.MoveByLane(delta)
}

// OnMoveFree drags the bucket horizontally by dx world units.
func (s *Session) OnMoveFree(dx float64) {
	s.catcher.MoveFree(dx)
}

// State returns the session counters.
func (s *Session) State() State {
	return s.state
}

// GameOver reports whether the session has ended.
func (s *Session) GameOver() bool {
	return s.state.GameOver
}

// Layout returns the playfield geometry.
func (s *Session) Layout() Layout {
	l := s.layout
	l.Lanes = s.grid.Positions()
	return l
}

// Snapshot returns a copy of the state a renderer needs.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Score:        s.state.Score,
		SpeedLevel:   s.state.SpeedLevel,
		Lives:        s.lives.Lives(),
		MaxLives:     s.lives.MaxLives(),
		Combo:        s.lives.Combo(),
		GameOver:     s.state.GameOver,
		Items:        s.items.Items(),
		CatcherX:     s.catcher.X(),
		CatcherLane:  s.catcher.Lane(),
		ItemsSpawned: s.state.ItemsSpawned,
		SpawnPeriod:  s.scheduler.Period(),
	}
}

// Drain returns the events queued since the last call and clears the queue.
func (s *Session) Drain() []Event {
	events := s.events
	s.events = nil
	return events
}

// emit fills the running totals and queues an event.
func (s *Session) emit(e Event) {
	e.Lives = s.lives.Lives()
	e.Combo = s.lives.Combo()
	e.Score = s.state.Score
	s.events = append(s.events, e)
}
