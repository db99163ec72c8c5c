package session

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomz197/eggcatch/internal/object"
)

// fixedRand always picks the same lane.
type fixedRand int

func (r fixedRand) Intn(n int) int { return int(r) % n }

var testLayout = Layout{
	Lanes:      []float64{-200, -100, 0, 100, 200},
	SpawnY:     400,
	LowerBound: -600,
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(testLayout, WithRand(fixedRand(2)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// catchAll catches every active egg, like a perfect player.
func catchAll(t *testing.T, s *Session) {
	t.Helper()
	for _, egg := range s.Snapshot().Items {
		if err := s.OnCatch(egg.ID); err != nil {
			t.Fatalf("OnCatch(%d): %v", egg.ID, err)
		}
	}
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestNewInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
	}{
		{name: "no lanes", layout: Layout{SpawnY: 400, LowerBound: -600}},
		{name: "bound above spawn", layout: Layout{Lanes: []float64{0}, SpawnY: -700, LowerBound: -600}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.layout); !errors.Is(err, object.ErrInvalidConfiguration) {
				t.Fatalf("New error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestNewSpawnsFirstEgg(t *testing.T) {
	s := newTestSession(t)
	snap := s.Snapshot()

	if len(snap.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(snap.Items))
	}
	egg := snap.Items[0]
	if egg.Lane != 2 || egg.X != 0 || egg.Y != 400 {
		t.Fatalf("first egg = %+v, want lane 2 at (0, 400)", egg)
	}
	if snap.ItemsSpawned != 1 || snap.SpawnPeriod != 1 {
		t.Fatalf("spawned=%d period=%v, want 1/1", snap.ItemsSpawned, snap.SpawnPeriod)
	}
	if snap.CatcherLane != 2 || snap.CatcherX != 0 {
		t.Fatalf("catcher lane=%d x=%v, want centre lane", snap.CatcherLane, snap.CatcherX)
	}
	if snap.Lives != 3 || snap.Score != 0 || snap.GameOver {
		t.Fatalf("unexpected start state %+v", snap)
	}
	if got := countEvents(s.Drain(), EventSpawned); got != 1 {
		t.Fatalf("spawn events = %d, want 1", got)
	}
}

func TestFiveCatchesAtFullLives(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < 5; i++ {
		if i > 0 {
			s.Tick(time.Second)
		}
		snap := s.Snapshot()
		if len(snap.Items) != 1 {
			t.Fatalf("round %d: items = %d, want 1", i, len(snap.Items))
		}
		livesBefore := snap.Lives
		if err := s.OnCatch(snap.Items[0].ID); err != nil {
			t.Fatalf("OnCatch: %v", err)
		}
		after := s.Snapshot()
		if after.Score != snap.Score+1 {
			t.Fatalf("score %d -> %d, want +1", snap.Score, after.Score)
		}
		if after.Lives < livesBefore {
			t.Fatalf("catch lowered lives %d -> %d", livesBefore, after.Lives)
		}
	}

	snap := s.Snapshot()
	if snap.Lives != 3 || snap.Combo != 5 || snap.Score != 5 {
		t.Fatalf("lives=%d combo=%d score=%d, want 3/5/5", snap.Lives, snap.Combo, snap.Score)
	}
}

func TestOnCatchUnknownDoesNotMutate(t *testing.T) {
	s := newTestSession(t)
	s.Drain()
	before := s.Snapshot()

	if err := s.OnCatch(9999); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("OnCatch error = %v, want ErrNotFound", err)
	}

	after := s.Snapshot()
	if after.Score != before.Score || after.Combo != before.Combo || len(after.Items) != len(before.Items) {
		t.Fatalf("state changed: before %+v after %+v", before, after)
	}
	if len(s.Drain()) != 0 {
		t.Fatal("failed catch queued events")
	}
}

func TestMissCostsLifeAndResetsCombo(t *testing.T) {
	s := newTestSession(t)
	first := s.Snapshot().Items[0].ID
	if err := s.OnCatch(first); err != nil {
		t.Fatalf("OnCatch: %v", err)
	}
	s.Tick(time.Second) // second egg spawns
	s.Drain()

	// 400 - 200*5.5 = -700: the second egg falls through the bound.
	s.Tick(5500 * time.Millisecond)

	snap := s.Snapshot()
	if snap.Lives != 2 || snap.Combo != 0 {
		t.Fatalf("lives=%d combo=%d, want 2/0", snap.Lives, snap.Combo)
	}
	events := s.Drain()
	if countEvents(events, EventMissed) != 1 || countEvents(events, EventLifeLost) != 1 {
		t.Fatalf("events = %+v, want one miss and one life lost", events)
	}
}

func TestRegenAfterMiss(t *testing.T) {
	s := newTestSession(t)

	// Let the first egg fall out: lives 3 -> 2.
	s.Tick(6 * time.Second)
	if got := s.Snapshot().Lives; got != 2 {
		t.Fatalf("lives = %d, want 2", got)
	}
	s.Drain()

	// Catch five eggs: the fifth brings the life back.
	caught := 0
	for caught < 5 {
		for _, egg := range s.Snapshot().Items {
			if caught == 5 {
				break
			}
			if err := s.OnCatch(egg.ID); err != nil {
				t.Fatalf("OnCatch: %v", err)
			}
			caught++
		}
		if caught < 5 {
			s.Tick(time.Second)
		}
	}

	snap := s.Snapshot()
	if snap.Lives != 3 {
		t.Fatalf("lives = %d after five catches, want 3", snap.Lives)
	}
	if got := countEvents(s.Drain(), EventLifeGained); got != 1 {
		t.Fatalf("life gained events = %d, want 1", got)
	}
}

func TestGameOverOnLastLife(t *testing.T) {
	s := newTestSession(t)

	// First egg drops: lives 2. Six more eggs spawn during the same tick.
	s.Tick(6 * time.Second)
	if got := s.Snapshot().Lives; got != 2 {
		t.Fatalf("lives = %d, want 2", got)
	}
	// Two more drops in one tick: the first costs a life, the second ends the game.
	s.Tick(6 * time.Second)

	snap := s.Snapshot()
	if !snap.GameOver {
		t.Fatal("game not over")
	}
	if snap.Lives != 0 {
		t.Fatalf("lives = %d, want 0", snap.Lives)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("items = %d after game over, want 0", len(snap.Items))
	}

	spawned := snap.ItemsSpawned
	for i := 0; i < 10; i++ {
		s.Tick(time.Second)
	}
	after := s.Snapshot()
	if after.ItemsSpawned != spawned || len(after.Items) != 0 {
		t.Fatalf("spawned %d -> %d, items %d after game over", spawned, after.ItemsSpawned, len(after.Items))
	}

	if got := countEvents(s.Drain(), EventGameOver); got != 1 {
		t.Fatalf("game over events = %d, want 1", got)
	}
	if err := s.OnCatch(1); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("catch after game over error = %v, want ErrNotFound", err)
	}
}

func TestGameOverStopsMissScan(t *testing.T) {
	s := newTestSession(t)
	s.Tick(6 * time.Second) // lives 3 -> 2
	s.Tick(100 * time.Millisecond)
	s.Drain()

	// Many eggs cross the bound together. Lives 2 -> 1 -> game over,
	// and no further miss is processed.
	s.Tick(10 * time.Second)

	events := s.Drain()
	if got := countEvents(events, EventMissed); got != 2 {
		t.Fatalf("missed events = %d, want 2", got)
	}
	if got := countEvents(events, EventGameOver); got != 1 {
		t.Fatalf("game over events = %d, want 1", got)
	}
}

func TestSpeedLevelTracksSpawns(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 600 && s.Snapshot().ItemsSpawned < 45; i++ {
		catchAll(t, s)
		s.Tick(50 * time.Millisecond)
		snap := s.Snapshot()
		if snap.SpeedLevel != snap.ItemsSpawned/5 {
			t.Fatalf("speed level %d with %d spawned", snap.SpeedLevel, snap.ItemsSpawned)
		}
	}
}

func TestSpawnPeriodSteps(t *testing.T) {
	s := newTestSession(t)
	seen := map[int]float64{}
	for i := 0; i < 4000 && s.Snapshot().ItemsSpawned < 31; i++ {
		catchAll(t, s)
		s.Tick(10 * time.Millisecond)
		snap := s.Snapshot()
		if _, ok := seen[snap.ItemsSpawned]; !ok {
			seen[snap.ItemsSpawned] = snap.SpawnPeriod
		}
	}

	for total := 1; total < 10; total++ {
		if p, ok := seen[total]; ok && p != 1 {
			t.Errorf("period with %d spawned = %v, want 1", total, p)
		}
	}
	checks := []struct {
		total  int
		period float64
	}{
		{total: 10, period: 1},
		{total: 19, period: 1},
		{total: 20, period: 0.5},
		{total: 29, period: 0.5},
		{total: 30, period: 1.0 / 3},
	}
	for _, c := range checks {
		p, ok := seen[c.total]
		if !ok {
			t.Errorf("never observed %d spawned", c.total)
			continue
		}
		if math.Abs(p-c.period) > 1e-9 {
			t.Errorf("period with %d spawned = %v, want %v", c.total, p, c.period)
		}
	}
}

func TestMoveCommands(t *testing.T) {
	s := newTestSession(t)

	s.OnMoveLane(1)
	s.OnMoveLane(1)
	s.OnMoveLane(1)
	snap := s.Snapshot()
	if snap.CatcherLane != 4 || snap.CatcherX != 200 {
		t.Fatalf("lane=%d x=%v, want 4/200", snap.CatcherLane, snap.CatcherX)
	}

	s.OnMoveFree(-25)
	snap = s.Snapshot()
	if snap.CatcherLane != 4 || snap.CatcherX != 175 {
		t.Fatalf("after drag lane=%d x=%v, want 4/175", snap.CatcherLane, snap.CatcherX)
	}

	s.OnMoveLane(-1)
	if got := s.Snapshot().CatcherX; got != 100 {
		t.Fatalf("after lane move x=%v, want 100", got)
	}
}

func TestTickSpawnsAfterCull(t *testing.T) {
	s := newTestSession(t)
	s.Tick(6 * time.Second)

	// Eggs spawned during the tick were added after the fall step.
	for _, egg := range s.Snapshot().Items {
		if egg.Y != testLayout.SpawnY {
			t.Fatalf("egg %d at %v, want spawn height %v", egg.ID, egg.Y, testLayout.SpawnY)
		}
	}
}
