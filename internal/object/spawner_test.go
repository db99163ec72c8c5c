package object

import (
	"math"
	"testing"
)

func TestSpawnSchedulerFiresEveryPeriod(t *testing.T) {
	s := NewSpawnScheduler()
	s.Start()

	s.Advance(0.6)
	if s.Fire() {
		t.Fatal("fired before the first period elapsed")
	}
	s.Advance(0.4)
	if !s.Fire() {
		t.Fatal("did not fire after one period")
	}
	if s.Fire() {
		t.Fatal("fired twice for one period")
	}

	s.Advance(2.5)
	fires := 0
	for s.Fire() {
		fires++
	}
	if fires != 2 {
		t.Fatalf("fires = %d after 2.5 periods, want 2", fires)
	}
}

func TestSpawnSchedulerNotStarted(t *testing.T) {
	s := NewSpawnScheduler()
	s.Advance(10)
	if s.Fire() {
		t.Fatal("unarmed scheduler fired")
	}
}

func TestSpawnSchedulerReschedule(t *testing.T) {
	tests := []struct {
		total       int
		rescheduled bool
		period      float64
	}{
		{total: 1, rescheduled: false, period: 1},
		{total: 9, rescheduled: false, period: 1},
		{total: 10, rescheduled: true, period: 1},
		{total: 20, rescheduled: true, period: 0.5},
		{total: 25, rescheduled: false, period: 0.5},
		{total: 30, rescheduled: true, period: 1.0 / 3},
		{total: 100, rescheduled: true, period: 0.1},
	}

	s := NewSpawnScheduler()
	s.Start()
	for _, tt := range tests {
		s.Advance(0.05)
		got := s.Reschedule(tt.total)
		if got != tt.rescheduled {
			t.Errorf("Reschedule(%d) = %v, want %v", tt.total, got, tt.rescheduled)
		}
		if math.Abs(s.Period()-tt.period) > 1e-9 {
			t.Errorf("after Reschedule(%d): period = %v, want %v", tt.total, s.Period(), tt.period)
		}
	}
}

func TestSpawnSchedulerRescheduleRestartsTimer(t *testing.T) {
	s := NewSpawnScheduler()
	s.Start()
	s.Advance(0.9)
	s.Reschedule(20)
	s.Advance(0.4)
	if s.Fire() {
		t.Fatal("fired before the new period elapsed from the reschedule")
	}
	s.Advance(0.2)
	if !s.Fire() {
		t.Fatal("did not fire after the new period")
	}
}

func TestSpawnSchedulerStopIsIdempotent(t *testing.T) {
	s := NewSpawnScheduler()
	s.Start()
	s.Advance(5)
	s.Stop()
	s.Stop()
	if !s.Stopped() {
		t.Fatal("Stopped() = false after Stop")
	}
	if s.Fire() {
		t.Fatal("fired after Stop even though a fire was due")
	}
	s.Start()
	s.Advance(5)
	if s.Fire() || s.Running() {
		t.Fatal("Start re-armed a stopped scheduler")
	}
}

func TestSpeedLevel(t *testing.T) {
	for total := 0; total <= 60; total++ {
		if got, want := SpeedLevel(total), total/5; got != want {
			t.Fatalf("SpeedLevel(%d) = %d, want %d", total, got, want)
		}
	}
}

func TestPickLaneInRange(t *testing.T) {
	r := seqRand{vals: []int{0, 4, 2}}
	for _, want := range []int{0, 4, 2} {
		if got := PickLane(&r, 5); got != want {
			t.Fatalf("PickLane = %d, want %d", got, want)
		}
	}
}

// seqRand returns scripted values modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}
