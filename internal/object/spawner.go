package object

import "github.com/tomz197/eggcatch/internal/loop/config"

// Rand is the source of lane choices. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// SpawnScheduler is the periodic spawn timer. It fires once per period and
// speeds up each time the spawn total reaches a multiple of ItemsPerRateStep.
type SpawnScheduler struct {
	period  float64 // Seconds between fires
	elapsed float64 // Seconds since the last fire or reschedule
	running bool
	stopped bool
}

// NewSpawnScheduler creates an unarmed scheduler.
func NewSpawnScheduler() *SpawnScheduler {
	return &SpawnScheduler{period: config.InitialSpawnPeriod}
}

// Start arms the timer at the initial period.
func (s *SpawnScheduler) Start() {
	if s.stopped {
		return
	}
	s.period = config.InitialSpawnPeriod
	s.elapsed = 0
	s.running = true
}

// Advance lets dt seconds pass on the timer. It is a no-op unless running.
func (s *SpawnScheduler) Advance(dt float64) {
	if !s.running {
		return
	}
	s.elapsed += dt
}

// Fire reports whether a spawn is due and, if so, consumes one period.
// Call it in a loop until it returns false.
func (s *SpawnScheduler) Fire() bool {
	if !s.running || s.elapsed < s.period {
		return false
	}
	s.elapsed -= s.period
	return true
}

// Reschedule applies the rate step for the new spawn total. When total is a
// positive multiple of ItemsPerRateStep the period becomes 1/(total/step) and
// the timer restarts; otherwise nothing changes. It reports whether the
// timer was rescheduled.
func (s *SpawnScheduler) Reschedule(total int) bool {
	if !s.running || total <= 0 || total%config.ItemsPerRateStep != 0 {
		return false
	}
	s.period = 1 / float64(total/config.ItemsPerRateStep)
	s.elapsed = 0
	return true
}

// Stop cancels the timer for good. Calling it again has no effect.
func (s *SpawnScheduler) Stop() {
	s.running = false
	s.stopped = true
	s.elapsed = 0
}

// Period returns the current spawn period in seconds.
func (s *SpawnScheduler) Period() float64 {
	return s.period
}

// Running reports whether the timer is armed.
func (s *SpawnScheduler) Running() bool {
	return s.running
}

// Stopped reports whether the timer has been cancelled for good.
func (s *SpawnScheduler) Stopped() bool {
	return s.stopped
}

// SpeedLevel returns the speed level for a spawn total.
func SpeedLevel(total int) int {
	return total / config.ItemsPerSpeedLevel
}

// PickLane draws a lane uniformly from [0, n).
func PickLane(r Rand, n int) int {
	return r.Intn(n)
}
