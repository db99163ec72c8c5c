package object

import "github.com/tomz197/eggcatch/internal/loop/config"

// LifeTracker holds the heart economy and the combo counters.
//
// combo is the displayed combo: catches since the last miss.
// regen counts catches since the last miss or life gain and gates
// regeneration only. The tracker never decides when the game ends.
type LifeTracker struct {
	lives    int
	maxLives int
	combo    int
	regen    int
}

// NewLifeTracker creates a tracker with full lives.
func NewLifeTracker() *LifeTracker {
	return &LifeTracker{
		lives:    config.MaxLives,
		maxLives: config.MaxLives,
	}
}

// ApplyCatch records a catch. A missing life is regained on the
// RegenThreshold-th consecutive catch, which also resets the regen streak.
// It reports whether a life was gained.
func (t *LifeTracker) ApplyCatch() bool {
	t.regen++
	t.combo++
	if t.lives < t.maxLives && t.regen >= config.RegenThreshold {
		t.lives++
		t.regen = 0
		return true
	}
	return false
}

// ApplyMiss records a miss: one life lost, both counters reset.
// It reports false if lives were already at zero and the floor engaged.
func (t *LifeTracker) ApplyMiss() bool {
	t.combo = 0
	t.regen = 0
	if t.lives <= 0 {
		t.lives = 0
		return false
	}
	t.lives--
	return true
}

// Lives returns the remaining lives.
func (t *LifeTracker) Lives() int {
	return t.lives
}

// MaxLives returns the life cap.
func (t *LifeTracker) MaxLives() int {
	return t.maxLives
}

// Combo returns the catches since the last miss.
func (t *LifeTracker) Combo() int {
	return t.combo
}

// RegenStreak returns the catches counted toward the next life.
func (t *LifeTracker) RegenStreak() int {
	return t.regen
}
