package object

import "testing"

func TestLifeTrackerCatchAtFullLives(t *testing.T) {
	lt := NewLifeTracker()
	for i := 0; i < 7; i++ {
		if lt.ApplyCatch() {
			t.Fatalf("catch %d gained a life at full lives", i+1)
		}
	}
	if lt.Lives() != 3 || lt.Combo() != 7 {
		t.Fatalf("lives=%d combo=%d, want 3/7", lt.Lives(), lt.Combo())
	}
}

func TestLifeTrackerMissResetsCombo(t *testing.T) {
	lt := NewLifeTracker()
	lt.ApplyCatch()
	lt.ApplyCatch()
	lt.ApplyMiss()
	if lt.Lives() != 2 || lt.Combo() != 0 || lt.RegenStreak() != 0 {
		t.Fatalf("after miss: lives=%d combo=%d regen=%d, want 2/0/0", lt.Lives(), lt.Combo(), lt.RegenStreak())
	}
}

func TestLifeTrackerRegenOnFifthCatch(t *testing.T) {
	lt := NewLifeTracker()
	lt.ApplyMiss()
	lt.ApplyMiss()
	if lt.Lives() != 1 {
		t.Fatalf("lives = %d, want 1", lt.Lives())
	}

	for i := 1; i <= 4; i++ {
		if lt.ApplyCatch() {
			t.Fatalf("life gained on catch %d", i)
		}
	}
	if !lt.ApplyCatch() {
		t.Fatal("fifth catch did not regenerate a life")
	}
	if lt.Lives() != 2 || lt.RegenStreak() != 0 || lt.Combo() != 5 {
		t.Fatalf("after regen: lives=%d regen=%d combo=%d, want 2/0/5", lt.Lives(), lt.RegenStreak(), lt.Combo())
	}

	// Five more catches fill the last slot, then nothing more.
	gains := 0
	for i := 0; i < 10; i++ {
		if lt.ApplyCatch() {
			gains++
		}
	}
	if gains != 1 || lt.Lives() != lt.MaxLives() {
		t.Fatalf("gains=%d lives=%d, want 1/%d", gains, lt.Lives(), lt.MaxLives())
	}
}

func TestLifeTrackerFloorsAtZero(t *testing.T) {
	lt := NewLifeTracker()
	for i := 0; i < 3; i++ {
		if !lt.ApplyMiss() {
			t.Fatalf("miss %d hit the floor early", i+1)
		}
	}
	if lt.ApplyMiss() {
		t.Fatal("miss at zero lives did not report the floor")
	}
	if lt.Lives() != 0 {
		t.Fatalf("lives = %d, want 0", lt.Lives())
	}
}
