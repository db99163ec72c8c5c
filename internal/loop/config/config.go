// Package config centralizes all tunable game parameters.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Max render resolution - terminals larger than this get a centered, bordered play area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Lives
const (
	MaxLives       = 3
	RegenThreshold = 5 // Consecutive catches needed to regain a missing life
)

// Falling
const (
	BaseFallSpeed = 200.0 // World units per second at speed level 0
	SpeedBonus    = 50.0  // Extra units per second for each speed level
	LowerBound    = -600.0
)

// Spawning
const (
	InitialSpawnPeriod = 1.0 // Seconds between spawns until the first rate step
	ItemsPerSpeedLevel = 5   // Spawns per speed level
	ItemsPerRateStep   = 10  // Spawns between spawn-rate reschedules
)

// Collision boxes in world units (the bucket is wider than an egg).
const (
	EggWidth     = 40.0
	EggHeight    = 50.0
	BucketWidth  = 90.0
	BucketHeight = 60.0
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)
