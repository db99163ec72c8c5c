package object

import (
	"math"
	"math/rand"
	"sync"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// splashGravity pulls yolk particles back down, in world units per second².
const splashGravity = 900.0

// Particle is a short-lived visual effect in world space.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Gravity     float64 // Downward acceleration
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Fade        bool    // Whether to fade out over lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Gravity = 0
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnSplash bursts yolk upward from a broken egg at (x, y).
func SpawnSplash(x, y float64, count int, spawner Spawner) {
	if spawner == nil {
		return
	}
	for i := 0; i < count; i++ {
		// Upper half-circle, slightly wider than straight up
		angle := math.Pi/6 + rand.Float64()*math.Pi*2/3
		spd := 150.0 + rand.Float64()*200.0
		life := 0.4 + rand.Float64()*0.4

		p := NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life)
		p.Gravity = splashGravity
		p.Drag = 0.98
		spawner.Spawn(p)
	}
}

// SpawnSparkle creates a small ring of particles around a caught egg.
func SpawnSparkle(x, y float64, count int, spawner Spawner) {
	if spawner == nil {
		return
	}
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		spd := 60.0 + rand.Float64()*60.0
		life := 0.2 + rand.Float64()*0.2

		p := NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life)
		p.Drag = 0.85
		spawner.Spawn(p)
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor
	p.VY -= p.Gravity * dt

	p.X += p.VX * dt
	p.Y += p.VY * dt

	return false, nil
}

// Draw renders the particle as a pixel on the canvas.
func (p *Particle) Draw(ctx DrawContext) error {
	// Skip faded particles (< 25% lifetime)
	if p.Fade && p.MaxLifetime > 0 {
		if p.Lifetime/p.MaxLifetime < 0.25 {
			return nil
		}
	}

	pos := ctx.Field.ToView(p.X, p.Y, ctx.View)
	ctx.Canvas.SetFloat(pos.X, pos.Y)
	return nil
}
