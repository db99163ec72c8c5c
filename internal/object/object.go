// Package object holds the simulation entities of the catch game (lanes,
// eggs, the bucket, the spawn timer, the heart tracker) and the short-lived
// visual effects drawn on top of them.
package object

import (
	"io"
	"time"

	"github.com/tomz197/eggcatch/internal/draw"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an effect needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	Writer io.Writer    // Direct terminal output (for text)
	Field  Field        // World bounds mapped onto the view
	View   Screen       // Viewport dimensions
}

// Screen represents logical viewport dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// Field is the playfield rectangle in world units. World Y grows upward,
// view Y grows downward.
type Field struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// ToView converts world coordinates to logical view coordinates.
func (f Field) ToView(x, y float64, view Screen) draw.Point {
	w := f.MaxX - f.MinX
	h := f.MaxY - f.MinY
	if w <= 0 || h <= 0 {
		return draw.Point{}
	}
	return draw.Point{
		X: (x - f.MinX) / w * float64(view.Width),
		Y: (f.MaxY - y) / h * float64(view.Height),
	}
}

// ScaleX converts a world width to a view width.
func (f Field) ScaleX(dx float64, view Screen) float64 {
	w := f.MaxX - f.MinX
	if w <= 0 {
		return 0
	}
	return dx / w * float64(view.Width)
}

// ScaleY converts a world height to a view height.
func (f Field) ScaleY(dy float64, view Screen) float64 {
	h := f.MaxY - f.MinY
	if h <= 0 {
		return 0
	}
	return dy / h * float64(view.Height)
}

// ToWorldDX converts a view width back to a world width.
func (f Field) ToWorldDX(dx float64, view Screen) float64 {
	if view.Width <= 0 {
		return 0
	}
	return dx / float64(view.Width) * (f.MaxX - f.MinX)
}

// Object is a drawable and updatable visual effect.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for high-res shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ShouldRenderBlink returns true if something with remainingTime left on a
// blink timer should be rendered this frame.
// Returns true always if remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
