package object

import (
	"io"

	"github.com/tomz197/eggcatch/internal/draw"
)

// Popup is a floating text label (e.g. "+1") that rises and expires.
type Popup struct {
	X, Y     float64 // World position
	Value    string
	Color    string  // SGR sequence, empty for the terminal default
	Lifetime float64 // Seconds remaining
	Rise     float64 // World units per second
}

// NewPopup creates a popup at a world position.
func NewPopup(x, y float64, value string) *Popup {
	return &Popup{X: x, Y: y, Value: value, Color: draw.ColorYellow, Lifetime: 0.8, Rise: 120}
}

// Update moves the popup up and counts down its lifetime.
func (t *Popup) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()
	t.Lifetime -= dt
	if t.Lifetime <= 0 {
		return true, nil
	}
	t.Y += t.Rise * dt
	return false, nil
}

// Draw writes the text at its terminal position. Call it after the canvas
// has been rendered for the frame.
func (t *Popup) Draw(ctx DrawContext) error {
	if t.Value == "" || ctx.Writer == nil {
		return nil
	}
	pos := ctx.Field.ToView(t.X, t.Y, ctx.View)
	col, row := ctx.Canvas.LogicalToTerminal(pos.X, pos.Y)
	col -= len(t.Value) / 2
	if col < 1 || row < 1 || col+len(t.Value) > ctx.Canvas.TerminalWidth() || row > ctx.Canvas.TerminalHeight() {
		return nil
	}
	// Repaint the cells next frame so the label does not trail behind.
	ctx.Canvas.MarkTextDirty(col, row, len(t.Value))
	if cw, ok := ctx.Writer.(textWriter); ok {
		cw.WriteColoredAt(col, row, t.Color, t.Value)
		return nil
	}
	draw.MoveCursor(ctx.Writer, col, row)
	_, err := io.WriteString(ctx.Writer, t.Color+t.Value+draw.ColorReset)
	return err
}

// textWriter is satisfied by draw.ChunkWriter, which applies the canvas offset.
type textWriter interface {
	WriteColoredAt(col, row int, color, s string)
}
