package object

import (
	"bytes"
	"testing"
	"time"

	"github.com/tomz197/eggcatch/internal/draw"
)

func popupContext(w *bytes.Buffer) DrawContext {
	return DrawContext{
		Canvas: draw.NewScaledCanvas(80, 24, 80, 48),
		Writer: w,
		Field:  Field{MinX: 0, MaxX: 80, MinY: 0, MaxY: 48},
		View:   Screen{Width: 80, Height: 48, CenterX: 40, CenterY: 24},
	}
}

func TestPopupRisesAndExpires(t *testing.T) {
	p := NewPopup(10, 20, "+1")

	remove, err := p.Update(UpdateContext{Delta: 500 * time.Millisecond})
	if err != nil || remove {
		t.Fatalf("Update = %v, %v; want false, nil", remove, err)
	}
	if p.Y != 80 {
		t.Fatalf("Y = %v after 0.5s, want 80", p.Y)
	}

	remove, _ = p.Update(UpdateContext{Delta: 400 * time.Millisecond})
	if !remove {
		t.Fatal("popup still alive after its lifetime")
	}
}

func TestPopupDrawColored(t *testing.T) {
	var buf bytes.Buffer
	p := NewPopup(40, 24, "+1")
	if err := p.Draw(popupContext(&buf)); err != nil {
		t.Fatal(err)
	}
	want := "\033[13;40H" + draw.ColorYellow + "+1" + draw.ColorReset
	if got := buf.String(); got != want {
		t.Fatalf("Draw wrote %q, want %q", got, want)
	}
}

func TestPopupDrawOffScreen(t *testing.T) {
	var buf bytes.Buffer
	p := NewPopup(40, 100, "+1")
	if err := p.Draw(popupContext(&buf)); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("off-screen popup wrote %q", buf.String())
	}
}

func TestShouldRenderBlink(t *testing.T) {
	tests := []struct {
		remaining float64
		want      bool
	}{
		{0, true},
		{-1, true},
		{0.05, false},
		{0.15, true},
		{0.25, false},
	}
	for _, tt := range tests {
		if got := ShouldRenderBlink(tt.remaining, 10); got != tt.want {
			t.Errorf("ShouldRenderBlink(%v, 10) = %v, want %v", tt.remaining, got, tt.want)
		}
	}
}
