package client

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/eggcatch/internal/config"
	"github.com/tomz197/eggcatch/internal/loop/server"
	"github.com/tomz197/eggcatch/internal/loop/session"
	"github.com/tomz197/eggcatch/internal/object"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	s, err := server.NewServer(config.DefaultLayout())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

// newIdleClient builds a client whose input never delivers a byte.
func newIdleClient(t *testing.T, gs server.GameServer, out *bytes.Buffer) *Client {
	t.Helper()
	pr, _ := io.Pipe()
	return NewClient(gs, bufio.NewReader(pr), out, ClientOptions{
		TermSizeFunc: fixedSize(100, 40),
		Username:     "ann",
	})
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                   string
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{name: "small", w: 80, h: 24, rw: 80, rh: 24},
		{name: "exact", w: 160, h: 50, rw: 160, rh: 50},
		{name: "large", w: 200, h: 60, rw: 160, rh: 50, offCol: 20, offRow: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, rh, oc, or := clampTermSize(tt.w, tt.h)
			if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
				t.Fatalf("clampTermSize(%d, %d) = %d %d %d %d", tt.w, tt.h, rw, rh, oc, or)
			}
		})
	}
}

func TestRunQuitsOnQ(t *testing.T) {
	s := newTestServer(t)
	var out bytes.Buffer
	c := NewClient(s, bufio.NewReader(strings.NewReader("q")), &out, ClientOptions{
		TermSizeFunc: fixedSize(100, 40),
	})

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("client did not quit")
	}
	if !strings.Contains(out.String(), "Controls") {
		t.Fatal("start screen never drawn")
	}
}

func TestStartScreenThenPlayingHUD(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	var out bytes.Buffer
	c := newIdleClient(t, s, &out)

	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if !strings.Contains(out.String(), "Welcome, ann!") {
		t.Fatal("start screen missing greeting")
	}

	c.startGame()
	deadline := time.Now().Add(5 * time.Second)
	for {
		snap := c.handle.Snapshot()
		if snap.Active && snap.Games == c.state.games {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("session never started")
		}
		time.Sleep(5 * time.Millisecond)
	}

	out.Reset()
	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	frame := out.String()
	for _, want := range []string{"Score: 0", "Speed x 1", "Combo x 0", "♥"} {
		if !strings.Contains(frame, want) {
			t.Errorf("HUD missing %q", want)
		}
	}
}

func TestGameEventsSpawnEffects(t *testing.T) {
	s := newTestServer(t)
	var out bytes.Buffer
	c := newIdleClient(t, s, &out)
	c.state.GameState = GameStatePlaying

	egg := object.Egg{ID: 1, Lane: 2, X: 0, Y: -420}
	c.handleGameEvent(session.Event{Type: session.EventCaught, Egg: egg})
	c.handleGameEvent(session.Event{Type: session.EventMissed, Egg: egg})
	c.handleGameEvent(session.Event{Type: session.EventSpawned, Egg: egg})

	fx := c.state.effects
	if got, want := len(fx.toSpawn), sparkleParticles+1+splashParticles; got != want {
		t.Fatalf("queued effects = %d, want %d", got, want)
	}

	if err := fx.update(10 * time.Millisecond); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(fx.objects) == 0 || len(fx.toSpawn) != 0 {
		t.Fatalf("effects not flushed: %d live, %d queued", len(fx.objects), len(fx.toSpawn))
	}

	// Everything expires within a couple of seconds.
	for i := 0; i < 200; i++ {
		if err := fx.update(20 * time.Millisecond); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if len(fx.objects) != 0 {
		t.Fatalf("%d effects never expired", len(fx.objects))
	}
}

func TestGameEventsIgnoredOutsidePlay(t *testing.T) {
	s := newTestServer(t)
	var out bytes.Buffer
	c := newIdleClient(t, s, &out)

	c.handleGameEvent(session.Event{Type: session.EventCaught})
	if len(c.state.effects.toSpawn) != 0 {
		t.Fatal("effects spawned on the start screen")
	}
}

func TestDragToWorldKeepsBucketInField(t *testing.T) {
	s := newTestServer(t)
	var out bytes.Buffer
	c := newIdleClient(t, s, &out)

	// 100 columns over a 720 unit wide field: 7.2 units per column.
	if got := c.dragToWorld(10); got < 71.9 || got > 72.1 {
		t.Fatalf("dragToWorld(10) = %v, want 72", got)
	}
	// The bucket sits at 0 and may move at most to 360 - 45.
	if got := c.dragToWorld(1000); got != 315 {
		t.Fatalf("dragToWorld(1000) = %v, want 315", got)
	}
	if got := c.dragToWorld(-1000); got != -315 {
		t.Fatalf("dragToWorld(-1000) = %v, want -315", got)
	}
}

func TestHearts(t *testing.T) {
	tests := []struct {
		lives, max int
		want       string
	}{
		{lives: 3, max: 3, want: "♥ ♥ ♥"},
		{lives: 1, max: 3, want: "♥ ♡ ♡"},
		{lives: 0, max: 3, want: "♡ ♡ ♡"},
	}
	for _, tt := range tests {
		if got := hearts(tt.lives, tt.max); got != tt.want {
			t.Errorf("hearts(%d, %d) = %q, want %q", tt.lives, tt.max, got, tt.want)
		}
	}
}
