package client

import (
	"time"

	"github.com/tomz197/eggcatch/internal/draw"
	"github.com/tomz197/eggcatch/internal/input"
	"github.com/tomz197/eggcatch/internal/object"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Session ended, show restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-player state (input, screen phase, effects).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input     input.Input
	View      object.Screen // Viewport dimensions
	Field     object.Field  // World rectangle shown in the viewport
	GameState GameState     // This client's game phase
	Running   bool          // Client loop running

	games     int     // Session generation this client is waiting on or playing
	lastScore int     // Score of the most recent finished game
	bestScore int     // Best score on this connection
	hurtTime  float64 // Remaining bucket blink after a lost life, in seconds

	effects       *effects
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	delta         time.Duration     // Frame delta time (client-side)
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state

	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		Running:       true,
		effects:       &effects{},
		prevGameState: GameStateStart,
	}
}

// effects holds the client-side visual effects (particles and popups).
// The server never sees them.
type effects struct {
	objects []object.Object
	toSpawn []object.Object // Objects to add after the current update cycle
}

// Spawn queues an effect to be added after the current update cycle.
// Implements object.Spawner interface.
func (e *effects) Spawn(obj object.Object) {
	e.toSpawn = append(e.toSpawn, obj)
}

// flushSpawned adds all queued effects and clears the queue.
func (e *effects) flushSpawned() {
	e.objects = append(e.objects, e.toSpawn...)
	e.toSpawn = e.toSpawn[:0]
}

// update advances every effect and drops the expired ones.
func (e *effects) update(delta time.Duration) error {
	e.flushSpawned()
	ctx := object.UpdateContext{Delta: delta, Spawner: e}

	kept := e.objects[:0]
	for _, obj := range e.objects {
		remove, err := obj.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(e.objects[len(kept):])
	e.objects = kept
	return nil
}

// draw draws either the canvas effects or the text effects. Text is drawn
// after the canvas has been rendered so it ends up on top.
func (e *effects) draw(ctx object.DrawContext, text bool) error {
	for _, obj := range e.objects {
		if _, isText := obj.(*object.Popup); isText != text {
			continue
		}
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// reset drops every effect.
func (e *effects) reset() {
	for _, obj := range e.objects {
		object.ReleaseObject(obj)
	}
	clear(e.objects)
	e.objects = e.objects[:0]
	e.toSpawn = e.toSpawn[:0]
}
