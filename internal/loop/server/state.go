package server

import (
	"sync/atomic"
	"time"

	"github.com/tomz197/eggcatch/internal/loop/session"
)

// GameSnapshot is an immutable view of one client's game for rendering.
type GameSnapshot struct {
	session.Snapshot
	Active  bool          // A session has been started for this client
	Games   int           // Sessions started so far; bumps on every restart
	Players int           // Connected clients
	Delta   time.Duration // Server frame delta
}

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (catches, misses, shutdown)

	session  *session.Session // Owned by the server goroutine
	games    int
	catchBuf []uint64 // Reused by the collision pass
	snapshot atomic.Pointer[GameSnapshot]
}

// Snapshot returns the latest published view of this client's game.
// It never returns nil.
func (h *ClientHandle) Snapshot() *GameSnapshot {
	return h.snapshot.Load()
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
	Game session.Event // For EventGame
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventGame ClientEventType = iota
	EventServerShutdown
)

// CommandType identifies a queued client command.
type CommandType int

const (
	CmdMoveLane CommandType = iota // Move the bucket by Lanes
	CmdMoveFree                    // Drag the bucket by DX world units
	CmdRestart                     // Replace the client's session with a fresh one
)

// Command is a client request applied on the next server tick.
type Command struct {
	ClientID int
	Type     CommandType
	Lanes    int
	DX       float64
}
