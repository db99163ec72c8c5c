// Package server hosts one catch session per connected client. All sessions
// are owned by the server goroutine; clients talk to it through a command
// queue and read per-client snapshots.
package server

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/eggcatch/internal/config"
	lconfig "github.com/tomz197/eggcatch/internal/loop/config"
	"github.com/tomz197/eggcatch/internal/loop/session"
	"github.com/tomz197/eggcatch/internal/object"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	Send(cmd Command)
	Layout() config.Layout
}

// Server runs every client's session at a fixed tick rate.
type Server struct {
	layout        config.Layout
	sessionLayout session.Layout
	logger        *log.Logger
	newRand       func() object.Rand

	clients      map[int]*ClientHandle
	nextClientID int
	commandCh    chan Command
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Sessions log through a child logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithRandSource sets the lane picker factory used for each new session.
func WithRandSource(newRand func() object.Rand) Option {
	return func(s *Server) {
		s.newRand = newRand
	}
}

// NewServer creates a game server for the given layout.
func NewServer(layout config.Layout, opts ...Option) (*Server, error) {
	s := &Server{
		layout: layout,
		sessionLayout: session.Layout{
			Lanes:      layout.Lanes,
			SpawnY:     layout.SpawnY,
			LowerBound: layout.LowerBound,
		},
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandCh:    make(chan Command, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	if _, err := session.New(s.sessionLayout); err != nil {
		return nil, fmt.Errorf("new server: %w", err)
	}
	return s, nil
}

// Layout returns the playfield layout shared by all sessions.
func (s *Server) Layout() config.Layout {
	return s.layout
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		s.step(delta)

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < lconfig.ServerTickTime {
			time.Sleep(lconfig.ServerTickTime - elapsed)
		}
	}
}

// step runs one server frame.
func (s *Server) step(delta time.Duration) {
	s.processRegistrations()
	s.applyCommands()
	s.updateGames(delta)
	s.publishSnapshots(delta)
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 64),
	}
	handle.snapshot.Store(&GameSnapshot{})

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// Send queues a command for the next tick.
func (s *Server) Send(cmd Command) {
	select {
	case s.commandCh <- cmd:
	default:
		s.logger.Warn("command queue full, dropping", "client", cmd.ClientID, "type", cmd.Type)
	}
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("client joined", "client", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				if handle.session != nil {
					s.logger.Info("client left", "client", clientID, "score", handle.session.State().Score)
				}
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// applyCommands drains the command queue.
func (s *Server) applyCommands() {
	for {
		select {
		case cmd := <-s.commandCh:
			s.mu.RLock()
			handle, ok := s.clients[cmd.ClientID]
			s.mu.RUnlock()
			if !ok {
				continue
			}
			s.applyCommand(handle, cmd)
		default:
			return
		}
	}
}

func (s *Server) applyCommand(h *ClientHandle, cmd Command) {
	switch cmd.Type {
	case CmdRestart:
		s.startGame(h)
	case CmdMoveLane:
		if h.session != nil {
			h.session.OnMoveLane(cmd.Lanes)
		}
	case CmdMoveFree:
		if h.session != nil {
			h.session.OnMoveFree(cmd.DX)
		}
	}
}

// startGame replaces the client's session with a fresh one.
func (s *Server) startGame(h *ClientHandle) {
	opts := []session.Option{
		session.WithLogger(s.logger.With("client", h.ID, "user", h.Username)),
	}
	if s.newRand != nil {
		opts = append(opts, session.WithRand(s.newRand()))
	}

	sess, err := session.New(s.sessionLayout, opts...)
	if err != nil {
		s.logger.Error("failed to start session", "client", h.ID, "err", err)
		return
	}
	h.session = sess
	h.games++
	s.logger.Info("game started", "client", h.ID, "game", h.games)
	s.forwardEvents(h)
}

// updateGames ticks every session, resolves catches and forwards events.
func (s *Server) updateGames(delta time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.clients {
		if h.session == nil {
			continue
		}
		h.session.Tick(delta)
		s.resolveCatches(h)
		s.forwardEvents(h)
	}
}

// forwardEvents hands the session's queued events to the client.
func (s *Server) forwardEvents(h *ClientHandle) {
	dropped := 0
	for _, e := range h.session.Drain() {
		select {
		case h.EventsCh <- ClientEvent{Type: EventGame, Game: e}:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		s.logger.Debug("client event queue full", "client", h.ID, "dropped", dropped)
	}
}

// publishSnapshots stores a fresh snapshot for every client.
func (s *Server) publishSnapshots(delta time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := len(s.clients)
	for _, h := range s.clients {
		snap := &GameSnapshot{
			Games:   h.games,
			Players: players,
			Delta:   delta,
		}
		if h.session != nil {
			snap.Snapshot = h.session.Snapshot()
			snap.Active = true
		}
		h.snapshot.Store(snap)
	}
}
