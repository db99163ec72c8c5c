// Package client renders one player's game to a terminal and turns their
// keys and mouse drags into server commands.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/eggcatch/internal/config"
	"github.com/tomz197/eggcatch/internal/draw"
	"github.com/tomz197/eggcatch/internal/input"
	lconfig "github.com/tomz197/eggcatch/internal/loop/config"
	"github.com/tomz197/eggcatch/internal/loop/server"
	"github.com/tomz197/eggcatch/internal/loop/session"
	"github.com/tomz197/eggcatch/internal/object"
)

// Effect sizes and timings.
const (
	splashParticles  = 12
	sparkleParticles = 8
	hurtSeconds      = 1.0
	hurtBlinkHz      = 10.0
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	layout       config.Layout
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	handle := gs.RegisterClient(opts.Username)
	layout := gs.Layout()

	state := NewClientState()
	state.termSizeFunc = termSizeFunc
	state.View = object.Screen{
		Width:   lconfig.ViewWidth,
		Height:  lconfig.ViewHeight,
		CenterX: lconfig.ViewWidth / 2,
		CenterY: lconfig.ViewHeight / 2,
	}
	state.Field = object.Field{
		MinX: layout.Field.MinX,
		MaxX: layout.Field.MaxX,
		MinY: layout.Field.MinY,
		MaxY: layout.Field.MaxY,
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, lconfig.ViewWidth, lconfig.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		layout:       layout,
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart, GameStateOver:
			c.updateMenuState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.state.effects.update(c.state.delta); err != nil {
			return err
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < lconfig.ClientTargetFrameTime {
			time.Sleep(lconfig.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and sends move commands to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > lconfig.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > lconfig.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	if c.state.GameState != GameStatePlaying {
		return
	}
	for _, step := range c.state.Input.LaneSteps {
		c.server.Send(server.Command{ClientID: c.handle.ID, Type: server.CmdMoveLane, Lanes: step})
	}
	if c.state.Input.DragDX != 0 {
		dx := c.dragToWorld(c.state.Input.DragDX)
		if dx != 0 {
			c.server.Send(server.Command{ClientID: c.handle.ID, Type: server.CmdMoveFree, DX: dx})
		}
	}
}

// dragToWorld converts a drag in terminal columns to world units, keeping
// the bucket inside the visible field.
func (c *Client) dragToWorld(cols int) float64 {
	viewDX := c.canvas.TerminalToLogicalDX(cols)
	dx := c.state.Field.ToWorldDX(viewDX, c.state.View)

	x := c.handle.Snapshot().CatcherX
	minX := c.state.Field.MinX + lconfig.BucketWidth/2
	maxX := c.state.Field.MaxX - lconfig.BucketWidth/2
	switch {
	case x+dx < minX:
		dx = min(0, minX-x)
	case x+dx > maxX:
		dx = max(0, maxX-x)
	}
	return dx
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventGame:
				c.handleGameEvent(event.Game)
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = lconfig.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// handleGameEvent spawns the visual effect for a session event.
func (c *Client) handleGameEvent(e session.Event) {
	if c.state.GameState != GameStatePlaying {
		return
	}
	fx := c.state.effects
	switch e.Type {
	case session.EventCaught:
		object.SpawnSparkle(e.Egg.X, c.layout.CatcherY, sparkleParticles, fx)
		fx.Spawn(object.NewPopup(e.Egg.X, c.layout.CatcherY+lconfig.BucketHeight, "+1"))
	case session.EventLifeGained:
		fx.Spawn(object.NewPopup(e.Egg.X, c.layout.CatcherY+2*lconfig.BucketHeight, "+♥"))
	case session.EventMissed:
		object.SpawnSplash(e.Egg.X, c.layout.LowerBound+lconfig.EggHeight/2, splashParticles, fx)
	case session.EventLifeLost:
		c.state.hurtTime = hurtSeconds
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, lconfig.MaxTermWidth)
	renderHeight = min(termHeight, lconfig.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateMenuState handles the start and game-over screens.
func (c *Client) updateMenuState() {
	if c.state.Input.Space || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState watches the published snapshot for the end of the game.
func (c *Client) updatePlayingState() {
	c.state.hurtTime = max(0, c.state.hurtTime-c.state.delta.Seconds())

	snap := c.handle.Snapshot()
	if !snap.Active || snap.Games != c.state.games {
		return // Restart not applied yet
	}
	if snap.GameOver {
		c.state.lastScore = snap.Score
		c.state.bestScore = max(c.state.bestScore, snap.Score)
		c.state.GameState = GameStateOver
	}
}

// startGame asks the server for a fresh session.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	c.state.effects.reset()
	c.state.hurtTime = 0

	c.state.games = c.handle.Snapshot().Games + 1
	c.server.Send(server.Command{ClientID: c.handle.ID, Type: server.CmdRestart})
	c.state.GameState = GameStatePlaying
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
