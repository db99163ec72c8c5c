package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/eggcatch/internal/draw"
	lconfig "github.com/tomz197/eggcatch/internal/loop/config"
	"github.com/tomz197/eggcatch/internal/loop/server"
	"github.com/tomz197/eggcatch/internal/object"
)

// Shape sizes in world units.
const (
	henRadiusX   = 34.0
	henRadiusY   = 24.0
	henLift      = 40.0 // Hen body sits above the spawn point
	eggSegments  = 12
	henSegments  = 14
	bucketNarrow = 0.7 // Bottom width relative to the rim
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snapshot := c.handle.Snapshot()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
		Field:  c.state.Field,
		View:   c.state.View,
	}

	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOver {
		c.drawField(ctx, snapshot)
		if err := c.state.effects.draw(ctx, false); err != nil {
			return err
		}
	}

	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	if err := c.state.effects.draw(ctx, true); err != nil {
		return err
	}

	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// drawField draws the hens, eggs and bucket.
func (c *Client) drawField(ctx object.DrawContext, snapshot *server.GameSnapshot) {
	field, view := ctx.Field, ctx.View

	for _, x := range c.layout.Lanes {
		c.drawHen(ctx, x, c.layout.SpawnY+henLift)
	}

	// Eggs from a previous game stay hidden until the restart lands.
	if !snapshot.Active || snapshot.Games != c.state.games {
		c.drawBucket(ctx, c.layout.Lanes[len(c.layout.Lanes)/2])
		return
	}

	rx := field.ScaleX(lconfig.EggWidth/2, view)
	ry := field.ScaleY(lconfig.EggHeight/2, view)
	for _, egg := range snapshot.Items {
		p := field.ToView(egg.X, egg.Y, view)
		ctx.Canvas.DrawEllipse(p.X, p.Y, rx, ry, eggSegments)
	}

	if object.ShouldRenderBlink(c.state.hurtTime, hurtBlinkHz) {
		c.drawBucket(ctx, snapshot.CatcherX)
	}
}

// drawHen draws a hen as a filled body with a beak.
func (c *Client) drawHen(ctx object.DrawContext, x, y float64) {
	field, view := ctx.Field, ctx.View
	p := field.ToView(x, y, view)
	rx := field.ScaleX(henRadiusX, view)
	ry := field.ScaleY(henRadiusY, view)
	ctx.Canvas.DrawEllipse(p.X, p.Y, rx, ry, henSegments)

	head := field.ToView(x+henRadiusX*0.8, y+henRadiusY, view)
	beak := field.ToView(x+henRadiusX*1.3, y+henRadiusY*0.8, view)
	ctx.Canvas.DrawLine(head, beak)
}

// drawBucket draws the bucket outline centred at x on the catcher line.
func (c *Client) drawBucket(ctx object.DrawContext, x float64) {
	field, view := ctx.Field, ctx.View
	y := c.layout.CatcherY
	halfW := lconfig.BucketWidth / 2
	halfH := lconfig.BucketHeight / 2

	points := []draw.Point{
		field.ToView(x-halfW, y+halfH, view),
		field.ToView(x+halfW, y+halfH, view),
		field.ToView(x+halfW*bucketNarrow, y-halfH, view),
		field.ToView(x-halfW*bucketNarrow, y-halfH, view),
	}
	ctx.Canvas.DrawPolygon(points, false)
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snapshot *server.GameSnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(lconfig.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___ ___  ___    ___   _ _____ ___ _  _ `,
		` | __/ __|/ __|  / __| /_\_   _/ __| || |`,
		` | _| (_ | (_ | | (__ / _ \| || (__| __ |`,
		` |___\___|\___|  \___/_/ \_\_| \___|_||_|`,
		`                                         `,
	}

	cw := c.chunkWriter
	titleWidth := artWidth(titleArt)
	titleStartY := centerY - 8
	for i, line := range titleArt {
		cw.WriteColoredAt(centerX-titleWidth/2, titleStartY+i, draw.ColorBrightCyan, line)
	}

	subtitle := "~ Catch the eggs before they hit the ground ~"
	if c.username != "" {
		subtitle = fmt.Sprintf("~ Welcome, %s! Catch the eggs before they hit the ground ~", c.username)
	}
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"A / <  . . . . Lane left",
		"D / >  . . . Lane right",
		"Mouse drag  . . . Slide",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+1+i, line)
	}

	rules := "Miss an egg and lose a heart. Five catches in a row win one back."
	cw.WriteAt(centerX-len(rules)/2, controlsY+len(controlLines)+2, rules)

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Start  <<"
		cw.WriteAt(centerX-len(prompt)/2, controlsY+len(controlLines)+4, prompt)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snapshot *server.GameSnapshot) {
	if !snapshot.Active || snapshot.Games != c.state.games {
		return
	}
	cw := c.chunkWriter

	scoreText := fmt.Sprintf("Score: %-8d", snapshot.Score)
	cw.WriteAt(2, 1, scoreText)
	c.canvas.MarkTextDirty(2, 1, len(scoreText))

	speedText := fmt.Sprintf("Speed x %-4d", snapshot.SpeedLevel+1)
	cw.WriteAt(2, 2, speedText)
	c.canvas.MarkTextDirty(2, 2, len(speedText))

	comboText := fmt.Sprintf("Combo x %-4d", snapshot.Combo)
	cw.WriteAt(2, 3, comboText)
	c.canvas.MarkTextDirty(2, 3, len(comboText))

	c.drawHearts(termWidth, snapshot.Lives, snapshot.MaxLives)

	playersText := fmt.Sprintf("Players: %-4d", snapshot.Players)
	cw.WriteAt(termWidth-len(playersText)-1, termHeight, playersText)
	c.canvas.MarkTextDirty(termWidth-len(playersText)-1, termHeight, len(playersText))
}

// drawHearts draws a row of maxLives hearts in the top right corner,
// filled for each remaining life.
func (c *Client) drawHearts(termWidth, lives, maxLives int) {
	if maxLives <= 0 {
		return
	}
	cw := c.chunkWriter
	width := maxLives*2 - 1
	col := termWidth - width - 1
	cw.MoveCursor(col, 1)
	for i := 0; i < maxLives; i++ {
		if i > 0 {
			cw.WriteRune(' ')
		}
		if i < lives {
			cw.WriteString(draw.ColorRed + "♥" + draw.ColorReset)
		} else {
			cw.WriteString(draw.ColorDim + "♡" + draw.ColorReset)
		}
	}
	c.canvas.MarkTextDirty(col, 1, width)
}

// hearts returns the plain-text hearts row, used on the game over screen.
func hearts(lives, maxLives int) string {
	var b strings.Builder
	for i := 0; i < maxLives; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i < lives {
			b.WriteString("♥")
		} else {
			b.WriteString("♡")
		}
	}
	return b.String()
}

// drawGameOverScreen draws the game over screen.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
		`                                              `,
	}

	cw := c.chunkWriter
	titleWidth := artWidth(titleArt)
	titleStartY := centerY - 6
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	heartRow := hearts(0, lconfig.MaxLives)
	cw.WriteAt(centerX-len([]rune(heartRow))/2, titleStartY+len(titleArt), heartRow)

	scoreText := fmt.Sprintf("Score: %d", c.state.lastScore)
	cw.WriteAt(centerX-len(scoreText)/2, titleStartY+len(titleArt)+2, scoreText)

	bestText := fmt.Sprintf("Best: %d", c.state.bestScore)
	cw.WriteColoredAt(centerX-len(bestText)/2, titleStartY+len(titleArt)+3, draw.ColorBrightWhite, bestText)

	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Restart  <<"
		cw.WriteAt(centerX-len(prompt)/2, titleStartY+len(titleArt)+5, prompt)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}

func artWidth(lines []string) int {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	return width
}
