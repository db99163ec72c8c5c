// Package input turns raw terminal bytes into per-frame game input.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Space   bool
	Enter   bool
	Escape  bool
	Pressed []byte

	// LaneSteps holds one entry (-1 or +1) per left/right key press this
	// frame, in the order they arrived.
	LaneSteps []int
	// DragDX is the horizontal mouse drag this frame, in terminal columns.
	DragDX int
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	space  time.Time
	enter  time.Time
	escape time.Time

	dragCol int // Column of the last drag position, 0 when no button is held
}

// Stream delivers input bytes via a channel and tracks key state across frames.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ResetKeyInput forgets held keys, so a press that changed screens does not
// leak into the next one.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return parse(&s.state, buf, time.Now())
}

// parse updates key state from buf and builds the frame's Input.
func parse(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if buf[i+2] == '<' {
				if n, dx := parseMouse(state, buf[i+3:]); n > 0 {
					in.DragDX += dx
					i += 2 + n
					continue
				}
			}
			switch buf[i+2] {
			case 'C': // Right arrow
				state.right = now
				in.LaneSteps = append(in.LaneSteps, 1)
				i += 2
				continue
			case 'D': // Left arrow
				state.left = now
				in.LaneSteps = append(in.LaneSteps, -1)
				i += 2
				continue
			case 'A', 'B': // Up/down arrows are unused
				i += 2
				continue
			}
		}

		switch b {
		case 'q', 'Q':
			state.quit = now
		case 'a', 'A', 'h', 'H':
			state.left = now
			in.LaneSteps = append(in.LaneSteps, -1)
		case 'd', 'D', 'l', 'L':
			state.right = now
			in.LaneSteps = append(in.LaneSteps, 1)
		case ' ':
			state.space = now
		case '\n', '\r':
			state.enter = now
		case '\x1b':
			state.escape = now
		}
	}

	in.Quit = now.Sub(state.quit) < keyHoldDuration
	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Space = now.Sub(state.space) < keyHoldDuration
	in.Enter = now.Sub(state.enter) < keyHoldDuration
	in.Escape = now.Sub(state.escape) < keyHoldDuration
	return in
}

// parseMouse decodes the body of an SGR mouse report ("b;x;yM" or "b;x;ym")
// and returns the bytes consumed and the drag delta in columns. It returns
// n == 0 if seq does not hold a complete report.
func parseMouse(state *keyState, seq []byte) (n, dx int) {
	var fields [3]int
	field := 0
	for n = 0; n < len(seq); n++ {
		c := seq[n]
		switch {
		case c >= '0' && c <= '9':
			fields[field] = fields[field]*10 + int(c-'0')
		case c == ';':
			field++
			if field > 2 {
				return 0, 0
			}
		case c == 'M' || c == 'm':
			if field != 2 {
				return 0, 0
			}
			return n + 1, applyMouse(state, fields[0], fields[1], c == 'm')
		default:
			return 0, 0
		}
	}
	return 0, 0
}

// applyMouse tracks left-button drags and returns the column delta.
func applyMouse(state *keyState, button, col int, release bool) int {
	const (
		buttonMask = 3
		motionFlag = 32
	)
	if release {
		state.dragCol = 0
		return 0
	}
	if button&buttonMask != 0 {
		return 0 // Not the left button
	}
	if button&motionFlag == 0 {
		state.dragCol = col // Press starts a drag
		return 0
	}
	if state.dragCol == 0 {
		state.dragCol = col
		return 0
	}
	dx := col - state.dragCol
	state.dragCol = col
	return dx
}
