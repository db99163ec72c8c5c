package draw

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// maxChunkSize is the maximum bytes handed to the underlying writer at once.
// It stays under a typical MTU so frames flow smoothly over SSH.
const maxChunkSize = 1400

// ChunkWriter buffers one frame of terminal output and writes it in
// MTU-sized chunks on Flush. Cursor positions passed to it are canvas
// coordinates; the centering offset is added automatically.
type ChunkWriter struct {
	buf    strings.Builder
	out    *bufio.Writer
	numBuf [20]byte // Scratch space for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends a cursor position sequence for 1-based canvas coordinates.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteRune appends a rune to the frame.
func (cw *ChunkWriter) WriteRune(r rune) {
	cw.buf.WriteRune(r)
}

// WriteAt writes s starting at a canvas position.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// WriteColoredAt writes s in an SGR color and resets the color afterwards.
func (cw *ChunkWriter) WriteColoredAt(col, row int, color, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(color)
	cw.buf.WriteString(s)
	cw.buf.WriteString(ColorReset)
}

// Pending returns the number of buffered bytes not yet flushed.
func (cw *ChunkWriter) Pending() int {
	return cw.buf.Len()
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the buffered frame in chunks and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.out.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.out.Flush()
}
