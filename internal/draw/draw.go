// Package draw renders to ANSI terminals: a scaled half-block color canvas,
// a chunked text writer and the escape sequences the game needs.
package draw

import (
	"io"
	"strconv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a 24-bit terminal color. The zero value means "nothing drawn".
type Color uint32

const colorSet = 1 << 24

// RGB returns the color for the given channels.
func RGB(r, g, b uint8) Color {
	return colorSet | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Scale returns the color with every channel multiplied by f (0..1),
// used for fading effects on a black background.
func (c Color) Scale(f float64) Color {
	if c == 0 {
		return 0
	}
	if f <= 0 {
		return RGB(0, 0, 0)
	}
	if f > 1 {
		f = 1
	}
	r, g, b := c.channels()
	return RGB(uint8(float64(r)*f), uint8(float64(g)*f), uint8(float64(b)*f))
}

func (c Color) channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// appendSGR appends a 24-bit foreground (fg=true) or background color sequence.
func appendSGR(buf []byte, c Color, fg bool) []byte {
	r, g, b := c.channels()
	if fg {
		buf = append(buf, "\033[38;2;"...)
	} else {
		buf = append(buf, "\033[48;2;"...)
	}
	buf = strconv.AppendUint(buf, uint64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(b), 10)
	return append(buf, 'm')
}

// ANSI control sequences.
const (
	ColorReset   = "\033[0m"
	clearScreen  = "\033[H\033[2J"
	hideCursor   = "\033[?25l"
	showCursor   = "\033[?25h"
	enableMouse  = "\033[?1000h\033[?1006h" // Button events, SGR encoding
	disableMouse = "\033[?1006l\033[?1000l"
	defaultBG    = "\033[49m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearScreen)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, hideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, showCursor)
}

// EnableMouse asks the terminal to report button presses as SGR sequences.
func EnableMouse(w io.Writer) {
	io.WriteString(w, enableMouse)
}

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) {
	io.WriteString(w, disableMouse)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
