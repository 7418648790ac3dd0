package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// cell is what one terminal character shows: the colors of its two sub-pixels.
type cell struct {
	top, bottom Color
}

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. It scales from logical coordinates to terminal
// pixels and only re-emits the cells that changed since the previous render.
type Canvas struct {
	termWidth      int     // Render area columns
	termHeight     int     // Render area rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	prev  []cell // What the terminal currently shows
	dirty []bool // Cells overwritten by text since the last render
	fresh bool   // Redraw every cell on the next render

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets of the render area when it is centered.
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       []byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the render area dimensions in terminal cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.prev = make([]cell, termWidth*termHeight)
		c.dirty = make([]bool, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.fresh = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.fresh = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.fresh = true
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	if row < 1 || row > c.termHeight {
		return
	}
	start := max(col-1, 0)
	end := min(col-1+n, c.termWidth)
	base := (row - 1) * c.termWidth
	for x := start; x < end; x++ {
		c.dirty[base+x] = true
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, col Color) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py, col)
}

// At returns the color of the pixel at logical coordinates.
func (c *Canvas) At(x, y float64) Color {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return 0
	}
	return c.pixels[py*c.termWidth+px]
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon outline in stroke; when fill is non-zero the
// interior is filled first using a scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, fill, stroke Color) {
	if len(points) < 3 {
		return
	}

	if fill != 0 {
		c.fillPolygon(points, fill)
	}

	if stroke != 0 {
		n := len(points)
		for i := 0; i < n; i++ {
			c.DrawLine(points[i], points[(i+1)%n], stroke)
		}
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}

		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// FillCircle fills a circle given in logical coordinates. Circles smaller
// than a pixel still set the pixel under their center.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 && ry < 0.5 {
		c.setPixel(int(math.Round(pcx)), int(math.Round(pcy)), col)
		return
	}

	yStart := max(int(math.Floor(pcy-ry)), 0)
	yEnd := min(int(math.Ceil(pcy+ry)), c.subPixelHeight-1)
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - pcy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		xStart := int(math.Round(pcx - half))
		xEnd := int(math.Round(pcx + half))
		if xEnd < xStart {
			xStart = int(math.Round(pcx))
			xEnd = xStart
		}
		for x := xStart; x <= xEnd; x++ {
			c.setPixel(x, y, col)
		}
	}
}

// FillRect fills an axis-aligned rectangle given by its top-left corner and
// size in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x1 := int(math.Round(x * c.scaleX))
	y1 := int(math.Round(y * c.scaleY))
	x2 := max(int(math.Round((x+w)*c.scaleX))-1, x1)
	y2 := max(int(math.Round((y+h)*c.scaleY))-1, y1)
	for py := max(y1, 0); py <= min(y2, c.subPixelHeight-1); py++ {
		for px := max(x1, 0); px <= min(x2, c.termWidth-1); px++ {
			c.setPixel(px, py, col)
		}
	}
}

// SampleFunc returns the color at local sprite coordinates (dx, dy), or 0
// for a transparent point.
type SampleFunc func(dx, dy float64) Color

// Sample draws a sprite of half-size (halfW, halfH) centered at (cx, cy) and
// rotated by angle. Every pixel the sprite may cover is mapped back into the
// sprite's local, unrotated coordinates and colored by fn.
func (c *Canvas) Sample(cx, cy, halfW, halfH, angle float64, fn SampleFunc) {
	sin, cos := math.Sincos(angle)
	// Bounding box of the rotated rectangle
	ex := math.Abs(halfW*cos) + math.Abs(halfH*sin)
	ey := math.Abs(halfW*sin) + math.Abs(halfH*cos)

	x1 := max(int(math.Floor((cx-ex)*c.scaleX)), 0)
	x2 := min(int(math.Ceil((cx+ex)*c.scaleX)), c.termWidth-1)
	y1 := max(int(math.Floor((cy-ey)*c.scaleY)), 0)
	y2 := min(int(math.Ceil((cy+ey)*c.scaleY)), c.subPixelHeight-1)

	for py := y1; py <= y2; py++ {
		wy := float64(py)/c.scaleY - cy
		for px := x1; px <= x2; px++ {
			wx := float64(px)/c.scaleX - cx
			// Rotate back by -angle
			dx := wx*cos + wy*sin
			dy := -wx*sin + wy*cos
			if math.Abs(dx) > halfW || math.Abs(dy) > halfH {
				continue
			}
			if col := fn(dx, dy); col != 0 {
				c.pixels[py*c.termWidth+px] = col
			}
		}
	}
}

// Dim darkens every drawn pixel by factor f (0..1), used under overlays.
func (c *Canvas) Dim(f float64) {
	for i, col := range c.pixels {
		if col != 0 {
			c.pixels[i] = col.Scale(f)
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the cells that changed since the previous render using
// half-block characters with 24-bit colors.
func (c *Canvas) Render(w io.Writer) {
	buf := c.renderBuf[:0]
	var fg, bg Color // Current SGR state; 0 means terminal default
	cursorCol, cursorRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			dirty := c.dirty[idx]
			c.dirty[idx] = false
			if !c.fresh && !dirty && cur == c.prev[idx] {
				continue
			}
			c.prev[idx] = cur

			if row != cursorRow || col != cursorCol {
				buf = append(buf, "\033["...)
				buf = strconv.AppendInt(buf, int64(row+1+c.offsetRow), 10)
				buf = append(buf, ';')
				buf = strconv.AppendInt(buf, int64(col+1+c.offsetCol), 10)
				buf = append(buf, 'H')
			}

			wantFG, wantBG, ch := cellGlyph(cur)
			if wantBG != bg {
				if wantBG == 0 {
					buf = append(buf, defaultBG...)
				} else {
					buf = appendSGR(buf, wantBG, false)
				}
				bg = wantBG
			}
			if wantFG != 0 && wantFG != fg {
				buf = appendSGR(buf, wantFG, true)
				fg = wantFG
			}
			buf = append(buf, string(ch)...)
			cursorRow, cursorCol = row, col+1
		}
	}
	c.fresh = false

	if len(buf) > 0 {
		buf = append(buf, ColorReset...)
	}
	c.renderBuf = buf

	// Write output in chunks for optimal network flow
	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > maxChunkSize {
			chunk = buf[:maxChunkSize]
		}
		w.Write(chunk)
		buf = buf[len(chunk):]
	}
}

// cellGlyph picks the character and colors that show a cell's two sub-pixels.
func cellGlyph(c cell) (fg, bg Color, ch rune) {
	switch {
	case c.top == 0 && c.bottom == 0:
		return 0, 0, ' '
	case c.top == c.bottom:
		return c.top, 0, BlockFull
	case c.bottom == 0:
		return c.top, 0, BlockUpperHalf
	case c.top == 0:
		return c.bottom, 0, BlockLowerHalf
	default:
		return c.top, c.bottom, BlockUpperHalf
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the render area on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	moveTo := func(row, col int) {
		buf.WriteString("\033[")
		buf.WriteString(strconv.Itoa(row))
		buf.WriteByte(';')
		buf.WriteString(strconv.Itoa(col))
		buf.WriteByte('H')
	}
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			moveTo(top, left)
			buf.WriteString("┌" + line + "┐")
			moveTo(bottom, left)
			buf.WriteString("└" + line + "┘")
		} else {
			moveTo(top, c.offsetCol+1)
			buf.WriteString(line)
			moveTo(bottom, c.offsetCol+1)
			buf.WriteString(line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			moveTo(row, left)
			buf.WriteString("│")
			moveTo(row, right)
			buf.WriteString("│")
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based absolute terminal position (as
// reported by the mouse) to the logical coordinates at the cell's center.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col - 1 - c.offsetCol)
	py := float64(row-1-c.offsetRow)*2 + 0.5
	return px / c.scaleX, py / c.scaleY
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// This avoids per-frame allocations for polygon rendering.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
