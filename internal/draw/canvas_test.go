package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	red := RGB(255, 0, 0)

	c.SetFloat(2, 2, red)
	var first bytes.Buffer
	c.Render(&first)
	if !strings.Contains(first.String(), string(BlockUpperHalf)) {
		t.Fatalf("first render missing the pixel: %q", first.String())
	}

	// Same content: nothing to send.
	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged frame emitted %d bytes: %q", second.Len(), second.String())
	}

	// Pixel moves: the old cell is blanked and the new one drawn.
	c.Clear()
	c.SetFloat(2, 3, red)
	var third bytes.Buffer
	c.Render(&third)
	out := third.String()
	if !strings.Contains(out, string(BlockLowerHalf)) {
		t.Fatalf("moved pixel not drawn: %q", out)
	}
	if !strings.Contains(out, "\033[2;3H") {
		t.Fatalf("expected cursor at row 2 col 3: %q", out)
	}
}

func TestForceRedraw(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	var buf bytes.Buffer
	c.Render(&buf)
	buf.Reset()

	c.ForceRedraw()
	c.Render(&buf)
	if got := strings.Count(buf.String(), " "); got != 8 {
		t.Fatalf("forced redraw wrote %d blank cells, want 8", got)
	}
}

func TestMarkTextDirtyRepaintsCells(t *testing.T) {
	c := NewScaledCanvas(10, 3, 10, 6)
	var buf bytes.Buffer
	c.Render(&buf)
	buf.Reset()

	c.MarkTextDirty(3, 2, 4)
	c.Render(&buf)
	if got := strings.Count(buf.String(), " "); got != 4 {
		t.Fatalf("repainted %d cells, want 4: %q", got, buf.String())
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("dirty marks not consumed: %q", buf.String())
	}
}

func TestCellGlyph(t *testing.T) {
	a, b := RGB(1, 2, 3), RGB(4, 5, 6)
	tests := []struct {
		in     cell
		fg, bg Color
		ch     rune
	}{
		{cell{}, 0, 0, ' '},
		{cell{a, a}, a, 0, BlockFull},
		{cell{a, 0}, a, 0, BlockUpperHalf},
		{cell{0, b}, b, 0, BlockLowerHalf},
		{cell{a, b}, a, b, BlockUpperHalf},
	}
	for _, tt := range tests {
		fg, bg, ch := cellGlyph(tt.in)
		if fg != tt.fg || bg != tt.bg || ch != tt.ch {
			t.Errorf("cellGlyph(%v) = %v,%v,%q want %v,%v,%q", tt.in, fg, bg, ch, tt.fg, tt.bg, tt.ch)
		}
	}
}

func TestFillCircleAndPolygon(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	col := RGB(9, 9, 9)

	c.FillCircle(10, 10, 4, col)
	if c.At(10, 10) != col || c.At(12, 10) != col {
		t.Fatal("circle interior not filled")
	}
	if c.At(16, 10) != 0 {
		t.Fatal("circle spilled outside its radius")
	}

	c.Clear()
	c.DrawPolygon([]Point{{2, 2}, {8, 2}, {8, 8}, {2, 8}}, col, 0)
	if c.At(5, 5) != col {
		t.Fatal("polygon interior not filled")
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.SetOffset(5, 2)

	// Cell (col 41, row 16) inside the render area, reported in absolute coordinates.
	x, y := c.TerminalToLogical(41+5, 16+2)
	col, row := c.LogicalToTerminal(x, y)
	if col != 41 || row != 16 {
		t.Fatalf("round trip = (%d,%d), want (41,16)", col, row)
	}
}

func TestFitTermSize(t *testing.T) {
	tests := []struct {
		name                 string
		termW, termH         int
		wantW, wantH         int
		wantOffCol, wantOffR int
	}{
		{"wide terminal is pillarboxed", 200, 50, 133, 50, 33, 0},
		{"tall terminal is letterboxed", 80, 60, 80, 30, 0, 15},
		{"capped at max", 400, 200, 240, 90, 80, 55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := FitTermSize(tt.termW, tt.termH, 240, 90, 8.0/3)
			if w != tt.wantW || h != tt.wantH || oc != tt.wantOffCol || or != tt.wantOffR {
				t.Fatalf("FitTermSize = %d,%d,%d,%d want %d,%d,%d,%d",
					w, h, oc, or, tt.wantW, tt.wantH, tt.wantOffCol, tt.wantOffR)
			}
		})
	}
}

func TestColorScale(t *testing.T) {
	c := RGB(200, 100, 50).Scale(0.5)
	if c != RGB(100, 50, 25) {
		t.Fatalf("Scale = %x", c)
	}
	if Color(0).Scale(0.5) != 0 {
		t.Fatal("empty color must stay empty")
	}
}

func TestSampleRotates(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)
	col := RGB(1, 1, 1)
	// A thin horizontal bar: 10 wide, 1 tall.
	bar := func(dx, dy float64) Color { return col }

	c.Sample(20, 20, 5, 0.5, 0, bar)
	if c.At(24, 20) != col || c.At(20, 24) != 0 {
		t.Fatal("unrotated bar should be horizontal")
	}

	c.Clear()
	c.Sample(20, 20, 5, 0.5, math.Pi/2, bar)
	if c.At(20, 24) != col || c.At(24, 20) != 0 {
		t.Fatal("bar rotated by 90 degrees should be vertical")
	}
}

func TestFillRectAndDim(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(2, 2, 3, 3, RGB(200, 200, 200))
	if c.At(2, 2) == 0 || c.At(4, 4) == 0 || c.At(5, 5) != 0 {
		t.Fatal("rect bounds wrong")
	}
	c.Dim(0.5)
	if c.At(3, 3) != RGB(100, 100, 100) {
		t.Fatalf("dimmed color = %x", c.At(3, 3))
	}
	if c.At(8, 8) != 0 {
		t.Fatal("Dim must not paint empty pixels")
	}
}
