package render

import (
	"math"

	"github.com/tomz197/asteroid-destroyer/internal/draw"
	"github.com/tomz197/asteroid-destroyer/internal/game"
)

// shipMap is the top-down ship pixel art, one logical pixel block per rune.
var shipMap = [...]string{
	"......WW......",
	".....WCWC.....",
	"....WWCCWW....",
	"....WCCCCW....",
	"...WCCCCCCW...",
	"..WWCCCCCCWW..",
	".WGGCCCCCCGGW.",
	"WGGGWCCCCWGGGW",
	"WGGWWCCCCWWGGW",
	".WW.WCCCCW.WW.",
	"....WWWWWW....",
	".....WEEW.....",
	".....WEEW.....",
	"......EE......",
}

var shipColors = map[byte]draw.Color{
	'W': draw.RGB(200, 210, 230),
	'C': draw.RGB(160, 180, 210),
	'G': draw.RGB(80, 95, 120),
	'E': draw.RGB(255, 140, 30),
}

// shipPixel returns the sprite color at local ship coordinates.
func shipPixel(dx, dy float64) draw.Color {
	const half = game.ShipSpriteSize / 2
	cellSize := game.ShipSpriteSize / float64(len(shipMap))
	row := int((dy + half) / cellSize)
	col := int((dx + half) / cellSize)
	if row < 0 || row >= len(shipMap) || col < 0 || col >= len(shipMap[row]) {
		return 0
	}
	return shipColors[shipMap[row][col]]
}

// asteroidPixel returns a shader for an asteroid's irregular outline.
// Points closer to the rim get darker and a highlight sits toward the upper left.
func asteroidPixel(a *game.Asteroid) draw.SampleFunc {
	n := len(a.Shape)
	base := 110.0
	if n > 0 {
		base += 40 * (a.Shape[0] - 0.75) // Per-asteroid tint
	}
	return func(dx, dy float64) draw.Color {
		d := math.Hypot(dx, dy)
		rim := a.R
		if n > 0 {
			angle := math.Atan2(dy, dx)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			// Interpolate the rim between the two nearest vertices
			pos := angle / (2 * math.Pi) * float64(n)
			i := int(pos) % n
			frac := pos - math.Floor(pos)
			rim *= a.Shape[i]*(1-frac) + a.Shape[(i+1)%n]*frac
		}
		if d > rim || rim <= 0 {
			return 0
		}

		edge := d / rim
		light := 1.0 - 0.35*edge
		if dx < -rim*0.2 && dy < -rim*0.2 && edge > 0.3 && edge < 0.7 {
			light += 0.25 // Crater highlight
		}
		v := base * light
		return draw.RGB(uint8(math.Min(v+15, 255)), uint8(math.Min(v+5, 255)), uint8(math.Min(v-10, 255)))
	}
}

// earthTexture is the precomputed planet surface on a square grid.
type earthTexture struct {
	size  int
	cells []draw.Color
}

const earthGrid = 50

// newEarthTexture builds the planet surface from smooth value noise.
func newEarthTexture() *earthTexture {
	t := &earthTexture{size: earthGrid, cells: make([]draw.Color, earthGrid*earthGrid)}
	half := float64(earthGrid) / 2
	for r := 0; r < earthGrid; r++ {
		for c := 0; c < earthGrid; c++ {
			cx, cy := float64(c)-half, float64(r)-half
			d := math.Hypot(cx, cy)
			if d > half {
				continue
			}

			n := valueNoise(float64(c)*0.15, float64(r)*0.15)
			var red, green, blue float64
			switch {
			case n > 0.65:
				red, green, blue = 140, 180, 100
			case n > 0.52:
				red, green, blue = 120, 150, 80
			case n > 0.48:
				red, green, blue = 180, 170, 130
			default:
				depth := 0.6 + 0.4*n/0.48
				red, green, blue = 30*depth, 80*depth, 200*depth
			}

			// Atmosphere toward the limb
			if edge := (half - d) / 4; edge < 1 {
				edge = math.Max(0, edge)
				red = 100 + (red-100)*edge
				green = 160 + (green-160)*edge
				blue = 255 + (blue-255)*edge
			}
			t.cells[r*earthGrid+c] = draw.RGB(uint8(red), uint8(green), uint8(blue))
		}
	}
	return t
}

// sampler returns a shader for the planet drawn with the given radius.
func (t *earthTexture) sampler(radius float64) draw.SampleFunc {
	return func(dx, dy float64) draw.Color {
		if dx*dx+dy*dy > radius*radius {
			return 0
		}
		c := int((dx/radius + 1) / 2 * float64(t.size))
		r := int((dy/radius + 1) / 2 * float64(t.size))
		if c < 0 || c >= t.size || r < 0 || r >= t.size {
			return 0
		}
		return t.cells[r*t.size+c]
	}
}

// valueNoise is smooth 2D noise in [0, 1] from bilinearly interpolated
// lattice hashes.
func valueNoise(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	// Smoothstep
	fx = fx * fx * (3 - 2*fx)
	fy = fy * fy * (3 - 2*fy)

	ix, iy := int(x0), int(y0)
	a := lattice(ix, iy)
	b := lattice(ix+1, iy)
	c := lattice(ix, iy+1)
	d := lattice(ix+1, iy+1)
	top := a + (b-a)*fx
	bottom := c + (d-c)*fx
	return top + (bottom-top)*fy
}

func lattice(x, y int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h&0xffff) / 0xffff
}
