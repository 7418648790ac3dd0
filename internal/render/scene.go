package render

import (
	"math"

	"github.com/tomz197/asteroid-destroyer/internal/draw"
	"github.com/tomz197/asteroid-destroyer/internal/game"
	"github.com/tomz197/asteroid-destroyer/internal/physics"
)

var (
	colorMissileGlow  = draw.RGB(110, 85, 40)
	colorMissileCore  = draw.RGB(255, 255, 200)
	colorMissileTrail = draw.RGB(170, 120, 45)
	colorAtmosphere   = draw.RGB(40, 70, 130)
	colorBarTrack     = draw.RGB(40, 40, 60)
	colorBarMarker    = draw.RGB(255, 100, 80)
	colorButton       = draw.RGB(45, 45, 55)
	colorButtonBars   = draw.RGB(150, 150, 160)
)

// Progress bar geometry in logical coordinates.
const (
	barW = 200.0
	barH = 12.0
	barX = game.FieldWidth/2 - barW/2
	barY = 16.0
)

// drawScene draws everything that lives on the canvas for the snapshot.
// The whole scene moves with the screen shake offset.
func (r *Renderer) drawScene(snap game.Snapshot) {
	ox, oy := snap.ShakeX, snap.ShakeY

	r.drawStars(snap.Stars, ox, oy)

	switch snap.State {
	case game.StateStart:
		return
	case game.StateWin:
		r.drawWinEarth(snap, ox, oy)
		return
	}

	if snap.Progress > game.EarthShowAfter {
		scale := physics.Remap(snap.Progress, game.EarthShowAfter, 1, 0.03, 0.35)
		y := physics.Remap(snap.Progress, game.EarthShowAfter, 1, -20, 60)
		r.drawEarth(game.FieldWidth/2+ox, y+oy, 100*scale, snap.EarthAngle)
	}

	for _, m := range snap.Missiles {
		drawMissile(r.canvas, m, ox, oy, snap.Frame)
	}
	for _, a := range snap.Asteroids {
		r.canvas.Sample(a.X+ox, a.Y+oy, a.R*1.25, a.R*1.25, a.Rot, asteroidPixel(a))
	}
	for _, p := range snap.Particles {
		drawParticle(r.canvas, p, ox, oy)
	}
	if snap.State != game.StateGameOver {
		drawShip(r.canvas, &snap.Ship, ox, oy, snap.Frame)
	}

	drawHUDShapes(r.canvas, snap.Progress)

	if snap.State == game.StatePaused || snap.State == game.StateGameOver {
		r.canvas.Dim(0.35)
	}
}

func (r *Renderer) drawStars(stars []*game.Star, ox, oy float64) {
	for _, s := range stars {
		v := uint8(255 * s.Brightness)
		r.canvas.FillRect(s.X+ox, s.Y+oy, math.Max(s.Size, 1), s.Size*1.5, draw.RGB(v, v, v))
	}
}

// drawEarth draws the planet with a faint atmosphere ring.
func (r *Renderer) drawEarth(x, y, radius, angle float64) {
	r.canvas.FillCircle(x, y, radius+4, colorAtmosphere)
	r.canvas.Sample(x, y, radius, radius, angle, r.earth.sampler(radius))
}

// drawWinEarth grows the planet until it fills the view.
func (r *Renderer) drawWinEarth(snap game.Snapshot, ox, oy float64) {
	t := float64(snap.StateFrames) / game.TicksPerSecond
	scale := math.Min(2.5, 0.4+t*0.5)
	r.drawEarth(game.FieldWidth/2+ox, game.FieldHeight/2+t*15+oy, 100*scale, snap.EarthAngle+t*0.01)
}

func drawMissile(c *draw.Canvas, m *game.Missile, ox, oy float64, frame int) {
	x, y := m.X+ox, m.Y+oy
	c.FillRect(x-4, y-6, 8, 12, colorMissileGlow)
	c.FillRect(x-2, y-4, 4, 8, colorMissileCore)
	c.FillRect(x-1, y+4, 2, float64(4+frame%7), colorMissileTrail)
}

func drawParticle(c *draw.Canvas, p *game.Particle, ox, oy float64) {
	life := physics.Clamp(p.Life, 0, 1)
	s := p.Size * life
	col := draw.RGB(p.Color.R, p.Color.G, p.Color.B).Scale(life)
	c.FillRect(p.X+ox-s/2, p.Y+oy-s/2, s, s, col)
}

// drawShip draws the sprite banked by its tilt and the flickering engines.
func drawShip(c *draw.Canvas, s *game.Ship, ox, oy float64, frame int) {
	x, y := s.X+ox, s.Y+oy
	const half = game.ShipSpriteSize / 2

	flameH := float64(8 + frame*7%11)
	outer, inner := draw.RGB(255, 180, 40), draw.RGB(255, 240, 80)
	if frame%3 == 2 {
		outer = draw.RGB(255, 100, 20)
	}
	if frame%4 >= 2 {
		inner = draw.RGB(255, 160, 40)
	}
	blue := draw.RGB(100, 180, 255)
	if frame%2 == 1 {
		blue = draw.RGB(150, 210, 255)
	}

	c.FillRect(x-7, y+half, 4, flameH, outer)
	c.FillRect(x+3, y+half, 4, flameH, outer)
	c.FillRect(x-6, y+half+2, 2, flameH*0.7, inner)
	c.FillRect(x+4, y+half+2, 2, flameH*0.7, inner)
	c.FillRect(x-2, y+half, 4, flameH*0.6, blue)

	c.Sample(x, y, half, half, s.Tilt, shipPixel)
}

// drawHUDShapes draws the progress bar and the pause button.
// Text labels are written on top by drawUI.
func drawHUDShapes(c *draw.Canvas, progress float64) {
	c.FillRect(barX, barY, barW, barH, colorBarTrack)

	fillW := barW * progress
	fill := draw.RGB(100, 180, 255)
	switch {
	case progress >= 0.8:
		fill = draw.RGB(255, 220, 80)
	case progress >= 0.5:
		fill = draw.RGB(100, 255, 150)
	}
	if fillW > 0 {
		c.FillRect(barX, barY, fillW, barH, fill)
	}
	c.FillRect(barX+fillW-3, barY-2, 6, barH+4, colorBarMarker)

	c.FillRect(game.PauseButtonX, game.PauseButtonY, game.PauseButtonW, game.PauseButtonH, colorButton)
	c.FillRect(game.PauseButtonX+15, game.PauseButtonY+8, 5, 19, colorButtonBars)
	c.FillRect(game.PauseButtonX+25, game.PauseButtonY+8, 5, 19, colorButtonBars)
}
