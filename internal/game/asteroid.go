package game

import (
	"math"
	"math/rand"
)

// Asteroid is a falling space rock.
type Asteroid struct {
	X, Y     float64 // Position (center)
	Speed    float64 // Vertical speed per tick
	VX       float64 // Horizontal drift per tick
	R        float64 // Collision/draw radius
	Rot      float64 // Current rotation angle
	RotSpeed float64 // Radians per tick
	Alive    bool
	Shape    []float64 // Vertex distance factors for the irregular outline
}

// NewAsteroid creates an asteroid above the visible top edge with its fall
// speed scaled by speedMult.
func NewAsteroid(r *rand.Rand, speedMult float64) *Asteroid {
	radius := randRange(r, AsteroidMinRadius, AsteroidMaxRadius)

	// 8-11 vertices, each ±25% of the radius
	shape := make([]float64, 8+r.Intn(4))
	for i := range shape {
		shape[i] = 0.75 + r.Float64()*0.5
	}

	return &Asteroid{
		X:        randRange(r, radius+10, FieldWidth-radius-10),
		Y:        -radius*2 - randRange(r, 10, 100),
		Speed:    randRange(r, AsteroidMinSpeed, AsteroidMaxSpeed) * speedMult,
		VX:       randRange(r, -AsteroidDrift, AsteroidDrift),
		R:        radius,
		Rot:      r.Float64() * 2 * math.Pi,
		RotSpeed: randRange(r, -AsteroidSpin, AsteroidSpin),
		Alive:    true,
		Shape:    shape,
	}
}

// Update moves and spins the asteroid, wrapping it horizontally.
// Removal of passed or destroyed asteroids is handled by the session.
func (a *Asteroid) Update(_ UpdateContext) bool {
	a.Y += a.Speed
	a.X += a.VX
	a.Rot += a.RotSpeed

	if a.X < -a.R {
		a.X = FieldWidth + a.R
	}
	if a.X > FieldWidth+a.R {
		a.X = -a.R
	}
	return false
}

// Passed reports whether the asteroid has left the bottom of the field.
func (a *Asteroid) Passed() bool {
	return a.Y > FieldHeight+a.R*2+AsteroidExitMargin
}

// Points returns the score for destroying this asteroid. Smaller rocks are worth more.
func (a *Asteroid) Points() int {
	return AsteroidPoints(a.R)
}

// AsteroidPoints returns the score for destroying an asteroid of the given radius.
func AsteroidPoints(radius float64) int {
	switch {
	case radius < 20:
		return ScoreSmallAsteroid
	case radius < 30:
		return ScoreMediumAsteroid
	default:
		return ScoreLargeAsteroid
	}
}

// Position returns the asteroid's center.
func (a *Asteroid) Position() (float64, float64) {
	return a.X, a.Y
}

// Radius returns the asteroid's collision radius.
func (a *Asteroid) Radius() float64 {
	return a.R
}
