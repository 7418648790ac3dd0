package game

import (
	"math"
	"math/rand"
)

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// ExplosionColors is the palette explosion particles draw from.
var ExplosionColors = []Color{
	{200, 200, 200},
	{255, 160, 50},
	{255, 240, 60},
	{255, 255, 255},
	{255, 100, 30},
	{140, 120, 90},
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y     float64 // Position
	VX, VY   float64 // Velocity
	Life     float64 // 1 when spawned, removed at 0
	Decay    float64 // Life lost per tick
	Size     float64
	Color    Color
	Friction float64 // Velocity damping per tick
}

// NewParticle creates a particle at (x, y) flying in a random direction.
func NewParticle(r *rand.Rand, x, y float64) *Particle {
	angle := r.Float64() * 2 * math.Pi
	speed := randRange(r, 1, 6)
	return &Particle{
		X:        x,
		Y:        y,
		VX:       math.Cos(angle) * speed,
		VY:       math.Sin(angle) * speed,
		Life:     1,
		Decay:    randRange(r, 0.02, 0.06),
		Size:     randRange(r, 2, 5),
		Color:    ExplosionColors[r.Intn(len(ExplosionColors))],
		Friction: ParticleFriction,
	}
}

// Update applies drag, moves the particle and fades it out.
func (p *Particle) Update(_ UpdateContext) bool {
	p.VX *= p.Friction
	p.VY *= p.Friction
	p.X += p.VX
	p.Y += p.VY
	p.Life -= p.Decay
	return p.Dead()
}

// Dead reports whether the particle has faded out.
func (p *Particle) Dead() bool {
	return p.Life <= 0
}
