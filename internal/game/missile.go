package game

// Missile is a shot fired straight up by the ship.
type Missile struct {
	X, Y  float64
	Speed float64
	R     float64

	spent bool // Consumed by a hit this tick
}

// NewMissile creates a missile at (x, y).
func NewMissile(x, y float64) *Missile {
	return &Missile{
		X:     x,
		Y:     y,
		Speed: MissileSpeed,
		R:     MissileRadius,
	}
}

// Update moves the missile up and removes it once it leaves the screen.
func (m *Missile) Update(_ UpdateContext) bool {
	m.Y -= m.Speed
	return m.Offscreen()
}

// Offscreen reports whether the missile has left the top of the field.
func (m *Missile) Offscreen() bool {
	return m.Y < MissileCutoff
}

// Position returns the missile's center.
func (m *Missile) Position() (float64, float64) {
	return m.X, m.Y
}

// Radius returns the missile's collision radius.
func (m *Missile) Radius() float64 {
	return m.R
}
