package game

import (
	"math/rand"

	"github.com/tomz197/asteroid-destroyer/internal/physics"
)

// Star is a background-only scrolling dot. It never collides.
type Star struct {
	X, Y       float64
	Speed      float64
	Size       float64
	Brightness float64 // 0..1, faster stars are brighter
}

// NewStar creates a star anywhere on the field.
func NewStar(r *rand.Rand) *Star {
	speed := randRange(r, 0.5, 3)
	return &Star{
		X:          r.Float64() * FieldWidth,
		Y:          r.Float64() * FieldHeight,
		Speed:      speed,
		Size:       physics.Remap(speed, 0.5, 3, 1, 2.5),
		Brightness: physics.Remap(speed, 0.5, 3, 0.3, 1),
	}
}

// Update scrolls the star and wraps it back above the top edge.
func (s *Star) Update(ctx UpdateContext) bool {
	s.Y += s.Speed * ctx.StarSpeed
	if s.Y > FieldHeight+5 {
		s.Y = randRange(ctx.Rand, -20, -5)
		s.X = ctx.Rand.Float64() * FieldWidth
	}
	return false
}
