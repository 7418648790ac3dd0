package game

import (
	"math"

	"github.com/tomz197/asteroid-destroyer/internal/physics"
)

// Ship is the player-controlled spaceship.
type Ship struct {
	X, Y  float64 // Position (center of ship)
	Speed float64 // Units per tick along each axis
	R     float64 // Collision radius
	Tilt  float64 // Visual bank angle in radians

	lastFire int // Tick of the last missile
}

// NewShip creates a ship at its launch position. frame is the current tick,
// used so the first shot is available immediately.
func NewShip(frame int) *Ship {
	return &Ship{
		X:        FieldWidth / 2,
		Y:        FieldHeight - ShipStartInset,
		Speed:    ShipSpeed,
		R:        ShipRadius,
		lastFire: frame - FireRate,
	}
}

// Update moves the ship from held directions, keeps it in bounds and fires
// missiles while fire is held.
func (s *Ship) Update(ctx UpdateContext) bool {
	var mx, my float64
	if ctx.Controls.Left {
		mx = -1
	}
	if ctx.Controls.Right {
		mx = 1
	}
	if ctx.Controls.Up {
		my = -1
	}
	if ctx.Controls.Down {
		my = 1
	}

	// Normalize diagonal
	if mx != 0 && my != 0 {
		mx *= math.Sqrt2 / 2
		my *= math.Sqrt2 / 2
	}

	s.X += mx * s.Speed
	s.Y += my * s.Speed

	half := ShipSpriteSize / 2
	s.X = physics.Clamp(s.X, half+ShipEdgeMargin, FieldWidth-half-ShipEdgeMargin)
	s.Y = physics.Clamp(s.Y, FieldHeight*0.15, FieldHeight-half-ShipEdgeMargin)

	s.Tilt = physics.Lerp(s.Tilt, -mx*ShipTiltMax, ShipTiltEase)

	if ctx.Controls.Fire && ctx.Frame-s.lastFire >= FireRate && ctx.Spawner != nil {
		s.lastFire = ctx.Frame
		ctx.Spawner.Spawn(NewMissile(s.X, s.Y-half))
	}

	return false
}

// Position returns the ship's center.
func (s *Ship) Position() (float64, float64) {
	return s.X, s.Y
}

// Radius returns the ship's collision radius.
func (s *Ship) Radius() float64 {
	return s.R
}
