package game

// Snapshot is the read-only view of a session handed to the renderer.
// The slices alias the session's own collections and must not be modified;
// they are valid until the next Tick.
type Snapshot struct {
	State       State
	Frame       int
	StateFrames int // Ticks spent in the current state

	Ship      Ship
	Missiles  []*Missile
	Asteroids []*Asteroid
	Particles []*Particle
	Stars     []*Star

	Score      int
	HighScore  int
	Progress   float64
	Remaining  int // Whole seconds left
	EarthAngle float64

	ShakeX, ShakeY float64
}

// Snapshot captures the state the renderer needs for this tick.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:       s.State,
		Frame:       s.frame,
		StateFrames: s.StateFrames(),
		Ship:        *s.Ship,
		Missiles:    s.Missiles,
		Asteroids:   s.Asteroids,
		Particles:   s.Particles,
		Stars:       s.Stars,
		Score:       s.Score,
		HighScore:   s.HighScore,
		Progress:    s.Progress,
		Remaining:   s.Remaining(),
		EarthAngle:  s.EarthAngle,
		ShakeX:      s.ShakeX,
		ShakeY:      s.ShakeY,
	}
}
