package game

import "math"

// SpawnExplosion creates up to count particles at (x, y).
// Once MaxParticles are alive further particles are silently dropped.
func (s *Session) SpawnExplosion(x, y float64, count int) {
	for i := 0; i < count; i++ {
		if len(s.Particles) >= MaxParticles {
			break
		}
		s.Particles = append(s.Particles, NewParticle(s.rng, x, y))
	}
}

// explosionSize scales the burst for a destroyed asteroid with its radius.
func explosionSize(radius float64) int {
	// 12 particles for the smallest rock up to 28 for the largest
	t := (radius - AsteroidMinRadius) / (AsteroidMaxRadius - AsteroidMinRadius)
	return int(math.Floor(12 + t*16))
}

// pulseShake adds amount to the shake magnitude; pulses in quick succession
// stack before decaying.
func (s *Session) pulseShake(amount float64) {
	s.Shake += amount
}

// decayShake picks this tick's render jitter from the current magnitude, then
// decays it geometrically, snapping to zero once it is imperceptible.
func (s *Session) decayShake() {
	if s.Shake <= 0 {
		s.ShakeX, s.ShakeY = 0, 0
		return
	}
	s.ShakeX = randRange(s.rng, -s.Shake, s.Shake)
	s.ShakeY = randRange(s.rng, -s.Shake, s.Shake)
	s.Shake *= ShakeDecay
	if s.Shake < ShakeThreshold {
		s.Shake = 0
	}
}
