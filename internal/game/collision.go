package game

import "github.com/tomz197/asteroid-destroyer/internal/physics"

// Overlaps reports whether two colliders overlap.
func Overlaps(a, b Collider) bool {
	ax, ay := a.Position()
	bx, by := b.Position()
	return physics.CirclesOverlap(ax, ay, a.Radius(), bx, by, b.Radius())
}

// hitCellSize bounds the largest missile/asteroid contact distance.
const hitCellSize = AsteroidMaxRadius + MissileRadius

// resolveMissileHits destroys each asteroid touched by a missile.
// One missile is consumed per asteroid and a missile can only destroy one asteroid.
func (s *Session) resolveMissileHits() {
	if len(s.Missiles) == 0 {
		return
	}

	if s.hitGrid == nil {
		s.hitGrid = physics.NewSpatialGrid(FieldWidth, FieldHeight, hitCellSize)
	}
	s.hitGrid.Clear()
	for j, m := range s.Missiles {
		x, y := m.Position()
		s.hitGrid.Insert(x, y, j)
	}

	for i := len(s.Asteroids) - 1; i >= 0; i-- {
		a := s.Asteroids[i]
		if !a.Alive {
			continue
		}

		// Newest overlapping missile wins, independent of cell order.
		hit := -1
		s.hitGrid.QueryAround(a.X, a.Y, func(j int) bool {
			if m := s.Missiles[j]; j > hit && !m.spent && Overlaps(m, a) {
				hit = j
			}
			return false
		})
		if hit < 0 {
			continue
		}

		s.Score += a.Points()
		s.SpawnExplosion(a.X, a.Y, explosionSize(a.R))
		s.pulseShake(ShakeHit)
		s.emit(Event{Kind: EventExplode, X: a.X, Y: a.Y})

		a.Alive = false
		s.Missiles[hit].spent = true
	}

	s.Asteroids = compact(s.Asteroids, func(a *Asteroid) bool { return a.Alive })
	s.Missiles = compact(s.Missiles, func(m *Missile) bool { return !m.spent })
}

// resolveShipHit ends the session on the first asteroid touching the ship.
// The asteroid hit circle is shrunk so grazes are forgiven.
func (s *Session) resolveShipHit() bool {
	for _, a := range s.Asteroids {
		if !a.Alive {
			continue
		}
		if !physics.CirclesOverlap(a.X, a.Y, a.R*AsteroidShipHitSkew, s.Ship.X, s.Ship.Y, s.Ship.R) {
			continue
		}

		s.SpawnExplosion(a.X, a.Y, WreckBurst)
		s.SpawnExplosion(s.Ship.X, s.Ship.Y, ShipBurst)
		s.pulseShake(ShakeCrash)
		s.emit(Event{Kind: EventExplode, X: s.Ship.X, Y: s.Ship.Y})
		s.finish(StateGameOver, EventSessionFail)
		return true
	}
	return false
}

// removePassed drops asteroids that left the bottom of the field unhit and
// awards the dodge bonus for each.
func (s *Session) removePassed() {
	s.Asteroids = compact(s.Asteroids, func(a *Asteroid) bool {
		if a.Passed() {
			s.Score += ScoreDodge
			return false
		}
		return true
	})
}

// compact keeps the items for which keep returns true, reusing the backing array.
func compact[T any](items []T, keep func(T) bool) []T {
	kept := items[:0]
	for _, it := range items {
		if keep(it) {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
