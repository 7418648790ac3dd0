package game

// spawnAsteroids counts ticks and releases a wave of asteroids whenever the
// current spawn interval has elapsed.
func (s *Session) spawnAsteroids() {
	d := s.Difficulty()

	s.spawnCounter++
	if s.spawnCounter < d.SpawnInterval {
		return
	}
	s.spawnCounter = 0

	n := d.WaveSize(s.rng)
	for i := 0; i < n; i++ {
		s.Spawn(NewAsteroid(s.rng, d.SpeedMult))
	}
}
