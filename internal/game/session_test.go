package game

import (
	"math"
	"math/rand"
	"testing"
)

type recorder struct {
	events []Event
}

func (r *recorder) Emit(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func newTestSession(highScore int) (*Session, *recorder) {
	rec := &recorder{}
	s := NewSession(Options{
		Rand:      rand.New(rand.NewSource(1)),
		Sink:      rec,
		HighScore: highScore,
	})
	return s, rec
}

// launch starts a game from the title screen.
func launch(t *testing.T, s *Session) {
	t.Helper()
	s.Tick(Controls{Launch: true})
	if s.State != StatePlaying {
		t.Fatalf("state after launch = %v, want playing", s.State)
	}
}

// tickClear advances n ticks with the asteroid field emptied before each,
// so nothing can hit the ship.
func tickClear(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Asteroids = s.Asteroids[:0]
		s.Tick(Controls{})
	}
}

// rock returns a stationary asteroid at (x, y).
func rock(x, y, r float64) *Asteroid {
	return &Asteroid{X: x, Y: y, R: r, Alive: true}
}

func TestNewSessionStartsOnTitle(t *testing.T) {
	s, rec := newTestSession(0)
	if s.State != StateStart {
		t.Fatalf("state = %v, want start", s.State)
	}
	if len(s.Stars) != StarCount {
		t.Fatalf("stars = %d, want %d", len(s.Stars), StarCount)
	}

	s.Tick(Controls{Pause: true, Retry: true, Fire: true})
	if s.State != StateStart {
		t.Fatalf("only launch leaves the title, got %v", s.State)
	}

	launch(t, s)
	if rec.count(EventSessionStart) != 1 {
		t.Fatalf("session start events = %d, want 1", rec.count(EventSessionStart))
	}
}

func TestQuietTicksKeepScoreAndState(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)

	for i := 0; i < 10; i++ {
		s.Tick(Controls{})
	}

	if s.Score != 0 {
		t.Fatalf("score = %d, want 0", s.Score)
	}
	if s.State != StatePlaying {
		t.Fatalf("state = %v, want playing", s.State)
	}
	if len(s.Asteroids) != 0 {
		t.Fatalf("asteroids = %d, want none before the first spawn interval", len(s.Asteroids))
	}
}

func TestMissileHitScoresAndRemovesBoth(t *testing.T) {
	tests := []struct {
		radius float64
		points int
	}{
		{15, 30},
		{25, 20},
		{33, 10},
	}

	for _, tt := range tests {
		s, rec := newTestSession(0)
		launch(t, s)

		s.Asteroids = append(s.Asteroids, rock(200, 200, tt.radius))
		// The missile moves 10 up during the tick and still overlaps
		s.Missiles = append(s.Missiles, NewMissile(200, 205))

		s.Tick(Controls{})

		if s.Score != tt.points {
			t.Fatalf("radius %v: score = %d, want %d", tt.radius, s.Score, tt.points)
		}
		if len(s.Missiles) != 0 || len(s.Asteroids) != 0 {
			t.Fatalf("radius %v: missiles=%d asteroids=%d, want both removed", tt.radius, len(s.Missiles), len(s.Asteroids))
		}
		if want := explosionSize(tt.radius); len(s.Particles) != want {
			t.Fatalf("radius %v: particles = %d, want %d", tt.radius, len(s.Particles), want)
		}
		if rec.count(EventExplode) != 1 {
			t.Fatalf("radius %v: explode events = %d, want 1", tt.radius, rec.count(EventExplode))
		}
		if s.Shake == 0 && s.ShakeX == 0 && s.ShakeY == 0 {
			t.Fatalf("radius %v: expected a shake pulse", tt.radius)
		}
	}
}

func TestOneMissileDestroysOneAsteroid(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)

	s.Asteroids = append(s.Asteroids, rock(200, 200, 20), rock(205, 200, 20))
	s.Missiles = append(s.Missiles, NewMissile(202, 210))

	s.Tick(Controls{})

	if len(s.Asteroids) != 1 {
		t.Fatalf("asteroids = %d, want 1 survivor", len(s.Asteroids))
	}
	if len(s.Missiles) != 0 {
		t.Fatalf("missiles = %d, want 0", len(s.Missiles))
	}
	if s.Score != ScoreMediumAsteroid {
		t.Fatalf("score = %d, want %d", s.Score, ScoreMediumAsteroid)
	}
}

func TestOneAsteroidConsumesOneMissile(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)

	s.Asteroids = append(s.Asteroids, rock(200, 200, 30))
	s.Missiles = append(s.Missiles, NewMissile(195, 210), NewMissile(205, 210))

	s.Tick(Controls{})

	if len(s.Missiles) != 1 {
		t.Fatalf("missiles = %d, want 1 left over", len(s.Missiles))
	}
	if s.Score != ScoreLargeAsteroid {
		t.Fatalf("score = %d, want %d", s.Score, ScoreLargeAsteroid)
	}
}

func TestPlayTimeStopsAtGameOver(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)
	tickClear(s, 2*TicksPerSecond)

	s.Asteroids = append(s.Asteroids, rock(s.Ship.X, s.Ship.Y, 20))
	s.Tick(Controls{})
	if s.State != StateGameOver {
		t.Fatalf("state = %v, want gameover", s.State)
	}
	played, remaining := s.PlaySeconds(), s.Remaining()

	for i := 0; i < 10*TicksPerSecond; i++ {
		s.Tick(Controls{})
	}
	if s.PlaySeconds() != played || s.Remaining() != remaining {
		t.Fatalf("clock ran on the game over screen: %vs/%d left -> %vs/%d left",
			played, remaining, s.PlaySeconds(), s.Remaining())
	}
	if snap := s.Snapshot(); snap.Remaining != remaining {
		t.Fatalf("snapshot remaining = %d, want %d", snap.Remaining, remaining)
	}

	// A retry starts a fresh clock.
	s.Tick(Controls{Retry: true})
	if s.PlaySeconds() != 0 || s.Remaining() != GameDuration {
		t.Fatalf("after retry: %vs played, %d left", s.PlaySeconds(), s.Remaining())
	}
}

func TestShipCollisionEndsSessionSameTick(t *testing.T) {
	s, rec := newTestSession(0)
	launch(t, s)
	tickClear(s, 5)

	frame := s.Frame() + 1
	s.Asteroids = append(s.Asteroids, rock(s.Ship.X, s.Ship.Y, 20))
	s.Tick(Controls{})

	if s.State != StateGameOver {
		t.Fatalf("state = %v, want gameover", s.State)
	}
	if s.Frame() != frame {
		t.Fatalf("game over at frame %d, want %d", s.Frame(), frame)
	}
	if rec.count(EventSessionFail) != 1 {
		t.Fatalf("fail events = %d, want 1", rec.count(EventSessionFail))
	}
	if len(s.Particles) != WreckBurst+ShipBurst {
		t.Fatalf("particles = %d, want %d", len(s.Particles), WreckBurst+ShipBurst)
	}

	// Stays over until an explicit retry
	for i := 0; i < 120; i++ {
		s.Tick(Controls{Fire: true, Pause: true, Up: true})
	}
	if s.State != StateGameOver {
		t.Fatalf("state = %v, want gameover without retry", s.State)
	}

	s.Tick(Controls{Retry: true})
	if s.State != StatePlaying {
		t.Fatalf("state after retry = %v, want playing", s.State)
	}
	if s.Score != 0 || len(s.Asteroids) != 0 || len(s.Missiles) != 0 {
		t.Fatalf("retry did not reset: score=%d asteroids=%d missiles=%d", s.Score, len(s.Asteroids), len(s.Missiles))
	}
}

func TestShipHitUsesShrunkAsteroidRadius(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)

	// Full radii would overlap (16+30=46 > 40); the shrunk one does not (16+21=37 < 40)
	s.Asteroids = append(s.Asteroids, rock(s.Ship.X+40, s.Ship.Y, 30))
	s.Tick(Controls{})

	if s.State != StatePlaying {
		t.Fatalf("state = %v, want playing after a graze", s.State)
	}
}

func TestHighScoreCommittedOnFail(t *testing.T) {
	s, rec := newTestSession(10)
	launch(t, s)

	s.Asteroids = append(s.Asteroids, rock(200, 200, 15))
	s.Missiles = append(s.Missiles, NewMissile(200, 205))
	s.Tick(Controls{})

	s.Asteroids = append(s.Asteroids, rock(s.Ship.X, s.Ship.Y, 20))
	s.Tick(Controls{})

	if s.State != StateGameOver {
		t.Fatalf("state = %v, want gameover", s.State)
	}
	if s.HighScore != 30 {
		t.Fatalf("high score = %d, want 30", s.HighScore)
	}
	if rec.count(EventHighScore) != 1 {
		t.Fatalf("high score events = %d, want 1", rec.count(EventHighScore))
	}
	if last := rec.events[len(rec.events)-1]; last.Kind != EventHighScore || last.Value != 30 {
		t.Fatalf("last event = %+v, want highScore 30", last)
	}
}

func TestHighScoreNotLowered(t *testing.T) {
	s, rec := newTestSession(100)
	launch(t, s)

	s.Asteroids = append(s.Asteroids, rock(s.Ship.X, s.Ship.Y, 20))
	s.Tick(Controls{})

	if s.HighScore != 100 {
		t.Fatalf("high score = %d, want 100", s.HighScore)
	}
	if rec.count(EventHighScore) != 0 {
		t.Fatalf("unexpected high score event")
	}
}

func TestWinAfterDurationExactlyOnce(t *testing.T) {
	s, rec := newTestSession(0)
	launch(t, s)

	tickClear(s, GameDuration*TicksPerSecond-1)
	if s.State != StatePlaying {
		t.Fatalf("state = %v, want playing just before the end", s.State)
	}

	tickClear(s, 1)
	if s.State != StateWin {
		t.Fatalf("state = %v, want win", s.State)
	}
	if s.Progress != 1 {
		t.Fatalf("progress = %v, want 1", s.Progress)
	}

	tickClear(s, 300)
	if s.State != StateWin {
		t.Fatalf("state = %v, want to stay in win", s.State)
	}
	if n := rec.count(EventSessionWin); n != 1 {
		t.Fatalf("win events = %d, want 1", n)
	}
	if s.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", s.Remaining())
	}
}

func TestProgressMonotonicWhilePlaying(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)

	prev := s.Progress
	for i := 0; i < 30*TicksPerSecond; i++ {
		c := Controls{Fire: i%2 == 0, Left: i%200 < 100, Right: i%200 >= 100}
		// A pause in the middle must not move progress
		if i == 600 || i == 700 {
			c.Pause = true
		}
		s.Asteroids = s.Asteroids[:0]
		s.Tick(c)

		if s.Progress < prev {
			t.Fatalf("progress decreased at tick %d: %v < %v", i, s.Progress, prev)
		}
		if s.Progress < 0 || s.Progress > 1 {
			t.Fatalf("progress out of range at tick %d: %v", i, s.Progress)
		}
		prev = s.Progress
	}
}

func TestPauseExcludesPausedTime(t *testing.T) {
	paused, _ := newTestSession(0)
	plain, _ := newTestSession(0)

	// Both launch on tick 1
	launch(t, paused)
	launch(t, plain)

	tickClear(paused, 98) // now at tick 99
	paused.Tick(Controls{Pause: true})
	if paused.Frame() != 100 || paused.State != StatePaused {
		t.Fatalf("frame=%d state=%v, want paused at 100", paused.Frame(), paused.State)
	}
	frozen := paused.PlaySeconds()

	for paused.Frame() < 159 {
		paused.Tick(Controls{Fire: true, Launch: true, Retry: true})
	}
	if paused.PlaySeconds() != frozen {
		t.Fatalf("play seconds moved while paused: %v -> %v", frozen, paused.PlaySeconds())
	}
	paused.Tick(Controls{Pause: true})
	if paused.Frame() != 160 || paused.State != StatePlaying {
		t.Fatalf("frame=%d state=%v, want resumed at 160", paused.Frame(), paused.State)
	}
	tickClear(paused, 40)

	tickClear(plain, 139)
	if plain.Frame() != 140 {
		t.Fatalf("plain frame = %d, want 140", plain.Frame())
	}

	if math.Abs(paused.PlaySeconds()-plain.PlaySeconds()) > 1e-9 {
		t.Fatalf("play seconds at 200 with pause = %v, at 140 without = %v", paused.PlaySeconds(), plain.PlaySeconds())
	}
}

func TestPauseButtonClickToggles(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)

	click := Controls{Click: true, PointerX: PauseButtonX + 10, PointerY: PauseButtonY + 10}
	miss := Controls{Click: true, PointerX: 10, PointerY: 10}

	s.Tick(miss)
	if s.State != StatePlaying {
		t.Fatalf("click outside the control paused the game")
	}
	s.Tick(click)
	if s.State != StatePaused {
		t.Fatalf("state = %v, want paused", s.State)
	}
	s.Tick(Controls{})
	if s.State != StatePaused {
		t.Fatalf("state = %v, want still paused", s.State)
	}
	s.Tick(click)
	if s.State != StatePlaying {
		t.Fatalf("state = %v, want playing", s.State)
	}
}

func TestFireRate(t *testing.T) {
	s, rec := newTestSession(0)
	launch(t, s)

	for i := 0; i < 20; i++ {
		s.Asteroids = s.Asteroids[:0]
		s.Tick(Controls{Fire: true})
	}

	if n := rec.count(EventShoot); n != 2 {
		t.Fatalf("shots = %d, want 2 in 20 ticks", n)
	}
	if len(s.Missiles) != 2 {
		t.Fatalf("missiles = %d, want 2", len(s.Missiles))
	}
}

func TestShipStaysInBounds(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)

	for i := 0; i < 200; i++ {
		s.Asteroids = s.Asteroids[:0]
		s.Tick(Controls{Left: true, Up: true})
	}

	half := ShipSpriteSize / 2
	if s.Ship.X != half+ShipEdgeMargin {
		t.Fatalf("ship x = %v, want %v", s.Ship.X, half+ShipEdgeMargin)
	}
	if s.Ship.Y != FieldHeight*0.15 {
		t.Fatalf("ship y = %v, want %v", s.Ship.Y, FieldHeight*0.15)
	}
	if s.Ship.Tilt <= 0 {
		t.Fatalf("tilt = %v, want banked right for leftward motion", s.Ship.Tilt)
	}
}

func TestDodgeBonus(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)

	a := rock(100, FieldHeight+2*20+AsteroidExitMargin, 20)
	a.Speed = 1
	s.Asteroids = append(s.Asteroids, a)
	s.Tick(Controls{})

	if s.Score != ScoreDodge {
		t.Fatalf("score = %d, want %d", s.Score, ScoreDodge)
	}
	if len(s.Asteroids) != 0 {
		t.Fatalf("asteroids = %d, want passed rock removed", len(s.Asteroids))
	}
}

func TestParticleCap(t *testing.T) {
	s, _ := newTestSession(0)
	for i := 0; i < 50; i++ {
		s.SpawnExplosion(100, 100, 28)
		if len(s.Particles) > MaxParticles {
			t.Fatalf("particles = %d, exceeds cap", len(s.Particles))
		}
	}
	if len(s.Particles) != MaxParticles {
		t.Fatalf("particles = %d, want %d", len(s.Particles), MaxParticles)
	}

	s.Spawn(NewParticle(s.rng, 0, 0))
	if len(s.Particles) != MaxParticles {
		t.Fatalf("Spawn ignored the cap: %d", len(s.Particles))
	}
}

func TestParticlesFadeOut(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)
	s.SpawnExplosion(400, 100, 20)

	// Slowest decay is 0.02/tick
	tickClear(s, 51)
	if len(s.Particles) != 0 {
		t.Fatalf("particles = %d, want all faded", len(s.Particles))
	}
}

func TestShakePulsesAdd(t *testing.T) {
	s, _ := newTestSession(0)
	s.pulseShake(ShakeHit)
	s.pulseShake(ShakeHit)
	if s.Shake != 2*ShakeHit {
		t.Fatalf("shake = %v, want %v", s.Shake, 2*ShakeHit)
	}
	s.pulseShake(ShakeCrash)
	if s.Shake != 2*ShakeHit+ShakeCrash {
		t.Fatalf("shake = %v, want %v", s.Shake, 2*ShakeHit+ShakeCrash)
	}
}

func TestShakeDecaysToZero(t *testing.T) {
	s, _ := newTestSession(0)
	s.pulseShake(ShakeCrash)

	for i := 0; i < 40; i++ {
		s.Tick(Controls{})
		if math.Abs(s.ShakeX) > ShakeCrash || math.Abs(s.ShakeY) > ShakeCrash {
			t.Fatalf("jitter beyond magnitude: %v,%v", s.ShakeX, s.ShakeY)
		}
	}
	if s.Shake != 0 {
		t.Fatalf("shake = %v, want 0", s.Shake)
	}
	s.Tick(Controls{})
	if s.ShakeX != 0 || s.ShakeY != 0 {
		t.Fatalf("offset = %v,%v, want 0", s.ShakeX, s.ShakeY)
	}
}

func TestSpawnerReleasesWaves(t *testing.T) {
	s, _ := newTestSession(0)
	launch(t, s)

	for i := 0; i < 34; i++ {
		s.Tick(Controls{})
	}
	if len(s.Asteroids) != 1 {
		t.Fatalf("asteroids = %d, want one after the first interval", len(s.Asteroids))
	}
	a := s.Asteroids[0]
	if a.Y >= 0 {
		t.Fatalf("new asteroid y = %v, want above the top edge", a.Y)
	}
	// Two ticks of drift at most
	if a.X < a.R+10-2*AsteroidDrift || a.X > FieldWidth-a.R-10+2*AsteroidDrift {
		t.Fatalf("new asteroid x = %v outside margins for r=%v", a.X, a.R)
	}
	if a.R < AsteroidMinRadius || a.R >= AsteroidMaxRadius {
		t.Fatalf("radius = %v out of range", a.R)
	}
}

func TestAsteroidPoints(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{12, 30},
		{19.99, 30},
		{20, 20},
		{29.99, 20},
		{30, 10},
		{36, 10},
	}
	for _, tt := range tests {
		if got := AsteroidPoints(tt.radius); got != tt.want {
			t.Errorf("AsteroidPoints(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}
