package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/asteroid-destroyer/internal/physics"
)

// Options configures a Session.
type Options struct {
	Rand      *rand.Rand // Defaults to a time-seeded source
	Sink      Sink       // Receives semantic events; may be nil
	Curve     Curve
	HighScore int // Best score loaded from storage
}

// Session owns all mutable game state. It is driven by calling Tick once per
// frame from a single goroutine.
type Session struct {
	State     State
	Ship      *Ship
	Missiles  []*Missile
	Asteroids []*Asteroid
	Particles []*Particle
	Stars     []*Star

	Score     int
	HighScore int
	Progress  float64 // Fraction of GameDuration played, 0..1

	Shake          float64 // Current shake magnitude
	ShakeX, ShakeY float64 // Render jitter for this tick
	EarthAngle     float64

	frame           int // Ticks since the session was created
	stateFrame      int // Tick the current state was entered
	startFrame      int // Tick of the last launch
	pauseOffset     int // Total paused ticks since launch
	pauseStartFrame int
	endFrame        int // Tick the last session ended
	spawnCounter    int
	hitGrid         *physics.SpatialGrid

	rng   *rand.Rand
	sink  Sink
	curve Curve
}

// NewSession creates a session on the title screen.
func NewSession(opts Options) *Session {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		State:     StateStart,
		Ship:      NewShip(0),
		HighScore: max(0, opts.HighScore),
		rng:       rng,
		sink:      opts.Sink,
		curve:     opts.Curve,
	}

	s.Stars = make([]*Star, StarCount)
	for i := range s.Stars {
		s.Stars[i] = NewStar(rng)
	}
	return s
}

// Frame returns the number of ticks since the session was created.
func (s *Session) Frame() int {
	return s.frame
}

// StateFrames returns how many ticks the current state has been active.
func (s *Session) StateFrames() int {
	return s.frame - s.stateFrame
}

// PlaySeconds returns play time since launch, excluding paused intervals.
// It is frozen while paused and after the session ends, and never negative.
func (s *Session) PlaySeconds() float64 {
	now := s.frame
	switch {
	case s.State == StatePaused:
		now = s.pauseStartFrame
	case s.State.Finished():
		now = s.endFrame
	}
	ticks := now - s.startFrame - s.pauseOffset
	if ticks < 0 {
		return 0
	}
	return float64(ticks) / TicksPerSecond
}

// Remaining returns whole seconds left until Earth, rounded up.
func (s *Session) Remaining() int {
	left := math.Ceil(GameDuration - s.PlaySeconds())
	return int(math.Max(0, left))
}

// Difficulty returns the current spawn policy.
func (s *Session) Difficulty() Difficulty {
	return DifficultyAt(s.curve, s.PlaySeconds())
}

// Tick advances the session by one frame: discrete triggers first, then the
// update for the active state, then the shake decay.
func (s *Session) Tick(c Controls) {
	s.frame++

	s.handleTriggers(c)

	ctx := UpdateContext{
		Frame:    s.frame,
		Controls: c,
		Rand:     s.rng,
		Spawner:  s,
	}

	switch s.State {
	case StatePlaying:
		s.updatePlaying(ctx)
	case StateGameOver:
		s.updateGameOver(ctx)
	case StateWin:
		s.EarthAngle += EarthSpin
	}

	s.decayShake()
}

// handleTriggers applies the edge-triggered inputs for the current state.
func (s *Session) handleTriggers(c Controls) {
	switch s.State {
	case StateStart:
		if c.Launch {
			s.startGame()
		}
	case StateGameOver, StateWin:
		if c.Retry || c.Launch {
			s.startGame()
		}
	case StatePlaying:
		if c.Pause || s.pauseClicked(c) {
			s.pause()
		}
	case StatePaused:
		if c.Pause || s.pauseClicked(c) {
			s.resume()
		}
	}
}

// pauseClicked reports whether the pointer was pressed on the pause control.
func (s *Session) pauseClicked(c Controls) bool {
	return c.Click && InPauseButton(c.PointerX, c.PointerY)
}

// InPauseButton reports whether (x, y) lies inside the pause control region.
func InPauseButton(x, y float64) bool {
	return x > PauseButtonX && x < PauseButtonX+PauseButtonW &&
		y > PauseButtonY && y < PauseButtonY+PauseButtonH
}

func (s *Session) setState(st State) {
	s.State = st
	s.stateFrame = s.frame
}

// startGame resets everything a session owns and starts playing.
func (s *Session) startGame() {
	s.Score = 0
	s.Missiles = s.Missiles[:0]
	s.Asteroids = s.Asteroids[:0]
	s.Particles = s.Particles[:0]
	s.spawnCounter = 0
	s.Progress = 0
	s.Shake = 0
	s.Ship = NewShip(s.frame)
	s.startFrame = s.frame
	s.pauseOffset = 0
	s.EarthAngle = s.rng.Float64() * 2 * math.Pi

	s.setState(StatePlaying)
	s.emit(Event{Kind: EventSessionStart})
}

func (s *Session) pause() {
	s.pauseStartFrame = s.frame
	s.setState(StatePaused)
}

func (s *Session) resume() {
	s.pauseOffset += s.frame - s.pauseStartFrame
	s.setState(StatePlaying)
}

// updatePlaying runs one tick of gameplay.
func (s *Session) updatePlaying(ctx UpdateContext) {
	secs := s.PlaySeconds()
	s.Progress = physics.Clamp(secs/GameDuration, 0, 1)

	if secs >= GameDuration {
		s.finish(StateWin, EventSessionWin)
		return
	}

	s.Ship.Update(ctx)

	ctx.StarSpeed = 1 + s.Progress*3
	updateAll(s.Stars, ctx)

	s.spawnAsteroids()

	s.Missiles = updateAll(s.Missiles, ctx)
	updateAll(s.Asteroids, ctx)

	s.resolveMissileHits()
	if s.resolveShipHit() {
		return
	}
	s.removePassed()

	s.Particles = updateAll(s.Particles, ctx)
	s.EarthAngle += EarthSpin
}

// updateGameOver keeps the wreck exploding while everything else stays frozen.
func (s *Session) updateGameOver(ctx UpdateContext) {
	s.Particles = updateAll(s.Particles, ctx)
}

// finish ends the session in the given state and commits the high score.
func (s *Session) finish(st State, kind EventKind) {
	s.endFrame = s.frame
	s.setState(st)
	s.emit(Event{Kind: kind, Value: s.Score, Progress: s.Progress})
	s.commitHighScore()
}

// commitHighScore records the session score if it beats the best.
func (s *Session) commitHighScore() {
	if s.Score <= s.HighScore {
		return
	}
	s.HighScore = s.Score
	s.emit(Event{Kind: EventHighScore, Value: s.HighScore})
}

// Spawn adds a newly created entity to the session (implements Spawner).
func (s *Session) Spawn(e Entity) {
	switch v := e.(type) {
	case *Missile:
		s.Missiles = append(s.Missiles, v)
		s.emit(Event{Kind: EventShoot, X: v.X, Y: v.Y})
	case *Asteroid:
		s.Asteroids = append(s.Asteroids, v)
	case *Particle:
		if len(s.Particles) < MaxParticles {
			s.Particles = append(s.Particles, v)
		}
	}
}

func (s *Session) emit(e Event) {
	if s.sink != nil {
		s.sink.Emit(e)
	}
}
