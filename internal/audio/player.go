// Package audio plays synthesized sound effects for game events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/asteroid-destroyer/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Player turns game events into sounds on the local speaker.
// It implements game.Sink; a Player that was never started is silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a player with master volume vol (0..1).
func NewPlayer(vol float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: vol,
		logger: logger,
	}
}

// Start opens the audio device and begins mixing.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops all sounds and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// SoundFor maps an event to its effect.
func SoundFor(kind game.EventKind) (Sound, bool) {
	switch kind {
	case game.EventShoot:
		return SoundShoot, true
	case game.EventExplode:
		return SoundExplode, true
	case game.EventSessionStart:
		return SoundLaunch, true
	case game.EventSessionWin:
		return SoundWin, true
	case game.EventSessionFail:
		return SoundFail, true
	case game.EventHighScore:
		return SoundHighScore, true
	}
	return 0, false
}

// Emit plays the sound for e. It never blocks the game loop for longer than
// it takes to hand the streamer to the mixer.
func (p *Player) Emit(e game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	snd, ok := SoundFor(e.Kind)
	if !ok {
		return
	}
	st := NewSound(snd, sampleRate, p.volume)
	if st == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(st)
	speaker.Unlock()
	p.logger.Debug("sound", "event", e.Kind)
}

var _ game.Sink = (*Player)(nil)
