package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency glides linearly from
// freq to endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a constant-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator that glides from startFreq to endFreq.
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     startFreq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(startFreq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope fades s in over attack and out over the last release of duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := max(e.totalSamples-e.releaseSamples, e.attackSamples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s by a linear gain.
// math.Log2(0) is -Inf, so zero volume is made silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Sound identifies a synthesized effect.
type Sound int

const (
	SoundShoot Sound = iota
	SoundExplode
	SoundLaunch
	SoundWin
	SoundFail
	SoundHighScore
	soundCount
)

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// NewSound builds a fresh streamer for the effect at the given gain.
func NewSound(s Sound, rate beep.SampleRate, vol float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case SoundShoot:
		// Short descending zap
		d := 90 * time.Millisecond
		st = NewEnvelope(NewSweep(1200, 300, d, WaveSquare, rate), d, 2*time.Millisecond, 60*time.Millisecond, rate)
		vol *= 0.25
	case SoundExplode:
		// Noise burst over a low rumble
		d := 350 * time.Millisecond
		noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 3*time.Millisecond, 300*time.Millisecond, rate)
		rumble := NewEnvelope(NewSweep(110, 40, d, WaveSaw, rate), d, 3*time.Millisecond, 250*time.Millisecond, rate)
		st = beep.Mix(newVolume(noise, 0.6), newVolume(rumble, 0.4))
	case SoundLaunch:
		// Rising arpeggio C5 E5 G5
		st = beep.Seq(
			tone(523.25, 80*time.Millisecond, WaveSquare, rate),
			tone(659.25, 80*time.Millisecond, WaveSquare, rate),
			tone(783.99, 120*time.Millisecond, WaveSquare, rate),
		)
		vol *= 0.3
	case SoundWin:
		// Major fanfare ending an octave up
		st = beep.Seq(
			tone(523.25, 120*time.Millisecond, WaveSine, rate),
			tone(659.25, 120*time.Millisecond, WaveSine, rate),
			tone(783.99, 120*time.Millisecond, WaveSine, rate),
			tone(1046.5, 400*time.Millisecond, WaveSine, rate),
		)
		vol *= 0.6
	case SoundFail:
		d := 700 * time.Millisecond
		st = NewEnvelope(NewSweep(440, 80, d, WaveSaw, rate), d, 5*time.Millisecond, 400*time.Millisecond, rate)
		vol *= 0.4
	case SoundHighScore:
		// Bell: fundamental plus octave overtone
		d := 600 * time.Millisecond
		fund := NewEnvelope(NewOscillator(880, d, WaveSine, rate), d, 5*time.Millisecond, 550*time.Millisecond, rate)
		over := NewEnvelope(NewOscillator(1760, d, WaveSine, rate), d, 5*time.Millisecond, 300*time.Millisecond, rate)
		st = beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
		vol *= 0.5
	default:
		return nil
	}
	return newVolume(st, vol)
}
