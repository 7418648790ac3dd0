package game

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Curve selects how difficulty ramps over the session.
type Curve int

const (
	CurveLinear  Curve = iota // Spawn interval 35→8, speed ×1→×3
	CurveEaseOut              // Quadratic ease-out: interval 35→12, speed ×1→×2.5
)

func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveEaseOut:
		return "easeout"
	default:
		return "unknown"
	}
}

// ParseCurve parses a curve name as produced by Curve.String.
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return CurveLinear, nil
	case "easeout", "ease-out":
		return CurveEaseOut, nil
	default:
		return CurveLinear, fmt.Errorf("unknown difficulty curve %q", s)
	}
}

// Difficulty is the spawn policy for a moment of play.
type Difficulty struct {
	SpawnInterval int     // Ticks between spawn waves
	SpeedMult     float64 // Asteroid fall speed multiplier
	T             float64 // Elapsed fraction of the session, not clamped above 1
}

// DifficultyAt maps elapsed play-seconds to a spawn policy.
// Spawning gets more frequent and asteroids faster as time passes.
func DifficultyAt(curve Curve, secs float64) Difficulty {
	t := math.Max(0, secs/GameDuration)

	switch curve {
	case CurveEaseOut:
		// The ease-out parabola turns back down past t=1
		u := math.Min(t, 1)
		eased := 1 - (1-u)*(1-u)
		return Difficulty{
			SpawnInterval: max(12, int(math.Floor(35-eased*20))),
			SpeedMult:     1 + eased*1.5,
			T:             t,
		}
	default:
		return Difficulty{
			SpawnInterval: max(8, int(math.Floor(35-t*25))),
			SpeedMult:     1 + t*2,
			T:             t,
		}
	}
}

// WaveSize returns how many asteroids to spawn in one wave.
// Later in the session waves grow: 2 after 30%, sometimes 3 after 50%.
func (d Difficulty) WaveSize(r *rand.Rand) int {
	switch {
	case d.T > 0.5 && r.Float64() < 0.3:
		return 3
	case d.T > 0.3:
		return 2
	default:
		return 1
	}
}
