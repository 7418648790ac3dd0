package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Settings holds the runtime options shared by all entry points.
type Settings struct {
	ScoreDB         string  // Path of the sqlite file holding the high score
	AudioEnabled    bool    // Play synthesized sound effects
	AudioVolume     float64 // 0..1
	LogLevel        string
	LogFile         string // Empty means the host's default sink
	Seed            int64  // 0 means seed from the clock
	DifficultyCurve string // "linear" or "easeout"
	IdleTimeout     time.Duration
}

// FromEnv builds Settings from the environment.
func FromEnv() Settings {
	return Settings{
		ScoreDB:         GetEnv("SCORE_DB", "data/highscore.db"),
		AudioEnabled:    GetEnvBool("AUDIO_ENABLED", true),
		AudioVolume:     clamp01(GetEnvFloat("AUDIO_VOLUME", 0.5)),
		LogLevel:        GetEnv("LOG_LEVEL", "info"),
		LogFile:         GetEnv("LOG_FILE", ""),
		Seed:            int64(GetEnvInt("GAME_SEED", 0)),
		DifficultyCurve: GetEnv("DIFFICULTY_CURVE", "linear"),
		IdleTimeout:     time.Duration(GetEnvInt("SSH_IDLE_TIMEOUT", 120)) * time.Second,
	}
}

// NewLogger creates a structured logger at the configured level.
// When LogFile is set, logs are appended there and the file is returned so
// the caller can close it; otherwise logs go to fallback.
func (s Settings) NewLogger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	w := fallback
	var closer io.Closer
	if s.LogFile != "" {
		f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return logger, closer, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
