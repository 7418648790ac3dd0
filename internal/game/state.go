package game

// State represents the current game phase.
type State int

const (
	StateStart    State = iota // Title screen
	StatePlaying               // Active gameplay
	StatePaused                // Gameplay frozen, waiting for resume
	StateGameOver              // Ship destroyed, waiting for retry
	StateWin                   // Earth reached, waiting for play again
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	case StateWin:
		return "win"
	default:
		return "unknown"
	}
}

// Finished reports whether the session has ended (GameOver or Win).
func (s State) Finished() bool {
	return s == StateGameOver || s == StateWin
}
