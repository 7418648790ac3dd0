package game

// EventKind identifies a semantic game event.
type EventKind int

const (
	EventShoot        EventKind = iota // Missile fired
	EventExplode                       // Asteroid or ship blown up
	EventSessionStart                  // Launch or retry
	EventSessionWin                    // Earth reached; Value holds the score
	EventSessionFail                   // Ship destroyed; Value holds the score
	EventHighScore                     // New best committed; Value holds it
)

func (k EventKind) String() string {
	switch k {
	case EventShoot:
		return "shoot"
	case EventExplode:
		return "explode"
	case EventSessionStart:
		return "sessionStart"
	case EventSessionWin:
		return "sessionWin"
	case EventSessionFail:
		return "sessionFail"
	case EventHighScore:
		return "highScore"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification for collaborators (audio, storage).
type Event struct {
	Kind     EventKind
	X, Y     float64 // Where it happened, if anywhere
	Value    int     // Score, for session end and high score events
	Progress float64 // Journey fraction, for session end events
}

// Sink consumes events. Emit must not call back into the session.
type Sink interface {
	Emit(e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// MultiSink fans an event out to every sink in order.
type MultiSink []Sink

// Emit forwards e to each non-nil sink.
func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}
