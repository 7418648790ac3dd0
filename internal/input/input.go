package input

import (
	"bufio"
	"strconv"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key presses, so held keys are reconstructed from the
// auto-repeat stream.
const keyHoldDuration = 100 * time.Millisecond

// repeatGuard is how long a trigger key must be quiet before another press
// counts as a new trigger. It covers the terminal's initial auto-repeat delay.
const repeatGuard = 600 * time.Millisecond

// Input represents the current frame's input state.
// Movement and Fire are held states; Enter, Pause, Retry and Click are
// triggers that are true only on the frame the press arrived.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Fire   bool
	Enter  bool
	Pause  bool
	Retry  bool
	Any    bool // Some byte arrived this frame
	Closed bool // The underlying reader is gone

	// Click is a primary mouse press at a 1-based terminal cell.
	Click              bool
	ClickCol, ClickRow int
}

type key int

const (
	keyQuit key = iota
	keyLeft
	keyRight
	keyUp
	keyDown
	keyFire
	keyEnter
	keyPause
	keyRetry
	keyCount
)

// keyState tracks the last time each key was pressed.
type keyState struct {
	last [keyCount]time.Time
}

// maxPending bounds the bytes of an unfinished escape sequence kept for the
// next frame.
const maxPending = 32

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch       chan byte
	done     chan struct{}
	stopOnce sync.Once
	state    keyState
	closed   bool
	pending  []byte // Start of an escape sequence cut off by the last drain
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r fails or after Stop.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop tells the reader goroutine to exit once its current read returns.
// It is safe to call more than once.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and SGR mouse reports and
// accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.parse(buf, time.Now())
	in.Closed = s.closed
	return in
}

// ResetKeyInput forgets held movement and fire, e.g. after a state change that
// should not inherit them from the previous screen. Trigger keys keep their
// timestamps so auto-repeat of a held trigger still cannot fire again.
func (s *Stream) ResetKeyInput() {
	for k := keyLeft; k <= keyFire; k++ {
		s.state.last[k] = time.Time{}
	}
}

// parse applies the bytes received since the previous frame and builds the
// input for the frame at now.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	in := Input{Any: len(buf) > 0}
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}
	var pressed [keyCount]bool

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && unfinishedCSI(buf[i:]) {
			if len(buf)-i <= maxPending {
				s.pending = append([]byte(nil), buf[i:]...)
			}
			break
		}

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A':
				pressed[keyUp] = true
				i += 2
				continue
			case 'B':
				pressed[keyDown] = true
				i += 2
				continue
			case 'C':
				pressed[keyRight] = true
				i += 2
				continue
			case 'D':
				pressed[keyLeft] = true
				i += 2
				continue
			case '<':
				n, col, row, ok := parseSGRMouse(buf[i:])
				if n > 0 {
					if ok {
						in.Click = true
						in.ClickCol, in.ClickRow = col, row
					}
					i += n - 1
					continue
				}
			}
		}

		if k, ok := keyFor(b); ok {
			pressed[k] = true
		}
	}

	for k := range keyCount {
		if !pressed[k] {
			continue
		}
		if now.Sub(s.state.last[k]) >= repeatGuard {
			switch k {
			case keyEnter:
				in.Enter = true
			case keyPause:
				in.Pause = true
			case keyRetry:
				in.Retry = true
			}
		}
		s.state.last[k] = now
	}

	held := func(k key) bool { return now.Sub(s.state.last[k]) < keyHoldDuration }
	in.Quit = pressed[keyQuit]
	in.Left = held(keyLeft)
	in.Right = held(keyRight)
	in.Up = held(keyUp)
	in.Down = held(keyDown)
	in.Fire = held(keyFire)
	return in
}

// unfinishedCSI reports whether seq, starting at ESC, is a prefix of an arrow
// or SGR mouse sequence that has not fully arrived yet.
func unfinishedCSI(seq []byte) bool {
	switch {
	case len(seq) == 1:
		return true
	case seq[1] != '[':
		return false
	case len(seq) == 2:
		return true
	case seq[2] != '<':
		return false
	}
	n, _, _, _ := parseSGRMouse(seq)
	return n == sgrIncomplete
}

// keyFor maps a single byte to the key it controls.
func keyFor(b byte) (key, bool) {
	switch b {
	case 'q', 'Q', 3: // Ctrl+C arrives as a byte in raw mode
		return keyQuit, true
	case 'a', 'A', 'j', 'J':
		return keyLeft, true
	case 'd', 'D', 'l', 'L':
		return keyRight, true
	case 'w', 'W', 'i', 'I':
		return keyUp, true
	case 's', 'S', 'k', 'K':
		return keyDown, true
	case ' ':
		return keyFire, true
	case '\n', '\r':
		return keyEnter, true
	case 'p', 'P':
		return keyPause, true
	case 'r', 'R':
		return keyRetry, true
	}
	return 0, false
}

// sgrIncomplete is returned by parseSGRMouse for a well-formed report that is
// missing its tail.
const sgrIncomplete = -1

// parseSGRMouse decodes an SGR mouse report "ESC [ < b ; col ; row M|m"
// at the start of seq. It returns the number of bytes consumed (0 if the
// sequence is malformed, sgrIncomplete if it is cut short) and whether it is
// a primary button press.
func parseSGRMouse(seq []byte) (n, col, row int, press bool) {
	const prefix = 3 // ESC [ <
	var fields [3]int
	field := 0
	start := prefix
	for i := prefix; i < len(seq); i++ {
		c := seq[i]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			if field > 2 {
				return 0, 0, 0, false
			}
			v, err := strconv.Atoi(string(seq[start:i]))
			if err != nil {
				return 0, 0, 0, false
			}
			fields[field] = v
			field++
			start = i + 1
			if c == ';' {
				continue
			}
			if field != 3 {
				return 0, 0, 0, false
			}
			btn := fields[0]
			// Low bits select the button; 32 flags motion and 64 the wheel.
			primary := btn&3 == 0 && btn&(32|64) == 0
			return i + 1, fields[1], fields[2], c == 'M' && primary
		default:
			return 0, 0, 0, false
		}
	}
	return sgrIncomplete, 0, 0, false
}
