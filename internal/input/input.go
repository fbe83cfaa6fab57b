// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered held after its last byte.
// It bridges the gap between terminal auto-repeat events.
const keyHoldDuration = 70 * time.Millisecond

// Input is the key state for one frame.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Space  bool
	Enter  bool
	Escape bool
	Number int  // Last digit pressed within the hold window, or -1
	Closed bool // The byte stream has ended
}

// keyState tracks the last time each key was seen.
type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	space     time.Time
	enter     time.Time
	escape    time.Time
	number    time.Time
	numberVal int
}

// Stream delivers input bytes via a channel and tracks key state.
type Stream struct {
	ch      chan byte
	state   keyState
	closed  bool
	pending []byte // Unfinished escape sequence held back from the last read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		state: keyState{numberVal: -1},
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking and
// returns the key state as of now.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	buf := append([]byte(nil), s.pending...)
	s.pending = s.pending[:0]
	carried := len(buf)
drain:
	for {
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

	// An arrow key can be split across reads. Hold a trailing ESC or ESC [
	// back for one read; if nothing follows it is a lone Escape.
	if len(buf) > carried && !s.closed {
		if n := unfinishedCSI(buf); n > 0 {
			s.pending = append(s.pending, buf[len(buf)-n:]...)
			buf = buf[:len(buf)-n]
		}
	}

	applyBytes(&s.state, buf, now)
	in := snapshot(&s.state, now)
	in.Closed = s.closed
	return in
}

// unfinishedCSI returns the length of an escape sequence prefix that ends
// buf, or 0.
func unfinishedCSI(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		return 2
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	}
	return 0
}

// applyBytes updates key timestamps from a chunk of raw input.
// Arrow keys arrive as CSI sequences: ESC [ A-D.
func applyBytes(state *keyState, buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}

		applyByte(state, b, now)
	}
}

// applyByte updates the key state for a single byte.
func applyByte(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case '\x03': // Ctrl+C in raw mode
		state.quit = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
	}
}

// snapshot reports every key seen within the hold window as pressed.
func snapshot(state *keyState, now time.Time) Input {
	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	in := Input{
		Quit:   held(state.quit),
		Left:   held(state.left),
		Right:  held(state.right),
		Space:  held(state.space),
		Enter:  held(state.enter),
		Escape: held(state.escape),
		Number: -1,
	}
	if held(state.number) {
		in.Number = state.numberVal
	}
	return in
}
