// Package input turns raw terminal bytes into per-frame game input.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a movement key is considered "held" after its
// last press. Terminals only report key repeats, so holding bridges the gaps.
const keyHoldDuration = 60 * time.Millisecond

// Pointer is the last known mouse/touch position in 1-based terminal cells.
type Pointer struct {
	Col, Row int
	Down     bool // Primary button held (press or drag seen, no release yet)
}

// Input represents the current frame's input state.
// Left and Right are held states; the remaining flags are set only on the
// frame their key arrived.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Select  bool // Enter or Space
	Pause   bool // P or a lone Escape
	Debug   bool // G
	Save    bool // B
	Number  int  // Digit pressed this frame, -1 if none
	Nudge   int  // -1 or +1 when left or right arrived this frame, for sliders
	Closed  bool // The input source has ended
	Pointer Pointer
	Pressed []byte
}

// maxPending bounds the unfinished escape sequence kept between frames.
const maxPending = 32

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left    time.Time
	right   time.Time
	pointer Pointer
	pending []byte // Unfinished escape sequence carried into the next frame
}

// Stream delivers input bytes via a channel and tracks key state.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := NewStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// NewStream creates a stream with no reader attached. Feed it with Push.
func NewStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// Push queues raw bytes as if they were read from the terminal.
func (s *Stream) Push(p []byte) {
	for _, b := range p {
		s.ch <- b
	}
}

// ResetKeyInput forgets held keys, so a key held across a screen change
// does not leak into the next screen.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state.left = time.Time{}
	s.state.right = time.Time{}
	s.state.pointer.Down = false
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// builds the input for this frame.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	buf := s.state.pending
	s.state.pending = nil
	fresh := 0
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
			fresh++
		default:
			break drain
		}
	}

	in := Input{Number: -1, Closed: closed, Pressed: buf[len(buf)-fresh:]}
	parse(&s.state, &in, buf, now, fresh == 0 || closed)

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Pointer = s.state.pointer
	return in
}

// parse walks the collected bytes, handling CSI arrow keys and SGR mouse
// reports, and applies everything else byte by byte. A sequence cut off at
// the end of buf is kept in state.pending and finished on the next frame.
// A trailing Escape only counts as Pause once a frame brings no more bytes.
func parse(state *keyState, in *Input, buf []byte, now time.Time, idle bool) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(state, in, b, now)
			continue
		}

		if i+1 == len(buf) {
			if idle {
				in.Pause = true
			} else {
				keepPending(state, buf[i:])
			}
			return
		}
		if buf[i+1] != '[' {
			in.Pause = true
			continue
		}

		n, ok := parseCSI(state, in, buf[i+2:], now)
		if !ok {
			keepPending(state, buf[i:])
			return
		}
		i += 1 + n
	}
}

func keepPending(state *keyState, tail []byte) {
	if len(tail) > maxPending {
		return
	}
	state.pending = append([]byte(nil), tail...)
}

// parseCSI handles the bytes after "ESC [". It returns how many bytes the
// sequence used, or false when the final byte has not arrived yet.
// Sequences the game has no use for are consumed and ignored.
func parseCSI(state *keyState, in *Input, p []byte, now time.Time) (int, bool) {
	end := -1
	for j, c := range p {
		if c >= 0x40 && c <= 0x7e {
			end = j
			break
		}
		if c < 0x20 || c > 0x3f {
			// Not a CSI body; drop the introducer only.
			return 0, true
		}
	}
	if end < 0 {
		return 0, false
	}

	params, final := p[:end], p[end]
	if len(params) > 0 && params[0] == '<' {
		parseSGRMouse(params[1:], final, &state.pointer)
		return end + 1, true
	}

	switch final {
	case 'A':
		in.Up = true
	case 'B':
		in.Down = true
	case 'C':
		state.right = now
		in.Nudge = 1
	case 'D':
		state.left = now
		in.Nudge = -1
	}
	return end + 1, true
}

// parseSGRMouse parses the "b;col;row" body of an SGR mouse report whose
// final byte is M (press/drag) or m (release).
func parseSGRMouse(params []byte, final byte, ptr *Pointer) bool {
	if final != 'M' && final != 'm' {
		return false
	}
	var fields [3]int
	field := 0
	for _, b := range params {
		switch {
		case b >= '0' && b <= '9':
			fields[field] = fields[field]*10 + int(b-'0')
		case b == ';':
			field++
			if field > 2 {
				return false
			}
		default:
			return false
		}
	}
	if field != 2 {
		return false
	}

	button := fields[0]
	if button >= 64 {
		// Wheel events carry no pointer meaning for the game
		return true
	}
	ptr.Col = fields[1]
	ptr.Row = fields[2]
	if final == 'm' {
		ptr.Down = false
	} else if button&3 == 0 {
		ptr.Down = true
	}
	return true
}

// applyByte updates key state for a single byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		in.Quit = true
	case 'a', 'A', 'h', 'H':
		state.left = now
		in.Nudge = -1
	case 'd', 'D', 'l', 'L':
		state.right = now
		in.Nudge = 1
	case 'w', 'W', 'k', 'K':
		in.Up = true
	case 's', 'S', 'j', 'J':
		in.Down = true
	case ' ', '\n', '\r':
		in.Select = true
	case 'p', 'P':
		in.Pause = true
	case 'g', 'G':
		in.Debug = true
	case 'b', 'B':
		in.Save = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}
