package input

import (
	"testing"
	"time"
)

func TestReadInputEmpty(t *testing.T) {
	s := NewStream()
	in := ReadInput(s)

	if in.Left || in.Right || in.Select || in.Pause || in.Quit {
		t.Errorf("expected no input, got %+v", in)
	}
	if in.Number != -1 {
		t.Errorf("expected Number -1, got %d", in.Number)
	}
}

func TestReadInputKeys(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		check func(Input) bool
	}{
		{"quit", "q", func(in Input) bool { return in.Quit }},
		{"left", "a", func(in Input) bool { return in.Left }},
		{"right", "d", func(in Input) bool { return in.Right }},
		{"left arrow", "\x1b[D", func(in Input) bool { return in.Left && !in.Pause }},
		{"right arrow", "\x1b[C", func(in Input) bool { return in.Right && !in.Pause }},
		{"up arrow", "\x1b[A", func(in Input) bool { return in.Up }},
		{"down", "s", func(in Input) bool { return in.Down }},
		{"enter", "\r", func(in Input) bool { return in.Select }},
		{"space", " ", func(in Input) bool { return in.Select }},
		{"pause", "p", func(in Input) bool { return in.Pause }},
		{"debug", "g", func(in Input) bool { return in.Debug }},
		{"save", "b", func(in Input) bool { return in.Save }},
		{"digit", "3", func(in Input) bool { return in.Number == 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream()
			s.Push([]byte(tt.bytes))
			in := ReadInput(s)
			if !tt.check(in) {
				t.Errorf("unexpected input for %q: %+v", tt.bytes, in)
			}
		})
	}
}

func TestHeldKeyExpires(t *testing.T) {
	s := NewStream()
	start := time.Now()
	s.Push([]byte("d"))

	in := readInputAt(s, start)
	if !in.Right {
		t.Fatal("expected right held on the frame it arrived")
	}

	in = readInputAt(s, start.Add(keyHoldDuration/2))
	if !in.Right {
		t.Error("expected right still held within hold duration")
	}

	in = readInputAt(s, start.Add(keyHoldDuration*2))
	if in.Right {
		t.Error("expected right released after hold duration")
	}
}

func TestEdgeKeysOnlyLastOneFrame(t *testing.T) {
	s := NewStream()
	s.Push([]byte("p"))

	if in := ReadInput(s); !in.Pause {
		t.Fatal("expected pause on first frame")
	}
	if in := ReadInput(s); in.Pause {
		t.Error("expected pause to not repeat on the next frame")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := NewStream()
	s.Push([]byte("a"))
	now := time.Now()
	readInputAt(s, now)

	ResetKeyInput(s)
	if in := readInputAt(s, now); in.Left {
		t.Error("expected held key cleared by reset")
	}
}

func TestMousePressDragRelease(t *testing.T) {
	s := NewStream()

	s.Push([]byte("\x1b[<0;12;7M"))
	in := ReadInput(s)
	if !in.Pointer.Down || in.Pointer.Col != 12 || in.Pointer.Row != 7 {
		t.Fatalf("expected press at 12,7, got %+v", in.Pointer)
	}
	if in.Pause {
		t.Error("mouse report must not be read as a lone escape")
	}

	s.Push([]byte("\x1b[<32;20;7M"))
	in = ReadInput(s)
	if !in.Pointer.Down || in.Pointer.Col != 20 {
		t.Errorf("expected drag to 20 with button held, got %+v", in.Pointer)
	}

	// Pointer state persists across frames without new events
	in = ReadInput(s)
	if !in.Pointer.Down {
		t.Error("expected pointer to stay down until release")
	}

	s.Push([]byte("\x1b[<0;20;7m"))
	in = ReadInput(s)
	if in.Pointer.Down {
		t.Error("expected pointer released")
	}
}

func TestMouseWheelIgnored(t *testing.T) {
	s := NewStream()
	s.Push([]byte("\x1b[<64;5;5M"))
	in := ReadInput(s)
	if in.Pointer.Down || in.Pointer.Col != 0 {
		t.Errorf("expected wheel to leave pointer untouched, got %+v", in.Pointer)
	}
	if in.Pause || in.Number != -1 {
		t.Errorf("expected wheel bytes fully consumed, got %+v", in)
	}
}

func TestUnknownSequenceIgnored(t *testing.T) {
	s := NewStream()
	s.Push([]byte("\x1b[<1x"))
	in := ReadInput(s)
	if in.Pause || in.Number != -1 {
		t.Errorf("expected the sequence to be dropped, got %+v", in)
	}
}

func TestLoneEscapePausesOnceQuiet(t *testing.T) {
	s := NewStream()
	s.Push([]byte("\x1b"))
	if in := ReadInput(s); in.Pause {
		t.Error("expected a trailing escape to wait for the next frame")
	}
	if in := ReadInput(s); !in.Pause {
		t.Error("expected pause once no more bytes arrived")
	}
	if in := ReadInput(s); in.Pause {
		t.Error("expected pause to last one frame")
	}
}

func TestEscapeFollowedByKey(t *testing.T) {
	s := NewStream()
	s.Push([]byte("\x1bq"))
	in := ReadInput(s)
	if !in.Pause || !in.Quit {
		t.Errorf("expected pause and quit, got %+v", in)
	}
}

func TestMouseReportSplitAcrossFrames(t *testing.T) {
	s := NewStream()
	s.Push([]byte("\x1b[<0;12"))
	in := ReadInput(s)
	if in.Pause || in.Number != -1 || in.Select {
		t.Errorf("expected no keys from a partial report, got %+v", in)
	}
	if in.Pointer.Down {
		t.Error("expected pointer untouched until the report completes")
	}

	s.Push([]byte(";5M"))
	in = ReadInput(s)
	if in.Pause || in.Number != -1 {
		t.Errorf("expected no keys from the report tail, got %+v", in)
	}
	if in.Pointer.Col != 12 || in.Pointer.Row != 5 || !in.Pointer.Down {
		t.Errorf("expected pointer down at (12,5), got %+v", in.Pointer)
	}
}

func TestArrowSplitAcrossFrames(t *testing.T) {
	s := NewStream()
	start := time.Now()
	s.Push([]byte("\x1b"))
	if in := readInputAt(s, start); in.Pause || in.Left {
		t.Errorf("expected nothing yet, got %+v", in)
	}
	s.Push([]byte("[D"))
	in := readInputAt(s, start.Add(5*time.Millisecond))
	if in.Pause || !in.Left || in.Nudge != -1 {
		t.Errorf("expected left arrow, got %+v", in)
	}
}

func TestModifiedArrow(t *testing.T) {
	s := NewStream()
	s.Push([]byte("\x1b[1;2C"))
	in := ReadInput(s)
	if !in.Right || in.Number != -1 {
		t.Errorf("expected right without digits, got %+v", in)
	}
}

func TestResetKeepsPartialReport(t *testing.T) {
	s := NewStream()
	s.Push([]byte("\x1b[<0;3"))
	ReadInput(s)
	ResetKeyInput(s)
	s.Push([]byte(";4M"))
	in := ReadInput(s)
	if in.Number != -1 || in.Pointer.Col != 3 || in.Pointer.Row != 4 {
		t.Errorf("expected the report to complete after a reset, got %+v", in)
	}
}

func TestNudgeOnlyOnArrival(t *testing.T) {
	s := NewStream()
	start := time.Now()
	s.Push([]byte("\x1b[D"))

	if in := readInputAt(s, start); in.Nudge != -1 {
		t.Errorf("expected nudge -1, got %d", in.Nudge)
	}
	if in := readInputAt(s, start.Add(10*time.Millisecond)); in.Nudge != 0 || !in.Left {
		t.Errorf("expected held left without nudge, got %+v", in)
	}
}

func TestClosedStream(t *testing.T) {
	s := NewStream()
	s.Push([]byte("a"))
	close(s.ch)

	in := ReadInput(s)
	if !in.Closed || !in.Left {
		t.Errorf("expected closed with pending left, got %+v", in)
	}
}
