// Package audio plays sound effects and background music.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Effect identifies a one-shot sound.
type Effect int

const (
	EffectImpact Effect = iota // Asteroid hit
	EffectPickup               // Scrap collected
)

func (e Effect) String() string {
	switch e {
	case EffectImpact:
		return "impact"
	case EffectPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// TrackCount is the number of background music tracks.
const TrackCount = 2

// Player is the audio sink used by the game. Volumes are 0-100.
type Player interface {
	PlayEffect(e Effect, volume int)
	PlayMusic(track int, volume int)
	SetMusicVolume(volume int)
	StopMusic()
	Close() error
}

// Nop discards all audio.
type Nop struct{}

func (Nop) PlayEffect(Effect, int) {}
func (Nop) PlayMusic(int, int)     {}
func (Nop) SetMusicVolume(int)     {}
func (Nop) StopMusic()             {}
func (Nop) Close() error           { return nil }

// Bell rings the terminal bell on impacts. Used for remote sessions where no
// speaker is available.
type Bell struct {
	W io.Writer
}

func (b Bell) PlayEffect(e Effect, volume int) {
	if e == EffectImpact && volume > 0 && b.W != nil {
		_, _ = io.WriteString(b.W, "\a")
	}
}

func (Bell) PlayMusic(int, int) {}
func (Bell) SetMusicVolume(int) {}
func (Bell) StopMusic()         {}
func (Bell) Close() error       { return nil }

// Speaker plays through the local sound device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	music  *beep.Ctrl
	level  *effects.Volume
	closed bool
}

// NewSpeaker initializes the speaker and starts the mixer.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// PlayEffect mixes a one-shot effect in.
func (s *Speaker) PlayEffect(e Effect, volume int) {
	if volume <= 0 {
		return
	}
	streamer := EffectStreamer(e, sampleRate)
	if streamer == nil {
		return
	}
	s.add(newVolume(streamer, float64(volume)/100))
}

// PlayMusic replaces the current music with the given track.
func (s *Speaker) PlayMusic(track int, volume int) {
	s.StopMusic()
	level := &effects.Volume{Streamer: TrackStreamer(track, sampleRate), Base: 2}
	setLevel(level, volume)
	ctrl := &beep.Ctrl{Streamer: level}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.music = ctrl
	s.level = level
	s.mu.Unlock()

	s.add(ctrl)
}

// SetMusicVolume changes the level of the playing track.
func (s *Speaker) SetMusicVolume(volume int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.level == nil {
		return
	}
	speaker.Lock()
	setLevel(s.level, volume)
	speaker.Unlock()
}

// StopMusic silences the current track.
func (s *Speaker) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Paused = true
	s.music.Streamer = nil
	speaker.Unlock()
	s.music = nil
	s.level = nil
}

// Close stops all sounds and releases the device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
	return nil
}

func (s *Speaker) add(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// setLevel maps a 0-100 volume onto v.
func setLevel(v *effects.Volume, volume int) {
	if volume <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(float64(volume) / 100)
	v.Silent = false
}

// newVolume scales a stream by a linear factor. math.Log2(0) is -Inf, so 0
// becomes silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
