package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Effect lengths.
const (
	impactDuration = 250 * time.Millisecond
	pickupDuration = 180 * time.Millisecond
)

// EffectStreamer builds a finite stream for e. Returns nil for unknown effects.
func EffectStreamer(e Effect, rate beep.SampleRate) beep.Streamer {
	switch e {
	case EffectImpact:
		return &impact{rate: rate, total: rate.N(impactDuration), rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	case EffectPickup:
		first, err := generators.SineTone(rate, 880)
		if err != nil {
			return nil
		}
		second, err := generators.SineTone(rate, 1320)
		if err != nil {
			return nil
		}
		half := rate.N(pickupDuration / 2)
		return beep.Seq(
			newFade(beep.Take(half, first), half),
			newFade(beep.Take(half, second), half),
		)
	default:
		return nil
	}
}

// impact is decaying noise over a low rumble.
type impact struct {
	rate  beep.SampleRate
	pos   int
	total int
	rng   *rand.Rand
}

func (g *impact) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.rate)
		env := math.Exp(-t * 12)
		noise := g.rng.Float64()*2 - 1
		rumble := 0.4 * math.Sin(2*math.Pi*70*t)
		v := env * (0.5*noise + rumble)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *impact) Err() error { return nil }

// fade applies a linear release over the last part of a stream.
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func newFade(s beep.Streamer, total int) beep.Streamer {
	return &fade{streamer: s, total: total}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(f.pos)/float64(f.total)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol * 0.5
		samples[i][1] *= vol * 0.5
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// Music is note sequences played as soft square-ish leads over a bass note.
// Each track runs 26 half-second steps, just over the 13 s rotation period.
var tracks = [TrackCount][]float64{
	{
		220, 262, 330, 262, 220, 262, 330, 392,
		349, 294, 349, 440, 392, 330, 262, 294,
		220, 262, 330, 262, 196, 247, 294, 247,
		220, 0,
	},
	{
		330, 0, 392, 330, 294, 262, 294, 330,
		440, 0, 392, 349, 330, 294, 262, 247,
		262, 0, 294, 330, 349, 392, 330, 294,
		262, 0,
	},
}

const noteDuration = 500 * time.Millisecond

// TrackStreamer builds the finite stream for a music track. The track index
// wraps around TrackCount.
func TrackStreamer(track int, rate beep.SampleRate) beep.Streamer {
	if track < 0 {
		track = -track
	}
	return &melody{
		rate:        rate,
		notes:       tracks[track%TrackCount],
		noteSamples: rate.N(noteDuration),
	}
}

type melody struct {
	rate        beep.SampleRate
	notes       []float64
	noteSamples int
	pos         int
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	total := len(m.notes) * m.noteSamples
	for i := range samples {
		if m.pos >= total {
			return i, i > 0
		}
		idx := m.pos / m.noteSamples
		inNote := m.pos % m.noteSamples
		freq := m.notes[idx]

		var v float64
		if freq > 0 {
			t := float64(m.pos) / float64(m.rate)
			env := 1 - float64(inNote)/float64(m.noteSamples)
			lead := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*3*t)
			bass := math.Sin(2 * math.Pi * freq / 2 * t)
			v = 0.2*env*lead + 0.1*bass
		}
		samples[i][0] = v
		samples[i][1] = v
		m.pos++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }
