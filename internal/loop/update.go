package loop

import (
	"time"

	"github.com/tomz197/spacecleanup/internal/audio"
	"github.com/tomz197/spacecleanup/internal/input"
	"github.com/tomz197/spacecleanup/internal/loop/config"
	"github.com/tomz197/spacecleanup/internal/object"
	"github.com/tomz197/spacecleanup/internal/session"
	"github.com/tomz197/spacecleanup/internal/timer"
)

// Update advances the game by one frame.
func (g *Game) Update(dt time.Duration, in input.Input) {
	if dt > config.MaxFrameDelta {
		dt = config.MaxFrameDelta
	}
	if dt > 0 {
		g.fps = g.fps*0.9 + 0.1/dt.Seconds()
	}

	g.processEvents()
	g.trackActivity(in)

	if in.Quit || in.Closed {
		g.Quit()
		return
	}
	if g.shutdownTimer > 0 {
		g.shutdownTimer -= dt.Seconds()
		if g.shutdownTimer <= 0 {
			g.Quit()
		}
		return
	}

	if in.Debug {
		g.Apply(ActionToggleDebug)
	}
	g.updateMusic()

	switch g.State {
	case StatePlaying:
		g.updatePlaying(dt, in)
	case StateOptions:
		g.updateOptions(in)
	default:
		g.updateMenu(in)
	}

	g.updateEffects(dt)

	if g.noticeTimer > 0 {
		g.noticeTimer -= dt.Seconds()
		if g.noticeTimer <= 0 {
			g.notice = ""
		}
	}
}

// updateMusic starts the next track each time the rotation timer runs out.
func (g *Game) updateMusic() {
	if !g.musicTimer.Done() {
		return
	}
	g.audio.StopMusic()
	g.audio.PlayMusic(g.track, g.music.Value)
	g.track = (g.track + 1) % audio.TrackCount
	g.musicTimer = timer.NewWithClock(config.MusicPeriod, false, g.clock)
}

// processEvents drains hosting events without blocking.
func (g *Game) processEvents() {
	if g.events == nil {
		return
	}
	for {
		select {
		case ev, ok := <-g.events:
			if !ok {
				g.events = nil
				g.Quit()
				return
			}
			if ev.Type == session.EventServerShutdown && g.shutdownTimer <= 0 {
				g.log.Info("server shutting down, saving")
				g.Save()
				g.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// trackActivity disconnects idle hosted sessions.
func (g *Game) trackActivity(in input.Input) {
	if !g.idle {
		return
	}
	now := g.clock()
	if len(in.Pressed) > 0 {
		g.lastInput = now
		g.inactive = false
		return
	}
	idleFor := now.Sub(g.lastInput).Seconds()
	switch {
	case idleFor > config.InactivityDisconnectUser:
		g.log.Info("disconnecting idle session")
		g.Save()
		g.Quit()
	case idleFor > config.InactivityWarnUser:
		g.inactive = true
	}
}

// updateEffects advances particles and floating text.
func (g *Game) updateEffects(dt time.Duration) {
	ctx := object.UpdateContext{
		Delta:   dt,
		Screen:  g.Screen,
		Spawner: g,
	}
	kept := g.effects[:0]
	for _, obj := range g.effects {
		remove, err := obj.Update(ctx)
		if err != nil {
			g.log.Warn("effect update failed", "err", err)
			remove = true
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	g.effects = append(kept, g.toSpawn...)
	g.toSpawn = g.toSpawn[:0]
}
