package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/spacecleanup/internal/audio"
	"github.com/tomz197/spacecleanup/internal/draw"
	"github.com/tomz197/spacecleanup/internal/input"
	"github.com/tomz197/spacecleanup/internal/loop/config"
	"github.com/tomz197/spacecleanup/internal/object"
)

// updatePlaying runs one tick of gameplay.
func (g *Game) updatePlaying(dt time.Duration, in input.Input) {
	if in.Pause {
		g.setState(StatePaused)
		return
	}
	if in.Save {
		g.Save()
	}

	speed := g.Player.Speed()
	step := speed * dt.Seconds()
	g.movePlayer(step, in)

	fall := speed / 2 * dt.Seconds()
	for _, o := range g.Scraps {
		g.updateObject(o, fall)
	}
	for _, o := range g.Asteroids {
		g.updateObject(o, fall)
	}

	if g.Player.Dead() {
		g.log.Info("game over", "points", g.Player.Points)
		g.setState(StateGameOver)
	}
}

// movePlayer applies keyboard and pointer movement.
func (g *Game) movePlayer(step float64, in input.Input) {
	if in.Left {
		g.Player.MoveX(-step, g.Screen)
	}
	if in.Right {
		g.Player.MoveX(step, g.Screen)
	}
	if in.Pointer.Down {
		x, _ := g.canvas.TerminalToLogical(in.Pointer.Col, in.Pointer.Row)
		switch {
		case x > g.Player.Position.X:
			g.Player.MoveX(step, g.Screen)
		case x < g.Player.Position.X:
			g.Player.MoveX(-step, g.Screen)
		}
	}
}

// updateObject resolves exactly one of miss, hit or fall for o.
func (g *Game) updateObject(o *object.SpaceObject, fall float64) {
	switch {
	case o.BelowScreen(g.Screen):
		o.Reset(g.Screen, g.rng)
	case o.Position.Overlaps(g.Player.Position):
		g.hit(o)
	default:
		o.Fall(fall)
	}
}

// hit plays feedback for a collision, recycles the object and applies its effect.
func (g *Game) hit(o *object.SpaceObject) {
	cx, cy := o.Position.Center()
	if o.Hostile() {
		g.audio.PlayEffect(audio.EffectImpact, g.sound.Value)
		object.SpawnBurst(cx, cy, config.BurstParticles, config.BurstSpeed, config.BurstLifetime, draw.ColorOrange, g)
		g.Spawn(object.NewFloatingText(cx, cy, fmt.Sprintf("%d", o.Health), draw.ColorRed))
	} else {
		g.audio.PlayEffect(audio.EffectPickup, g.sound.Value)
		object.SpawnBurst(cx, cy, config.BurstParticles/2, config.BurstSpeed/2, config.BurstLifetime, draw.ColorYellow, g)
		g.Spawn(object.NewFloatingText(cx, cy, fmt.Sprintf("+%d", o.Points), draw.ColorGreen))
	}

	o.Reset(g.Screen, g.rng)
	o.Apply(g.Player)
}

// resetRun starts a new run: points and health back to defaults and every
// object re-randomized.
func (g *Game) resetRun() {
	g.Player.ResetRun()
	for _, o := range g.Scraps {
		o.Reset(g.Screen, g.rng)
	}
	for _, o := range g.Asteroids {
		o.Reset(g.Screen, g.rng)
	}
	for _, obj := range g.effects {
		object.ReleaseObject(obj)
	}
	g.effects = g.effects[:0]
	g.toSpawn = g.toSpawn[:0]
}
