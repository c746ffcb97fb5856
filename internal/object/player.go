package object

import (
	"math"

	"github.com/tomz197/spacecleanup/internal/draw"
	"github.com/tomz197/spacecleanup/internal/physics"
)

// Player defaults.
const (
	PlayerWidth   = 75.0
	PlayerHeight  = 125.0
	InitialHealth = 5

	baseSpeed = 250.0
	maxSpeed  = 3500.0
)

// Player is the ship at the bottom of the screen.
type Player struct {
	Position Rect
	Health   int
	Points   int
	Coins    int
}

// NewPlayer creates a player centered horizontally, three quarters down the screen.
func NewPlayer(screen Screen) *Player {
	return &Player{
		Position: Rect{
			X: float64(screen.Width) / 2,
			Y: float64(screen.Height) / 10 * 7.5,
			W: PlayerWidth,
			H: PlayerHeight,
		},
		Health: InitialHealth,
	}
}

// CalculateSpeed returns the horizontal speed in units per second for the
// given points. Grows by 2 per point from 250, capped at 3500.
func CalculateSpeed(points int) float64 {
	return math.Min(maxSpeed, float64(points)*2+baseSpeed)
}

// Speed returns the player's current horizontal speed.
func (p *Player) Speed() float64 {
	return CalculateSpeed(p.Points)
}

// MoveX shifts the player horizontally, keeping it fully on screen.
func (p *Player) MoveX(dx float64, screen Screen) {
	maxX := float64(screen.Width) - p.Position.W
	p.Position.X = physics.Clamp(p.Position.X+dx, 0, maxX)
}

// CollectPoint adds scrap points.
func (p *Player) CollectPoint(n int) {
	p.Points += n
}

// Hurt adds n to health. Asteroid damage is negative.
func (p *Player) Hurt(n int) {
	p.Health += n
}

// Dead reports whether the run is over.
func (p *Player) Dead() bool {
	return p.Health <= 0
}

// ResetRun restores points and health for a new run. Coins and position stay.
func (p *Player) ResetRun() {
	p.Points = 0
	p.Health = InitialHealth
}

// ConvertPoints exchanges points for coins at 10:1 and returns the coins granted.
// The granted amount is also deducted from points.
func (p *Player) ConvertPoints() int {
	coins := p.Points / 10
	p.Coins += coins
	p.Points -= coins
	return coins
}

// Draw renders the ship sprite.
func (p *Player) Draw(ctx DrawContext) error {
	r := p.Position
	ctx.Canvas.DrawBitmap(ctx.Sprites.Player(), r.X, r.Y, r.W, r.H, 0, draw.ColorCyan)
	if ctx.Debug {
		ctx.Canvas.StrokeRect(r.X, r.Y, r.W, r.H, draw.ColorBlue)
	}
	return nil
}
