package object

import (
	"math/rand"

	"github.com/tomz197/spacecleanup/internal/draw"
)

// Kind distinguishes collectible scrap from hostile asteroids.
type Kind int

const (
	KindScrap Kind = iota
	KindAsteroid
)

func (k Kind) String() string {
	switch k {
	case KindScrap:
		return "scrap"
	case KindAsteroid:
		return "asteroid"
	default:
		return "unknown"
	}
}

// Space object geometry.
const (
	SpaceObjectSize = 64.0
	SpawnBandHeight = 50.0 // Objects spawn with y in [0, SpawnBandHeight]

	// AsteroidHealth marks an object as hostile; applied to the player on hit.
	AsteroidHealth = -1
)

// SpaceObject is a falling piece of scrap or an asteroid.
type SpaceObject struct {
	Kind     Kind
	Position Rect
	Points   int     // In [1, 5)
	Rotation float64 // Degrees, [0, 360)
	Health   int     // AsteroidHealth for asteroids, Points for scrap
	Sprite   int     // Sprite variant within the kind's category
	variants int
}

// NewSpaceObject creates an object at a random spot in the spawn band.
// variants is how many sprites the kind's category offers.
func NewSpaceObject(kind Kind, screen Screen, variants int, rng *rand.Rand) *SpaceObject {
	o := &SpaceObject{
		Kind:     kind,
		Position: Rect{W: SpaceObjectSize, H: SpaceObjectSize},
		Points:   1 + rng.Intn(4),
		variants: variants,
	}
	if kind == KindAsteroid {
		o.Health = AsteroidHealth
	} else {
		o.Health = o.Points
	}
	o.Reset(screen, rng)
	return o
}

// Reset moves the object back to a fresh random spot in the spawn band with a
// new rotation and sprite.
func (o *SpaceObject) Reset(screen Screen, rng *rand.Rand) {
	maxX := float64(screen.Width) - o.Position.W
	if maxX < 0 {
		maxX = 0
	}
	o.Position.X = rng.Float64() * maxX
	o.Position.Y = rng.Float64() * SpawnBandHeight
	o.Rotation = rng.Float64() * 360
	if o.variants > 1 {
		o.Sprite = rng.Intn(o.variants)
	} else {
		o.Sprite = 0
	}
}

// Hostile reports whether touching the object hurts the player.
func (o *SpaceObject) Hostile() bool {
	return o.Health < 0
}

// Fall moves the object down by dy.
func (o *SpaceObject) Fall(dy float64) {
	o.Position.Y += dy
}

// BelowScreen reports whether the object has left the bottom of the screen.
func (o *SpaceObject) BelowScreen(screen Screen) bool {
	return o.Position.Y > float64(screen.Height)
}

// Apply applies the object's hit effect to the player.
func (o *SpaceObject) Apply(p *Player) {
	if o.Hostile() {
		p.Hurt(o.Health)
		return
	}
	p.CollectPoint(o.Points)
}

// Draw renders the rotated sprite.
func (o *SpaceObject) Draw(ctx DrawContext) error {
	r := o.Position
	col := draw.ColorYellow
	if o.Hostile() {
		col = draw.ColorGrey
	}
	ctx.Canvas.DrawBitmap(ctx.Sprites.Sprite(o.Kind, o.Sprite), r.X, r.Y, r.W, r.H, o.Rotation, col)
	if ctx.Debug {
		ctx.Canvas.StrokeRect(r.X, r.Y, r.W, r.H, draw.ColorBlue)
	}
	return nil
}
