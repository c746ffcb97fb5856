// Package object defines the game entities and their per-frame behaviour.
package object

import (
	"time"

	"github.com/tomz197/spacecleanup/internal/draw"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Screen  Screen
	Spawner Spawner
}

// SpriteSet resolves sprites by category.
type SpriteSet interface {
	Player() draw.Bitmap
	Variants(kind Kind) int
	Sprite(kind Kind, variant int) draw.Bitmap
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas  *draw.Canvas      // High-resolution canvas (2x vertical)
	Writer  *draw.ChunkWriter // Text overlay output
	Sprites SpriteSet
	Debug   bool // Draw bounding boxes
}

// Screen represents the logical play field dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen creates a screen with precomputed center.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for pixels, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
