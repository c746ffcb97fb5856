package object

import (
	"fmt"

	"github.com/tomz197/spacecleanup/internal/draw"
)

// FloatingText is a short label that drifts up from a hit, e.g. "+3".
// Coordinates are logical; Draw maps them to terminal cells.
type FloatingText struct {
	X, Y     float64
	Value    string
	Color    draw.Color
	Lifetime float64 // Seconds remaining
	Rise     float64 // Logical units per second
}

// NewFloatingText creates a label living for one second.
func NewFloatingText(x, y float64, value string, color draw.Color) *FloatingText {
	return &FloatingText{X: x, Y: y, Value: value, Color: color, Lifetime: 1.0, Rise: 80}
}

// Update drifts the label upward until its lifetime runs out.
func (t *FloatingText) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()
	t.Lifetime -= dt
	if t.Lifetime <= 0 {
		return true, nil
	}
	t.Y -= t.Rise * dt
	return false, nil
}

// Draw writes the label at its position.
func (t *FloatingText) Draw(ctx DrawContext) error {
	if t.Value == "" || ctx.Writer == nil {
		return nil
	}
	col, row := ctx.Canvas.LogicalToTerminal(t.X, t.Y)
	col -= len(t.Value) / 2
	if col < 1 || row < 1 || row > ctx.Canvas.TerminalHeight() {
		return nil
	}
	ctx.Writer.WriteAt(col, row, fmt.Sprintf("\033[38;5;%dm%s\033[0m", t.Color, t.Value))
	return nil
}
