package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/spacecleanup/internal/draw"
	"github.com/tomz197/spacecleanup/internal/input"
	"github.com/tomz197/spacecleanup/internal/loop/config"
)

// ErrNoSprites is returned by Run when no sprite set was provided.
var ErrNoSprites = errors.New("loop: sprites required")

// Run plays one game on r/w with the standard Input -> Update -> Draw cycle.
// It returns when the player quits, input ends or ctx is cancelled.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	if opts.Sprites == nil {
		return ErrNoSprites
	}
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}

	g := NewGame(opts)
	stream := input.StartStream(bufio.NewReader(r))
	g.resetKeys = func() { input.ResetKeyInput(stream) }
	cw := draw.NewChunkWriter(w, 0, 0)

	draw.HideCursor(w)
	draw.EnableMouse(w)
	defer func() {
		g.audio.StopMusic()
		draw.DisableMouse(w)
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()
	draw.ClearScreen(w)

	g.updateScreen(termSize, cw)
	lastTime := time.Now()

	for g.Running {
		select {
		case <-ctx.Done():
			g.log.Info("game stopped", "reason", ctx.Err())
			return nil
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT + UPDATE PHASE =====
		g.updateScreen(termSize, cw)
		g.Update(delta, input.ReadInput(stream))

		// ===== DRAW PHASE =====
		if err := g.drawFrame(cw); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	g.log.Info("game ended", "state", g.State, "points", g.Player.Points, "coins", g.Player.Coins)
	return nil
}

// updateScreen handles terminal resize, clamping to the max render resolution.
func (g *Game) updateScreen(termSize draw.TermSizeFunc, cw *draw.ChunkWriter) {
	termWidth, termHeight, err := termSize()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	g.canvas.Resize(renderWidth, renderHeight)
	g.canvas.SetOffset(offsetCol, offsetRow)
	cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
