package loop

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/spacecleanup/internal/draw"
	"github.com/tomz197/spacecleanup/internal/object"
	"github.com/tomz197/spacecleanup/internal/ui"
)

var credits = []string{
	"Code, music and sound FX by Anatoliy K.",
	"Textures by @happyghost_fren",
	"Sound FX designed with JSFXR",
	"Music written with Beepbox",
	"Terminal port with the Charm libraries",
}

// drawFrame renders the whole frame into cw and flushes it.
func (g *Game) drawFrame(cw *draw.ChunkWriter) error {
	cw.WriteString("\033[H\033[2J")
	g.canvas.Clear()

	ctx := object.DrawContext{
		Canvas:  g.canvas,
		Sprites: g.sprites,
		Debug:   g.Debug,
	}

	switch g.State {
	case StatePlaying, StatePaused, StateShop, StateGameOver:
		if err := g.drawField(ctx); err != nil {
			return err
		}
	case StateTutorial:
		g.drawTutorialSprites()
	}

	g.canvas.Render(cw)
	g.canvas.RenderBorder(cw)

	// Text effects go on top of the rendered canvas.
	ctx.Writer = cw
	for _, obj := range g.effects {
		if ft, ok := obj.(*object.FloatingText); ok {
			if err := ft.Draw(ctx); err != nil {
				return err
			}
		}
	}

	g.drawUI(cw)
	return cw.Flush()
}

// drawField draws falling objects, the player and effects onto the canvas.
func (g *Game) drawField(ctx object.DrawContext) error {
	for _, o := range g.Scraps {
		if err := o.Draw(ctx); err != nil {
			return err
		}
	}
	for _, o := range g.Asteroids {
		if err := o.Draw(ctx); err != nil {
			return err
		}
	}
	if err := g.Player.Draw(ctx); err != nil {
		return err
	}
	for _, obj := range g.effects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Tutorial layout in logical units.
const (
	tutorialSpriteY   = 260.0
	tutorialAsteroidX = 440.0
	tutorialScrapX    = 776.0
)

func (g *Game) drawTutorialSprites() {
	size := object.SpaceObjectSize * 1.5
	g.canvas.DrawBitmap(g.sprites.Sprite(object.KindAsteroid, 0), tutorialAsteroidX, tutorialSpriteY, size, size, 0, draw.ColorGrey)
	g.canvas.DrawBitmap(g.sprites.Sprite(object.KindScrap, 0), tutorialScrapX, tutorialSpriteY, size, size, 0, draw.ColorYellow)
}

// drawUI draws menus, the HUD and notices over the canvas.
func (g *Game) drawUI(cw *draw.ChunkWriter) {
	tw := g.canvas.TerminalWidth()
	th := g.canvas.TerminalHeight()
	s := g.styles

	if g.shutdownTimer > 0 {
		msg := s.Panel.Render(lipgloss.JoinVertical(lipgloss.Center,
			s.Bad.Render("SERVER SHUTTING DOWN"),
			"",
			s.Text.Render("Your progress has been saved."),
			s.Muted.Render(fmt.Sprintf("Disconnecting in %.0f s", g.shutdownTimer)),
		))
		ui.PlaceCentered(cw, msg, tw, th)
		return
	}

	switch g.State {
	case StatePlaying:
		g.drawHUD(cw, tw)
	case StateMainMenu:
		ui.PlaceCentered(cw, s.Menu(g.menus[StateMainMenu].Menu,
			"W/S or arrows to choose, Enter to select",
			"G toggles debug, Q quits"), tw, th)
	case StateTutorial:
		g.drawTutorial(cw, tw, th)
	case StatePaused:
		g.drawHUD(cw, tw)
		ui.PlaceCentered(cw, s.Menu(g.menus[StatePaused].Menu, "P or Esc to resume, B to save"), tw, th)
	case StateShop:
		ui.PlaceCentered(cw, s.Menu(g.menus[StateShop].Menu,
			fmt.Sprintf("Points %d   Coins %d", g.Player.Points, g.Player.Coins),
			"10 points buy 1 coin"), tw, th)
	case StateCredits:
		lines := make([]string, 0, len(credits))
		for _, c := range credits {
			lines = append(lines, s.Text.Render(c))
		}
		ui.PlaceCentered(cw, s.Menu(g.menus[StateCredits].Menu, lines...), tw, th)
	case StateOptions:
		g.drawOptions(cw, tw, th)
	case StateGameOver:
		ui.PlaceCentered(cw, s.Menu(g.menus[StateGameOver].Menu,
			fmt.Sprintf("Game Over! You have %d points!", g.Player.Points)), tw, th)
	}

	if g.Debug {
		fps := fmt.Sprintf("FPS: %.0f", g.fps)
		cw.WriteAt(tw/2-len(fps)/2, 1, s.Muted.Render(fps))
	}
	if g.notice != "" {
		cw.WriteAt(tw/2-len(g.notice)/2, 2, s.Good.Render(g.notice))
	}
	if g.inactive {
		warn := "Inactive - press any key to stay connected"
		cw.WriteAt(tw/2-len(warn)/2, th, s.Bad.Render(warn))
	}
}

func (g *Game) drawHUD(cw *draw.ChunkWriter, tw int) {
	s := g.styles
	points := fmt.Sprintf("Points: %d", g.Player.Points)
	health := fmt.Sprintf("Health: %d", g.Player.Health)
	cw.WriteAt(3, 1, s.Gold.Render(points))
	cw.WriteAt(tw-len(health)-2, 1, s.Bad.Render(health))
}

func (g *Game) drawTutorial(cw *draw.ChunkWriter, tw, th int) {
	s := g.styles
	size := object.SpaceObjectSize * 1.5
	below := tutorialSpriteY + size + 20

	avoid := "Avoid the Asteroids"
	col, row := g.canvas.LogicalToTerminal(tutorialAsteroidX+size/2, below)
	cw.WriteAt(col-len(avoid)/2, row, s.Text.Render(avoid))

	catch := "Catch the Scraps"
	col, row = g.canvas.LogicalToTerminal(tutorialScrapX+size/2, below)
	cw.WriteAt(col-len(catch)/2, row, s.Text.Render(catch))

	menu := s.Menu(g.menus[StateTutorial].Menu, "A/D, arrows or mouse to move", "P to pause")
	_, row = g.canvas.LogicalToTerminal(0, float64(g.Screen.Height)*0.6)
	if row+lipgloss.Height(menu) > th {
		row = th - lipgloss.Height(menu) + 1
	}
	ui.Place(cw, menu, tw, row)
}

func (g *Game) drawOptions(cw *draw.ChunkWriter, tw, th int) {
	s := g.styles
	m := g.menus[StateOptions]
	back := s.Item.Render(fmt.Sprintf("%d  Back", optionBack+1))
	if m.Selected == optionBack {
		back = s.Selected.Render(fmt.Sprintf("%d  Back", optionBack+1))
	}
	panel := s.Panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(m.Title),
		s.Slider(g.music, m.Selected == optionMusic),
		s.Slider(g.sound, m.Selected == optionSound),
		back,
		"",
		s.Muted.Render("Left/Right to adjust"),
	))
	ui.PlaceCentered(cw, panel, tw, th)
}
