package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/spacecleanup/internal/draw"
)

// Styles is the set of lipgloss styles used by screens. Styles are bound to a
// renderer so each SSH session gets its own color profile.
type Styles struct {
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Good     lipgloss.Style
	Bad      lipgloss.Style
	Gold     lipgloss.Style
}

// NewStyles builds styles for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("51")).MarginBottom(1),
		Item:     r.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 2),
		Selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("220")).Padding(0, 2),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(1, 3).
			Align(lipgloss.Center),
		Text:  r.NewStyle().Foreground(lipgloss.Color("252")),
		Muted: r.NewStyle().Foreground(lipgloss.Color("245")),
		Good:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		Bad:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Gold:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
	}
}

// Menu renders the menu as a bordered panel. footer lines go below the buttons.
func (s Styles) Menu(m *Menu, footer ...string) string {
	lines := make([]string, 0, len(m.Items)+len(footer)+1)
	if m.Title != "" {
		lines = append(lines, s.Title.Render(m.Title))
	}
	for i, item := range m.Items {
		label := fmt.Sprintf("%d  %s", i+1, item)
		if i == m.Selected {
			lines = append(lines, s.Selected.Render(label))
		} else {
			lines = append(lines, s.Item.Render(label))
		}
	}
	if len(footer) > 0 {
		lines = append(lines, "")
		for _, f := range footer {
			lines = append(lines, s.Muted.Render(f))
		}
	}
	return s.Panel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// Slider renders "Label  [#####.....] 50".
func (s Styles) Slider(sl *Slider, selected bool) string {
	const width = 20
	filled := 0
	if sl.Max > sl.Min {
		filled = (sl.Value - sl.Min) * width / (sl.Max - sl.Min)
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
	label := fmt.Sprintf("%-13s [%s] %3d", sl.Label, bar, sl.Value)
	if selected {
		return s.Selected.Render(label)
	}
	return s.Item.Render(label)
}

// Place writes a rendered block centered horizontally on the terminal at row.
func Place(w *draw.ChunkWriter, block string, termWidth, row int) {
	col := (termWidth-lipgloss.Width(block))/2 + 1
	if col < 1 {
		col = 1
	}
	for i, line := range strings.Split(block, "\n") {
		w.WriteAt(col, row+i, line)
	}
}

// PlaceCentered writes a block centered both ways.
func PlaceCentered(w *draw.ChunkWriter, block string, termWidth, termHeight int) {
	row := (termHeight-lipgloss.Height(block))/2 + 1
	if row < 1 {
		row = 1
	}
	Place(w, block, termWidth, row)
}
