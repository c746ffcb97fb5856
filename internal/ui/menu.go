// Package ui holds the menu widgets and their lipgloss styling.
package ui

// Menu is a vertical list of buttons with one selected.
type Menu struct {
	Title    string
	Items    []string
	Selected int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(title string, items ...string) *Menu {
	return &Menu{Title: title, Items: items}
}

// Move shifts the selection by delta, wrapping at both ends.
func (m *Menu) Move(delta int) {
	n := len(m.Items)
	if n == 0 {
		return
	}
	m.Selected = ((m.Selected+delta)%n + n) % n
}

// Pick maps a pressed digit to an item index. Digits are 1-based.
func (m *Menu) Pick(digit int) (int, bool) {
	idx := digit - 1
	if idx < 0 || idx >= len(m.Items) {
		return 0, false
	}
	m.Selected = idx
	return idx, true
}

// Slider is an integer setting adjusted in fixed steps.
type Slider struct {
	Label string
	Value int
	Min   int
	Max   int
	Step  int
}

// NewSlider creates a 0-100 slider with step 5.
func NewSlider(label string, value int) *Slider {
	s := &Slider{Label: label, Min: 0, Max: 100, Step: 5}
	s.Set(value)
	return s
}

// Set assigns v, clamped to the slider range.
func (s *Slider) Set(v int) {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	s.Value = v
}

// Adjust moves the value by dir steps.
func (s *Slider) Adjust(dir int) {
	s.Set(s.Value + dir*s.Step)
}
