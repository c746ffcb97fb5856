package loop

import (
	"fmt"

	"github.com/tomz197/spacecleanup/internal/input"
	"github.com/tomz197/spacecleanup/internal/ui"
)

// Action is something a menu button (or shortcut) does.
type Action int

const (
	ActionNone      Action = iota
	ActionPlay             // Main menu to tutorial
	ActionStartGame        // Tutorial to playing
	ActionPause
	ActionContinue
	ActionShop
	ActionConvert // Points to coins
	ActionCredits
	ActionOptions
	ActionBack
	ActionPlayAgain
	ActionSave
	ActionToggleDebug
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:        "none",
	ActionPlay:        "play",
	ActionStartGame:   "start_game",
	ActionPause:       "pause",
	ActionContinue:    "continue",
	ActionShop:        "shop",
	ActionConvert:     "convert",
	ActionCredits:     "credits",
	ActionOptions:     "options",
	ActionBack:        "back",
	ActionPlayAgain:   "play_again",
	ActionSave:        "save",
	ActionToggleDebug: "toggle_debug",
	ActionQuit:        "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// menu pairs a widget with the action behind each button.
type menu struct {
	*ui.Menu
	actions []Action
}

type entry struct {
	label  string
	action Action
}

func newMenu(title string, entries ...entry) *menu {
	m := &menu{Menu: ui.NewMenu(title)}
	for _, e := range entries {
		m.Items = append(m.Items, e.label)
		m.actions = append(m.actions, e.action)
	}
	return m
}

func (m *menu) current() Action {
	if len(m.actions) == 0 {
		return ActionNone
	}
	return m.actions[m.Selected]
}

// Options rows, in menu order.
const (
	optionMusic = iota
	optionSound
	optionBack
)

func newMenus() map[GameState]*menu {
	return map[GameState]*menu{
		StateMainMenu: newMenu("SPACE CLEANUP",
			entry{"Play", ActionPlay},
			entry{"Credits", ActionCredits},
			entry{"Options", ActionOptions},
			entry{"Quit", ActionQuit},
		),
		StateTutorial: newMenu("How to play",
			entry{"Play Game", ActionStartGame},
		),
		StatePaused: newMenu("Paused",
			entry{"Continue", ActionContinue},
			entry{"Go to Shop", ActionShop},
			entry{"Credits", ActionCredits},
			entry{"Options", ActionOptions},
			entry{"Quit", ActionQuit},
		),
		StateShop: newMenu("Shop",
			entry{"Convert Points to Coins", ActionConvert},
			entry{"Back", ActionBack},
		),
		StateCredits: newMenu("Credits",
			entry{"Back", ActionBack},
		),
		StateOptions: newMenu("Options",
			entry{"Music volume", ActionNone},
			entry{"Sound volume", ActionNone},
			entry{"Back", ActionBack},
		),
		StateGameOver: newMenu("Game Over",
			entry{"Play Again", ActionPlayAgain},
			entry{"Quit", ActionQuit},
		),
	}
}

// navigate applies Up/Down and digits to m. Returns the action to run, if any.
func navigate(m *menu, in input.Input) Action {
	if in.Up {
		m.Move(-1)
	}
	if in.Down {
		m.Move(1)
	}
	if in.Number >= 0 {
		if _, ok := m.Pick(in.Number); ok {
			return m.current()
		}
	}
	if in.Select {
		return m.current()
	}
	return ActionNone
}

// updateMenu handles every menu screen except Options.
func (g *Game) updateMenu(in input.Input) {
	m, ok := g.menus[g.State]
	if !ok {
		return
	}
	if in.Pause {
		switch g.State {
		case StatePaused:
			g.Apply(ActionContinue)
			return
		case StateShop, StateCredits:
			g.Apply(ActionBack)
			return
		}
	}
	if in.Save && g.State == StatePaused {
		g.Apply(ActionSave)
	}
	g.Apply(navigate(m, in))
}

// updateOptions handles the volume sliders and Back.
func (g *Game) updateOptions(in input.Input) {
	m := g.menus[StateOptions]
	if in.Pause {
		g.Apply(ActionBack)
		return
	}
	action := navigate(m, in)

	if in.Nudge != 0 {
		switch m.Selected {
		case optionMusic:
			g.SetMusicVolume(g.music.Value + in.Nudge*g.music.Step)
		case optionSound:
			g.sound.Adjust(in.Nudge)
		}
	}
	g.Apply(action)
}

// SetMusicVolume changes the music slider and the playing track's level.
func (g *Game) SetMusicVolume(v int) {
	g.music.Set(v)
	g.audio.SetMusicVolume(g.music.Value)
}

// Apply runs an action against the current screen. Actions that make no
// sense on the current screen are ignored.
func (g *Game) Apply(a Action) {
	if a == ActionNone {
		return
	}
	g.log.Debug("action", "action", a, "state", g.State)

	switch a {
	case ActionPlay:
		if g.State == StateMainMenu {
			g.setState(StateTutorial)
		}
	case ActionStartGame:
		if g.State == StateTutorial {
			g.setState(StatePlaying)
		}
	case ActionPause:
		if g.State == StatePlaying {
			g.setState(StatePaused)
		}
	case ActionContinue:
		if g.State == StatePaused {
			g.setState(StatePlaying)
		}
	case ActionShop:
		if g.State == StatePaused {
			g.setState(StateShop)
		}
	case ActionConvert:
		if g.State == StateShop {
			coins := g.Player.ConvertPoints()
			g.log.Info("points converted", "coins", coins, "total", g.Player.Coins)
			g.flash(fmt.Sprintf("+%d coins", coins))
		}
	case ActionCredits:
		if g.State == StateMainMenu || g.State == StatePaused {
			g.open(StateCredits)
		}
	case ActionOptions:
		if g.State == StateMainMenu || g.State == StatePaused {
			g.open(StateOptions)
		}
	case ActionBack:
		switch g.State {
		case StateShop:
			g.setState(StatePlaying)
		case StateCredits, StateOptions:
			g.back()
		}
	case ActionPlayAgain:
		if g.State == StateGameOver {
			g.resetRun()
			g.setState(StatePlaying)
		}
	case ActionSave:
		if g.State == StatePlaying || g.State == StatePaused {
			g.Save()
		}
	case ActionToggleDebug:
		g.Debug = !g.Debug
	case ActionQuit:
		g.Quit()
	}
}
