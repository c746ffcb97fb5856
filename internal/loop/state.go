package loop

// GameState represents the current screen of a game.
type GameState int

const (
	StateMainMenu GameState = iota // Title menu
	StateTutorial                  // How to play
	StatePlaying                   // Active gameplay
	StatePaused                    // Pause menu over the frozen field
	StateOptions                   // Volume sliders
	StateShop                      // Points to coins
	StateCredits                   // Contributors
	StateGameOver                  // Health ran out
)

var stateNames = [...]string{
	StateMainMenu: "main_menu",
	StateTutorial: "tutorial",
	StatePlaying:  "playing",
	StatePaused:   "paused",
	StateOptions:  "options",
	StateShop:     "shop",
	StateCredits:  "credits",
	StateGameOver: "game_over",
}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// navStack remembers the screens Back returns to.
type navStack []GameState

func (n *navStack) push(s GameState) {
	*n = append(*n, s)
}

// pop returns the most recent screen, or StateMainMenu when empty.
func (n *navStack) pop() GameState {
	if len(*n) == 0 {
		return StateMainMenu
	}
	last := (*n)[len(*n)-1]
	*n = (*n)[:len(*n)-1]
	return last
}
