// Package loop runs one game: the state machine, the per-frame world update
// and the terminal frame loop.
package loop

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tomz197/spacecleanup/internal/audio"
	"github.com/tomz197/spacecleanup/internal/draw"
	"github.com/tomz197/spacecleanup/internal/loop/config"
	"github.com/tomz197/spacecleanup/internal/object"
	"github.com/tomz197/spacecleanup/internal/save"
	"github.com/tomz197/spacecleanup/internal/session"
	"github.com/tomz197/spacecleanup/internal/timer"
	"github.com/tomz197/spacecleanup/internal/ui"
)

// Options configures a game. Zero values fall back to quiet defaults.
type Options struct {
	Store        save.Store
	Audio        audio.Player
	Logger       *log.Logger
	Sprites      object.SpriteSet
	Renderer     *lipgloss.Renderer // Per-session color profile for menus
	TermSizeFunc draw.TermSizeFunc
	Events       <-chan session.Event // Hosting events, nil when local
	Seed         int64                // 0 picks a time-based seed
	Clock        timer.Clock
	Idle         bool // Disconnect after long inactivity (hosted sessions)
}

// Game holds everything one player sees and plays.
type Game struct {
	State   GameState
	Running bool
	Debug   bool

	Screen    object.Screen
	Player    *object.Player
	Scraps    []*object.SpaceObject
	Asteroids []*object.SpaceObject

	effects []object.Object
	toSpawn []object.Object

	nav    navStack
	menus  map[GameState]*menu
	music  *ui.Slider
	sound  *ui.Slider
	styles ui.Styles

	musicTimer *timer.Timer
	track      int
	clock      timer.Clock

	notice      string
	noticeTimer float64
	fps         float64

	shutdownTimer float64 // > 0 while the server is going down
	lastInput     time.Time
	idle          bool
	inactive      bool

	canvas    *draw.Canvas
	rng       *rand.Rand
	sprites   object.SpriteSet
	store     save.Store
	audio     audio.Player
	log       *log.Logger
	events    <-chan session.Event
	resetKeys func()
}

// NewGame builds a game on the main menu. A stored snapshot, if any, restores
// the player's position and coins.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Audio
	if player == nil {
		player = audio.Nop{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(io.Discard)
	}

	screen := object.NewScreen(config.ScreenWidth, config.ScreenHeight)
	g := &Game{
		State:      StateMainMenu,
		Running:    true,
		Screen:     screen,
		Player:     object.NewPlayer(screen),
		menus:      newMenus(),
		music:      ui.NewSlider("Music volume", config.DefaultMusicVolume),
		sound:      ui.NewSlider("Sound volume", config.DefaultSoundVolume),
		styles:     ui.NewStyles(renderer),
		musicTimer: timer.NewWithClock(config.MusicPeriod, true, clock),
		clock:      clock,
		lastInput:  clock(),
		idle:       opts.Idle,
		canvas:     draw.NewScaledCanvas(80, 24, config.ScreenWidth, config.ScreenHeight),
		rng:        rand.New(rand.NewSource(seed)),
		sprites:    opts.Sprites,
		store:      opts.Store,
		audio:      player,
		log:        logger,
		events:     opts.Events,
	}

	g.spawnObjects()
	g.load()
	return g
}

// load restores the snapshot. Anything but a clean load leaves defaults.
func (g *Game) load() {
	if g.store == nil {
		return
	}
	snap, err := g.store.Load()
	if errors.Is(err, save.ErrNoSave) {
		g.log.Debug("no save found, starting fresh")
		return
	}
	if err != nil {
		g.log.Error("failed to load save, using defaults", "err", err)
		return
	}
	g.Player.Position.X = snap.Position.X
	g.Player.Position.Y = snap.Position.Y
	g.Player.Coins = snap.Coins
	g.log.Info("save loaded", "x", snap.Position.X, "y", snap.Position.Y, "coins", snap.Coins)
}

// Save writes the player's position and coins. Failures are logged and shown
// on the HUD; the game continues either way.
func (g *Game) Save() error {
	if g.store == nil {
		return nil
	}
	snap := save.Snapshot{
		Position: save.Position{X: g.Player.Position.X, Y: g.Player.Position.Y},
		Coins:    g.Player.Coins,
	}
	if err := g.store.Save(snap); err != nil {
		g.log.Error("failed to save", "err", err)
		g.flash("Save failed")
		return err
	}
	g.log.Info("game saved", "coins", snap.Coins)
	g.flash("Saved")
	return nil
}

// spawnObjects creates a fresh set of scrap and asteroids.
func (g *Game) spawnObjects() {
	nScraps := config.MinScraps + g.rng.Intn(config.MaxScraps-config.MinScraps)
	nAsteroids := config.MinAsteroids + g.rng.Intn(config.MaxAsteroids-config.MinAsteroids)

	g.Scraps = make([]*object.SpaceObject, nScraps)
	for i := range g.Scraps {
		g.Scraps[i] = object.NewSpaceObject(object.KindScrap, g.Screen, g.variants(object.KindScrap), g.rng)
	}
	g.Asteroids = make([]*object.SpaceObject, nAsteroids)
	for i := range g.Asteroids {
		g.Asteroids[i] = object.NewSpaceObject(object.KindAsteroid, g.Screen, g.variants(object.KindAsteroid), g.rng)
	}
}

func (g *Game) variants(kind object.Kind) int {
	if g.sprites == nil {
		return 1
	}
	return g.sprites.Variants(kind)
}

// flash shows a short notice on the HUD.
func (g *Game) flash(msg string) {
	g.notice = msg
	g.noticeTimer = config.NoticeSeconds
}

// setState switches screens, forgetting held keys so they do not leak.
func (g *Game) setState(s GameState) {
	if s == g.State {
		return
	}
	g.log.Debug("state change", "from", g.State, "to", s)
	g.State = s
	if g.resetKeys != nil {
		g.resetKeys()
	}
}

// open switches to s and remembers the current screen for Back.
func (g *Game) open(s GameState) {
	g.nav.push(g.State)
	g.setState(s)
}

// back returns to the screen that opened the current one.
func (g *Game) back() {
	g.setState(g.nav.pop())
}

// Quit stops the frame loop. The caller releases terminal, audio and storage.
func (g *Game) Quit() {
	g.Running = false
}

// Spawn queues an effect to be added after the current update.
// Implements object.Spawner.
func (g *Game) Spawn(obj object.Object) {
	g.toSpawn = append(g.toSpawn, obj)
}

// Effects returns the live visual effects.
func (g *Game) Effects() []object.Object {
	return g.effects
}

// MusicVolume returns the music slider value.
func (g *Game) MusicVolume() int { return g.music.Value }

// SoundVolume returns the sound slider value.
func (g *Game) SoundVolume() int { return g.sound.Value }
