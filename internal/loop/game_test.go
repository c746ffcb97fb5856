package loop

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/spacecleanup/internal/assets"
	"github.com/tomz197/spacecleanup/internal/audio"
	"github.com/tomz197/spacecleanup/internal/draw"
	"github.com/tomz197/spacecleanup/internal/input"
	"github.com/tomz197/spacecleanup/internal/loop/config"
	"github.com/tomz197/spacecleanup/internal/object"
	"github.com/tomz197/spacecleanup/internal/save"
	"github.com/tomz197/spacecleanup/internal/session"
)

type fakeStore struct {
	snap    save.Snapshot
	loadErr error
	saveErr error
	saved   []save.Snapshot
}

func (f *fakeStore) Load() (save.Snapshot, error) {
	if f.loadErr != nil {
		return save.Snapshot{}, f.loadErr
	}
	return f.snap, nil
}

func (f *fakeStore) Save(s save.Snapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s)
	return nil
}

type fakeAudio struct {
	effects     []audio.Effect
	tracks      []int
	musicVolume int
	stops       int
}

func (f *fakeAudio) PlayEffect(e audio.Effect, _ int) { f.effects = append(f.effects, e) }
func (f *fakeAudio) PlayMusic(track, volume int) {
	f.tracks = append(f.tracks, track)
	f.musicVolume = volume
}
func (f *fakeAudio) SetMusicVolume(v int) { f.musicVolume = v }
func (f *fakeAudio) StopMusic()           { f.stops++ }
func (f *fakeAudio) Close() error         { return nil }

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

const frame = 16 * time.Millisecond

func noInput() input.Input {
	return input.Input{Number: -1}
}

func press(f func(*input.Input)) input.Input {
	in := noInput()
	f(&in)
	in.Pressed = []byte{'x'}
	return in
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	if opts.Store == nil {
		opts.Store = &fakeStore{loadErr: save.ErrNoSave}
	}
	return NewGame(opts)
}

// parkObjects moves every object far from the player.
func parkObjects(g *Game) {
	for _, o := range append(append([]*object.SpaceObject{}, g.Scraps...), g.Asteroids...) {
		o.Position.X = 0
		o.Position.Y = 0
	}
	g.Player.Position.X = 1000
}

func TestNewGameDefaults(t *testing.T) {
	g := newTestGame(t, Options{})

	if g.State != StateMainMenu || !g.Running {
		t.Errorf("expected running main menu, got %s running=%v", g.State, g.Running)
	}
	if n := len(g.Scraps); n < config.MinScraps || n >= config.MaxScraps {
		t.Errorf("scrap count out of range: %d", n)
	}
	if n := len(g.Asteroids); n < config.MinAsteroids || n >= config.MaxAsteroids {
		t.Errorf("asteroid count out of range: %d", n)
	}
	if g.MusicVolume() != 25 || g.SoundVolume() != 25 {
		t.Errorf("expected volumes 25/25, got %d/%d", g.MusicVolume(), g.SoundVolume())
	}
	if g.Player.Position.X != 640 || g.Player.Position.Y != 540 {
		t.Errorf("unexpected player position (%v, %v)", g.Player.Position.X, g.Player.Position.Y)
	}
}

func TestNewGameRestoresSave(t *testing.T) {
	store := &fakeStore{snap: save.Snapshot{Position: save.Position{X: 100, Y: 200}, Coins: 9}}
	g := newTestGame(t, Options{Store: store})

	p := g.Player
	if p.Position.X != 100 || p.Position.Y != 200 || p.Coins != 9 {
		t.Errorf("expected restored (100, 200, 9), got (%v, %v, %d)", p.Position.X, p.Position.Y, p.Coins)
	}
	if p.Health != object.InitialHealth || p.Points != 0 {
		t.Errorf("expected default health and points, got %d/%d", p.Health, p.Points)
	}
}

func TestNewGameLoadFailureUsesDefaults(t *testing.T) {
	g := newTestGame(t, Options{Store: &fakeStore{loadErr: errors.New("disk on fire")}})
	if g.Player.Position.X != 640 || g.Player.Coins != 0 {
		t.Errorf("expected defaults, got %+v", g.Player)
	}
	if !g.Running {
		t.Error("expected game to keep running")
	}
}

func TestMenuFlow(t *testing.T) {
	g := newTestGame(t, Options{})

	steps := []struct {
		in   input.Input
		want GameState
	}{
		{press(func(in *input.Input) { in.Select = true }), StateTutorial},
		{press(func(in *input.Input) { in.Number = 1 }), StatePlaying},
		{press(func(in *input.Input) { in.Pause = true }), StatePaused},
		{press(func(in *input.Input) { in.Pause = true }), StatePlaying},
		{press(func(in *input.Input) { in.Pause = true }), StatePaused},
		{press(func(in *input.Input) { in.Number = 2 }), StateShop},
		{press(func(in *input.Input) { in.Down = true; in.Select = true }), StatePlaying},
	}
	for i, step := range steps {
		parkObjects(g)
		g.Update(frame, step.in)
		if g.State != step.want {
			t.Fatalf("step %d: expected %s, got %s", i, step.want, g.State)
		}
	}
}

func TestBackReturnsToOpener(t *testing.T) {
	g := newTestGame(t, Options{})

	g.Apply(ActionOptions)
	if g.State != StateOptions {
		t.Fatalf("expected options, got %s", g.State)
	}
	g.Apply(ActionBack)
	if g.State != StateMainMenu {
		t.Errorf("expected main menu after back, got %s", g.State)
	}

	g.State = StatePaused
	g.Apply(ActionCredits)
	g.Apply(ActionBack)
	if g.State != StatePaused {
		t.Errorf("expected paused after back from credits, got %s", g.State)
	}

	g.Apply(ActionOptions)
	g.Update(frame, press(func(in *input.Input) { in.Number = 3 }))
	if g.State != StatePaused {
		t.Errorf("expected paused after back from options, got %s", g.State)
	}
}

func TestActionsIgnoredOnWrongScreen(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Apply(ActionConvert)
	g.Apply(ActionPlayAgain)
	g.Apply(ActionContinue)
	if g.State != StateMainMenu {
		t.Errorf("expected main menu, got %s", g.State)
	}
}

func TestShopConversion(t *testing.T) {
	g := newTestGame(t, Options{})
	g.State = StateShop
	g.Player.Points = 23

	g.Update(frame, press(func(in *input.Input) { in.Select = true }))

	if g.Player.Coins != 2 || g.Player.Points != 21 {
		t.Errorf("expected coins 2 points 21, got coins %d points %d", g.Player.Coins, g.Player.Points)
	}
	if g.State != StateShop {
		t.Errorf("expected to stay in shop, got %s", g.State)
	}
}

func TestGameOverAndPlayAgain(t *testing.T) {
	g := newTestGame(t, Options{})
	g.State = StatePlaying
	parkObjects(g)
	g.Player.Health = 1
	g.Player.Points = 40

	rock := g.Asteroids[0]
	rock.Position.X = g.Player.Position.X
	rock.Position.Y = g.Player.Position.Y

	g.Update(frame, noInput())
	if g.State != StateGameOver {
		t.Fatalf("expected game over, got %s (health %d)", g.State, g.Player.Health)
	}

	for _, o := range g.Scraps {
		o.Position.Y = 400
	}
	g.Update(frame, press(func(in *input.Input) { in.Select = true }))

	if g.State != StatePlaying {
		t.Fatalf("expected playing, got %s", g.State)
	}
	if g.Player.Points != 0 || g.Player.Health != object.InitialHealth {
		t.Errorf("expected points 0 health 5, got %d/%d", g.Player.Points, g.Player.Health)
	}
	for _, o := range g.Scraps {
		if o.Position.Y > object.SpawnBandHeight {
			t.Errorf("scrap not reset: y=%v", o.Position.Y)
		}
	}
	if len(g.Effects()) != 0 {
		t.Errorf("expected effects cleared, got %d", len(g.Effects()))
	}
}

func TestMissRespawnsInBand(t *testing.T) {
	g := newTestGame(t, Options{})
	g.State = StatePlaying
	parkObjects(g)

	o := g.Scraps[0]
	o.Position.Y = float64(g.Screen.Height) + 1

	g.Update(frame, noInput())

	if o.Position.Y < 0 || o.Position.Y > object.SpawnBandHeight {
		t.Errorf("expected y in [0, 50], got %v", o.Position.Y)
	}
	if o.Position.X < 0 || o.Position.X >= float64(g.Screen.Width) {
		t.Errorf("expected x in [0, W), got %v", o.Position.X)
	}
	if g.Player.Points != 0 || g.Player.Health != object.InitialHealth {
		t.Error("a miss should not change points or health")
	}
}

func TestHitIsExclusivePerTick(t *testing.T) {
	fa := &fakeAudio{}
	g := newTestGame(t, Options{Audio: fa})
	g.State = StatePlaying
	parkObjects(g)

	o := g.Scraps[0]
	o.Position.X = g.Player.Position.X
	o.Position.Y = g.Player.Position.Y
	points := o.Points

	g.Update(frame, noInput())

	if g.Player.Points != points {
		t.Errorf("expected %d points, got %d", points, g.Player.Points)
	}
	if len(fa.effects) != 1 || fa.effects[0] != audio.EffectPickup {
		t.Errorf("expected one pickup sound, got %v", fa.effects)
	}
	if o.Position.Y > object.SpawnBandHeight {
		t.Errorf("expected object reset to band, got y=%v", o.Position.Y)
	}
	if len(g.Effects()) == 0 {
		t.Error("expected hit effects")
	}
}

func TestAsteroidHitHurts(t *testing.T) {
	fa := &fakeAudio{}
	g := newTestGame(t, Options{Audio: fa})
	g.State = StatePlaying
	parkObjects(g)

	rock := g.Asteroids[0]
	rock.Position.X = g.Player.Position.X + g.Player.Position.W // Touching edge
	rock.Position.Y = g.Player.Position.Y

	g.Update(frame, noInput())

	if g.Player.Health != object.InitialHealth-1 {
		t.Errorf("expected health %d, got %d", object.InitialHealth-1, g.Player.Health)
	}
	if len(fa.effects) != 1 || fa.effects[0] != audio.EffectImpact {
		t.Errorf("expected one impact sound, got %v", fa.effects)
	}
}

func TestObjectsFallAtHalfSpeed(t *testing.T) {
	g := newTestGame(t, Options{})
	g.State = StatePlaying
	parkObjects(g)
	g.Player.Points = 100 // speed 450

	o := g.Scraps[0]
	o.Position.Y = 100

	g.Update(100*time.Millisecond, noInput())

	if want := 100 + 450.0/2*0.1; math.Abs(o.Position.Y-want) > 1e-9 {
		t.Errorf("expected y=%v, got %v", want, o.Position.Y)
	}
}

func TestPlayerMovement(t *testing.T) {
	g := newTestGame(t, Options{})
	g.State = StatePlaying
	parkObjects(g)
	g.Player.Position.X = 500

	g.Update(100*time.Millisecond, input.Input{Number: -1, Right: true})
	if math.Abs(g.Player.Position.X-525) > 1e-9 {
		t.Errorf("expected x=525, got %v", g.Player.Position.X)
	}

	g.Update(100*time.Millisecond, input.Input{Number: -1, Pointer: input.Pointer{Col: 1, Row: 10, Down: true}})
	if math.Abs(g.Player.Position.X-500) > 1e-9 {
		t.Errorf("expected pointer to pull left to 500, got %v", g.Player.Position.X)
	}

	g.Player.Position.X = 1
	g.Update(100*time.Millisecond, input.Input{Number: -1, Left: true})
	if g.Player.Position.X != 0 {
		t.Errorf("expected clamp at 0, got %v", g.Player.Position.X)
	}
}

func TestQuit(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Update(frame, press(func(in *input.Input) { in.Quit = true }))
	if g.Running {
		t.Error("expected quit to stop the game")
	}

	g = newTestGame(t, Options{})
	g.Update(frame, press(func(in *input.Input) { in.Number = 4 }))
	if g.Running {
		t.Error("expected Quit menu item to stop the game")
	}

	g = newTestGame(t, Options{})
	g.Update(frame, input.Input{Number: -1, Closed: true})
	if g.Running {
		t.Error("expected closed input to stop the game")
	}
}

func TestSaveShortcut(t *testing.T) {
	store := &fakeStore{loadErr: save.ErrNoSave}
	g := newTestGame(t, Options{Store: store})
	g.State = StatePlaying
	parkObjects(g)
	g.Player.Coins = 4

	g.Update(frame, press(func(in *input.Input) { in.Save = true }))

	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
	got := store.saved[0]
	if got.Position.X != g.Player.Position.X || got.Position.Y != g.Player.Position.Y || got.Coins != 4 {
		t.Errorf("unexpected snapshot %+v", got)
	}

	g.Update(frame, press(func(in *input.Input) { in.Pause = true }))
	g.Update(frame, press(func(in *input.Input) { in.Save = true }))
	if len(store.saved) != 2 {
		t.Errorf("expected save from pause menu, got %d saves", len(store.saved))
	}
}

func TestSaveFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{loadErr: save.ErrNoSave, saveErr: errors.New("read-only")}
	g := newTestGame(t, Options{Store: store})
	g.State = StatePlaying
	parkObjects(g)

	g.Update(frame, press(func(in *input.Input) { in.Save = true }))

	if !g.Running || g.State != StatePlaying {
		t.Error("expected game to continue after failed save")
	}
	if g.notice != "Save failed" {
		t.Errorf("expected failure notice, got %q", g.notice)
	}
}

func TestMusicRotation(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	fa := &fakeAudio{}
	g := newTestGame(t, Options{Audio: fa, Clock: clock.Now})

	g.Update(frame, noInput())
	if len(fa.tracks) != 1 || fa.tracks[0] != 0 {
		t.Fatalf("expected first track to start immediately, got %v", fa.tracks)
	}

	clock.Advance(12 * time.Second)
	g.Update(frame, noInput())
	if len(fa.tracks) != 1 {
		t.Fatalf("expected no new track before 13s, got %v", fa.tracks)
	}

	clock.Advance(time.Second)
	g.Update(frame, noInput())
	if len(fa.tracks) != 2 || fa.tracks[1] != 1 {
		t.Fatalf("expected second track at 13s, got %v", fa.tracks)
	}
	if fa.musicVolume != config.DefaultMusicVolume {
		t.Errorf("expected music at %d, got %d", config.DefaultMusicVolume, fa.musicVolume)
	}
}

func TestOptionsSliders(t *testing.T) {
	fa := &fakeAudio{}
	g := newTestGame(t, Options{Audio: fa})
	g.Apply(ActionOptions)

	g.Update(frame, press(func(in *input.Input) { in.Nudge = 1 }))
	if g.MusicVolume() != 30 || fa.musicVolume != 30 {
		t.Errorf("expected music 30, got slider %d audio %d", g.MusicVolume(), fa.musicVolume)
	}

	g.Update(frame, press(func(in *input.Input) { in.Down = true }))
	g.Update(frame, press(func(in *input.Input) { in.Nudge = -1 }))
	if g.SoundVolume() != 20 {
		t.Errorf("expected sound 20, got %d", g.SoundVolume())
	}
	if g.State != StateOptions {
		t.Errorf("expected to stay in options, got %s", g.State)
	}
}

func TestDebugToggleAnyState(t *testing.T) {
	g := newTestGame(t, Options{})
	for _, s := range []GameState{StateMainMenu, StateCredits, StateGameOver} {
		g.State = s
		before := g.Debug
		g.Update(frame, press(func(in *input.Input) { in.Debug = true }))
		if g.Debug == before {
			t.Errorf("expected debug toggle in %s", s)
		}
	}
}

func TestShutdownEventSavesAndDisconnects(t *testing.T) {
	events := make(chan session.Event, 1)
	store := &fakeStore{loadErr: save.ErrNoSave}
	g := newTestGame(t, Options{Store: store, Events: events})

	events <- session.Event{Type: session.EventServerShutdown}
	g.Update(frame, noInput())
	if len(store.saved) != 1 {
		t.Errorf("expected save on shutdown, got %d", len(store.saved))
	}
	if g.shutdownTimer <= 0 {
		t.Fatal("expected shutdown countdown")
	}

	for i := 0; i < 200 && g.Running; i++ {
		g.Update(config.MaxFrameDelta, noInput())
	}
	if g.Running {
		t.Error("expected game to stop after shutdown countdown")
	}
}

func TestIdleSessionDisconnects(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	g := newTestGame(t, Options{Clock: clock.Now, Idle: true})

	clock.Advance(100 * time.Second)
	g.Update(frame, noInput())
	if !g.inactive || !g.Running {
		t.Fatalf("expected inactivity warning, got inactive=%v running=%v", g.inactive, g.Running)
	}

	g.Update(frame, press(func(in *input.Input) {}))
	if g.inactive {
		t.Error("expected key press to clear warning")
	}

	clock.Advance(130 * time.Second)
	g.Update(frame, noInput())
	if g.Running {
		t.Error("expected idle session to end")
	}
}

func TestDrawFrameEveryState(t *testing.T) {
	lib, err := assets.LoadLibrary()
	if err != nil {
		t.Fatalf("load sprites: %v", err)
	}
	g := newTestGame(t, Options{Sprites: lib})
	g.Debug = true

	for s := StateMainMenu; s <= StateGameOver; s++ {
		g.State = s
		var buf bytes.Buffer
		if err := g.drawFrame(draw.NewChunkWriter(&buf, 0, 0)); err != nil {
			t.Fatalf("%s: draw: %v", s, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: expected output", s)
		}
		if s == StatePlaying && !strings.Contains(buf.String(), "Points: 0") {
			t.Errorf("expected HUD in playing frame")
		}
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(200, 60)
	if w != config.MaxTermWidth || h != config.MaxTermHeight {
		t.Errorf("expected clamp to %dx%d, got %dx%d", config.MaxTermWidth, config.MaxTermHeight, w, h)
	}
	if col != (200-config.MaxTermWidth)/2 || row != (60-config.MaxTermHeight)/2 {
		t.Errorf("unexpected offsets %d,%d", col, row)
	}
	w, h, col, row = clampTermSize(80, 24)
	if w != 80 || h != 24 || col != 0 || row != 0 {
		t.Errorf("expected no clamp, got %d %d %d %d", w, h, col, row)
	}
}

func TestEscapeLeavesSubmenus(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Apply(ActionCredits)
	g.Update(frame, press(func(in *input.Input) { in.Pause = true }))
	if g.State != StateMainMenu {
		t.Errorf("expected main menu, got %s", g.State)
	}

	g.State = StateShop
	parkObjects(g)
	g.Update(frame, press(func(in *input.Input) { in.Pause = true }))
	if g.State != StatePlaying {
		t.Errorf("expected playing after leaving shop, got %s", g.State)
	}
}
