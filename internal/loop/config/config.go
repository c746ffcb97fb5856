// Package config centralizes all tunable game parameters.
package config

import "time"

// Logical resolution. Game objects use these dimensions and rendering scales
// them to the terminal.
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// Max render resolution in terminal cells. Larger terminals get a centered,
// bordered play field so the aspect ratio stays close to the logical one.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 45
)

// Object counts are picked in [Min, Max).
const (
	MinScraps    = 20
	MaxScraps    = 30
	MinAsteroids = 5
	MaxAsteroids = 10
)

// Audio
const (
	MusicPeriod        = 13 * time.Second
	DefaultMusicVolume = 25
	DefaultSoundVolume = 25
)

// Hit effects
const (
	BurstParticles = 10
	BurstSpeed     = 220.0 // Logical units per second
	BurstLifetime  = 0.5   // Seconds
)

// HUD
const (
	NoticeSeconds = 2.0 // How long save/shop notices stay on the HUD
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity, hosted sessions only.
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// MaxFrameDelta caps the per-frame delta so a stalled frame does not teleport
// objects through the player.
const MaxFrameDelta = 100 * time.Millisecond
