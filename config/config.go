package config

import (
	"image/color"

	"github.com/automoto/duelrang/sim"
)

// Config holds general game configuration.
type Config struct {
	Width  int
	Height int
	Title  string
}

// NetConfig contains the netcode tunables. InputDelay, RedundantWindow and
// MaxRollback must be identical on both peers or the simulations diverge.
type NetConfig struct {
	TickRate        int
	InputDelay      int
	RedundantWindow int
	MaxRollback     int
	DefaultAddr     string
	ShowDiagnostics bool
}

// ArenaConfig contains presentation geometry for the fixed arena.
type ArenaConfig struct {
	GroundY      float64
	HeadY        float64 // head-height projectile lane
	AnkleY       float64 // ankle-height projectile lane
	StandHeight  float64
	CrouchHeight float64
}

// HUDConfig contains HUD layout and palette.
type HUDConfig struct {
	BarWidth  float64
	BarHeight float64
	Margin    float64

	BarBgColor   color.RGBA
	BarFgColor   color.RGBA
	LeftColor    color.RGBA
	RightColor   color.RGBA
	BlockColor   color.RGBA
	HitColor     color.RGBA
	GroundColor  color.RGBA
	BannerColor  color.RGBA
	DiagColor    color.RGBA
	AmmoPipColor color.RGBA
}

// Global configuration instances.
var C *Config
var Net NetConfig
var Arena ArenaConfig
var HUD HUDConfig

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		Title:  "duelrang",
	}

	Net = NetConfig{
		TickRate:        sim.TicksPerSecond,
		InputDelay:      3,
		RedundantWindow: 8,
		MaxRollback:     30,
		DefaultAddr:     "127.0.0.1:7777",
	}

	Arena = ArenaConfig{
		GroundY:      300,
		HeadY:        262,
		AnkleY:       292,
		StandHeight:  48,
		CrouchHeight: 28,
	}

	HUD = HUDConfig{
		BarWidth:  180,
		BarHeight: 14,
		Margin:    12,

		BarBgColor:   color.RGBA{40, 40, 40, 255},
		BarFgColor:   color.RGBA{40, 220, 40, 255},
		LeftColor:    color.RGBA{90, 160, 255, 255},
		RightColor:   color.RGBA{255, 110, 90, 255},
		BlockColor:   color.RGBA{200, 200, 120, 255},
		HitColor:     color.RGBA{255, 255, 255, 255},
		GroundColor:  color.RGBA{70, 70, 80, 255},
		BannerColor:  color.RGBA{235, 235, 235, 255},
		DiagColor:    color.RGBA{140, 140, 150, 255},
		AmmoPipColor: color.RGBA{240, 200, 80, 255},
	}
}
