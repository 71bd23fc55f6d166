package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/automoto/duelrang/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the settings data stored on disk.
type SavedSettings struct {
	Fullscreen      bool   `json:"fullscreen"`
	ShowDiagnostics bool   `json:"showDiagnostics"`
	LastJoinAddr    string `json:"lastJoinAddr"`
	InputDelay      int    `json:"inputDelay"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "duelrang",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk. A missing file is not an error;
// callers fall back to defaults.
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves settings to disk.
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}
	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// SaveCurrentSettings snapshots the live configuration.
func SaveCurrentSettings() {
	_ = SaveSettings(&SavedSettings{
		Fullscreen:      ebiten.IsFullscreen(),
		ShowDiagnostics: cfg.Net.ShowDiagnostics,
		LastJoinAddr:    cfg.Net.DefaultAddr,
		InputDelay:      cfg.Net.InputDelay,
	})
}

// ApplySavedSettings applies loaded settings to the live configuration.
// The netcode tunables must match the peer's; an overridden input delay is
// applied but called out in the log so mismatched setups are diagnosable.
func ApplySavedSettings(saved *SavedSettings) {
	if saved == nil {
		return
	}
	ebiten.SetFullscreen(saved.Fullscreen)
	cfg.Net.ShowDiagnostics = saved.ShowDiagnostics
	if saved.LastJoinAddr != "" {
		cfg.Net.DefaultAddr = saved.LastJoinAddr
	}
	if saved.InputDelay > 0 && saved.InputDelay != cfg.Net.InputDelay {
		log.Printf("[persist] input delay overridden to %d; both peers must match", saved.InputDelay)
		cfg.Net.InputDelay = saved.InputDelay
	}
}
