package schema

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ClientConfig defines defaults and limits for the interactive client.
type ClientConfig struct {
	// SavedataPath is where the engine's opaque state blob lives.
	SavedataPath string
	// ReplInterval is the fixed cadence of the input-drain step, decoupled
	// from the engine's suggested tick interval.
	ReplInterval time.Duration
	// HistoryCount is how many history lines /history shows by default.
	HistoryCount int
	// LineMax is the line editor's fixed buffer capacity.
	LineMax int
	// EventQueueDepth bounds the engine event queue the loop drains.
	EventQueueDepth int
	// Bootstrap lists network entry points handed to the engine at startup.
	Bootstrap []BootstrapNode
}

const (
	// DefaultReplInterval matches the original 30ms REPL cadence.
	DefaultReplInterval = 30 * time.Millisecond
	// DefaultHistoryCount is the default /history depth.
	DefaultHistoryCount = 20
	// DefaultLineMax is the editor buffer capacity; longer input is
	// truncated.
	DefaultLineMax = 512
	// DefaultEventQueueDepth bounds buffered engine events.
	DefaultEventQueueDepth = 256
)

// NormalizeClientConfig applies defaults and validates the config.
func NormalizeClientConfig(cfg ClientConfig) (ClientConfig, error) {
	if cfg.SavedataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ClientConfig{}, err
		}
		cfg.SavedataPath = filepath.Join(home, ".minitalk", "savedata.bin")
	}
	if cfg.ReplInterval <= 0 {
		cfg.ReplInterval = DefaultReplInterval
	}
	if cfg.HistoryCount <= 0 {
		cfg.HistoryCount = DefaultHistoryCount
	}
	if cfg.LineMax <= 0 {
		cfg.LineMax = DefaultLineMax
	}
	if cfg.LineMax < 16 {
		return ClientConfig{}, errors.New("line max must be at least 16")
	}
	if cfg.EventQueueDepth <= 0 {
		cfg.EventQueueDepth = DefaultEventQueueDepth
	}
	return cfg, nil
}
