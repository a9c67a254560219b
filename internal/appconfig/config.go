// Package appconfig loads the client's yaml configuration.
package appconfig

import (
	"os"
	"path/filepath"
	"time"

	"pkt.systems/minitalk/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int                    `mapstructure:"config_version" yaml:"config_version"`
	Savedata      string                 `mapstructure:"savedata" yaml:"savedata"`
	Engine        EngineConfig           `mapstructure:"engine" yaml:"engine"`
	Repl          ReplConfig             `mapstructure:"repl" yaml:"repl"`
	Theme         ThemeConfig            `mapstructure:"theme" yaml:"theme"`
	Bootstrap     []schema.BootstrapNode `mapstructure:"bootstrap" yaml:"bootstrap"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// EngineConfig selects and tunes the messaging backend.
type EngineConfig struct {
	Name       string `mapstructure:"name" yaml:"name"`
	QueueDepth int    `mapstructure:"queue_depth" yaml:"queue_depth"`
}

// ReplConfig tunes the interactive loop.
type ReplConfig struct {
	IntervalMS   int `mapstructure:"interval_ms" yaml:"interval_ms"`
	HistoryCount int `mapstructure:"history_count" yaml:"history_count"`
	LineMax      int `mapstructure:"line_max" yaml:"line_max"`
}

// ThemeConfig selects the screen palette.
type ThemeConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Savedata:      filepath.Join(home, ".minitalk", "savedata.bin"),
		Engine: EngineConfig{
			Name:       "loopback",
			QueueDepth: schema.DefaultEventQueueDepth,
		},
		Repl: ReplConfig{
			IntervalMS:   int(schema.DefaultReplInterval / time.Millisecond),
			HistoryCount: schema.DefaultHistoryCount,
			LineMax:      schema.DefaultLineMax,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Bootstrap: []schema.BootstrapNode{},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".minitalk", "config.yaml"), nil
}

// ClientConfig converts the loaded file into the normalized runtime config.
func (c Config) ClientConfig() (schema.ClientConfig, error) {
	return schema.NormalizeClientConfig(schema.ClientConfig{
		SavedataPath:    c.Savedata,
		ReplInterval:    time.Duration(c.Repl.IntervalMS) * time.Millisecond,
		HistoryCount:    c.Repl.HistoryCount,
		LineMax:         c.Repl.LineMax,
		EventQueueDepth: c.Engine.QueueDepth,
		Bootstrap:       c.Bootstrap,
	})
}
