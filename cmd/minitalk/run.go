package main

import (
	"context"
	"fmt"
	"os"

	"pkt.systems/minitalk"
	"pkt.systems/minitalk/engine"
	"pkt.systems/minitalk/engine/loopback"
	"pkt.systems/minitalk/internal/appconfig"
	"pkt.systems/minitalk/internal/persist"
	"pkt.systems/minitalk/repl"
	"pkt.systems/minitalk/schema"
	"pkt.systems/pslog"
)

// runClient builds the engine, storage and terminal from config and hands
// them to the client loop. Setup failures abort before the loop starts.
func runClient(ctx context.Context, configPath string) error {
	logger := pslog.Ctx(ctx)

	fileCfg, err := appconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	clientCfg, err := fileCfg.ClientConfig()
	if err != nil {
		return fmt.Errorf("normalize config: %w", err)
	}

	store, err := persist.NewStoreWithLogger(clientCfg.SavedataPath, logger)
	if err != nil {
		return err
	}
	blob, found, err := store.Load()
	if err != nil {
		return fmt.Errorf("load savedata: %w", err)
	}
	if found {
		logger.Debug("savedata restored", "path", store.Path(), "bytes", len(blob))
	}

	eng, err := buildEngine(fileCfg, blob, clientCfg.EventQueueDepth, logger)
	if err != nil {
		return err
	}

	term, err := repl.OpenTerminal(logger)
	if err != nil {
		return fmt.Errorf("terminal setup: %w", err)
	}
	defer term.Close()

	theme := repl.DefaultTheme()
	if fileCfg.Theme.Name == "plain" {
		theme = repl.PlainTheme()
	}

	client, err := minitalk.NewClient(clientCfg, minitalk.ClientDeps{
		Engine: eng,
		Store:  store,
		Input:  term,
		Output: os.Stdout,
		Theme:  theme,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	return client.Run(ctx)
}

func buildEngine(cfg appconfig.Config, savedata []byte, queueDepth int, logger pslog.Logger) (engine.Engine, error) {
	switch cfg.Engine.Name {
	case "loopback":
		return loopback.New(loopback.Options{
			Savedata:   savedata,
			QueueDepth: queueDepth,
			Logger:     logger,
		})
	default:
		return nil, fmt.Errorf("%w: %s", schema.ErrUnknownEngine, cfg.Engine.Name)
	}
}
