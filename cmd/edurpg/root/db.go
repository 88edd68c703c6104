package root

import (
	"context"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edurpg/internal/catalog"
	"edurpg/internal/config"
	"edurpg/internal/engine"
	"edurpg/internal/logging"
	"edurpg/internal/storage"
	"edurpg/internal/ui"
)

type session struct {
	cfg     *config.Config
	log     *zap.Logger
	store   storage.Store
	console *ui.Console
	svc     *engine.Service
}

func openStore(ctx context.Context) (*config.Config, *zap.Logger, storage.Store, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, nil, err
	}
	log.Debug("store opened", zap.String("backend", cfg.Storage.Backend))
	cleanup := sync.OnceFunc(func() {
		_ = store.Close()
		_ = log.Sync()
	})
	onExit(cleanup)
	return cfg, log, store, cleanup, nil
}

// openService wires config, logging, storage, the question catalog and a
// console prompter on the command's stdin/stdout.
func openService(cmd *cobra.Command) (*session, func(), error) {
	ctx := cmd.Context()
	cfg, log, store, cleanup, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	builtin, err := catalog.Default()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	questions := catalog.NewStored(ctx, store.Collection(storage.Questions), builtin, log)

	console := ui.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	svc := engine.NewService(store, questions, console, engine.Options{
		Rand:   engine.NewRand(cfg.Game.Seed),
		Logger: log,
	})
	return &session{cfg: cfg, log: log, store: store, console: console, svc: svc}, cleanup, nil
}
