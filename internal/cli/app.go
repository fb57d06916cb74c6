// Package cli provides the launchpad command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"launchpad/internal/config"
	"launchpad/internal/history"
	"launchpad/internal/logging"
)

// App holds CLI dependencies
type App struct {
	Config  *config.Manager
	History *history.Store

	ctx       context.Context
	logger    zerolog.Logger
	logCloser io.Closer
}

// NewApp loads the configuration at configPath (empty for the default
// location) and sets up logging for one run
func NewApp(configPath string) (*App, error) {
	mgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logFile := config.ExpandHome(cfg.Logging.File)
	if logFile == "" {
		if logFile, err = config.GetLogFile(); err != nil {
			return nil, err
		}
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	logCfg.Format = cfg.Logging.Format
	logCfg.File = logFile

	logger, closer, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	logger.Debug().Str("config", mgr.Path()).Msg("configuration loaded")

	return &App{
		Config:    mgr,
		ctx:       logging.WithContext(context.Background(), logger),
		logger:    logger,
		logCloser: closer,
	}, nil
}

// Ctx returns the base context carrying the run's logger
func (a *App) Ctx() context.Context {
	return a.ctx
}

// OpenHistory opens the launch history database on first use
func (a *App) OpenHistory() (*history.Store, error) {
	if a.History != nil {
		return a.History, nil
	}
	path, err := config.GetDatabaseFile()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	a.History = store
	return store, nil
}

// Close releases all resources
func (a *App) Close() error {
	var err error
	if a.History != nil {
		err = a.History.Close()
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	return err
}
