// Package app wires config, storage, sessions and analysis into one HTTP handler.
package app

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog"

	"xqboard/internal/analysis"
	"xqboard/internal/config"
	httpserver "xqboard/internal/server/http"
	"xqboard/internal/session"
	"xqboard/internal/store"
)

type App struct {
	Games    *session.Manager
	Analyzer analysis.Analyzer
	Handler  http.Handler

	db     *store.FileStore
	engine *analysis.EngineClient
	log    zerolog.Logger
}

// New 按配置组装服务。本地引擎启动失败只记日志，云库照常可用
func New(cfg config.Config, logger zerolog.Logger) (*App, error) {
	db, err := store.NewFileStore(filepath.Join(cfg.DataDir, "sessions"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &App{db: db, log: logger}

	a.Games = session.NewManager(session.Options{
		Rules:       cfg.RulesValue(),
		RecentLimit: cfg.RecentLimit,
		Store:       db,
	}, logger.With().Str("component", "sessions").Logger())

	var backends []analysis.Backend
	if cfg.Cloud.Enabled && cfg.Cloud.URL != "" {
		backends = append(backends, analysis.Backend{
			Name:     "cloud",
			Analyzer: analysis.NewCloudClient(cfg.Cloud.URL, cfg.Cloud.Timeout.Duration, logger),
		})
	}
	if cfg.Engine.Path != "" {
		eng, err := analysis.NewEngineClient(analysis.EngineOptions{
			Path:     cfg.Engine.Path,
			Depth:    cfg.Engine.Depth,
			MoveTime: cfg.Engine.MoveTime.Duration,
			Threads:  cfg.Engine.Threads,
			HashMB:   cfg.Engine.HashMB,
		}, logger)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.Engine.Path).Msg("local engine disabled")
		} else {
			a.engine = eng
			backends = append(backends, analysis.Backend{Name: "engine", Analyzer: eng})
		}
	}
	if len(backends) > 0 {
		a.Analyzer = analysis.NewCached(analysis.NewChain(backends...), db, logger)
	}

	a.Handler = httpserver.NewRouter(logger, a.Games, a.Analyzer, httpserver.Options{
		WebDir:    cfg.WebDir,
		MobileDir: cfg.MobileDir,
	})
	logger.Info().
		Str("data_dir", cfg.DataDir).
		Str("rules", cfg.Rules).
		Int("analyzers", len(backends)).
		Msg("app ready")
	return a, nil
}

func (a *App) Close() error {
	var errs []error
	if a.engine != nil {
		errs = append(errs, a.engine.Close())
	}
	errs = append(errs, a.db.Close())
	return errors.Join(errs...)
}
