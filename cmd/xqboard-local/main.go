package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"xqboard/internal/app"
	"xqboard/internal/config"
	"xqboard/internal/logx"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 无图形界面时会失败，忽略
}

func main() {
	var (
		configPath = flag.String("config", "", "path to config.json (default: search cwd and parent)")
		addr       = flag.String("addr", "", "listen address, overrides config")
		webDir     = flag.String("web", "", "desktop web directory, overrides config")
		dataDir    = flag.String("data", "", "data directory, overrides config")
		rules      = flag.String("rules", "", "standard or lenient, overrides config")
		enginePath = flag.String("engine", "", "path to a UCI xiangqi engine, overrides config")
		logLevel   = flag.String("log-level", "", "debug / info / warn / error")
		open       = flag.Bool("open", false, "open the board in a browser")
	)
	flag.Parse()

	cfg := config.Default()
	path := *configPath
	if path == "" {
		if found, _, err := config.FindConfigPath(); err == nil {
			path = found
		}
	}
	var cfgErr error
	if path != "" {
		cfg, cfgErr = config.LoadConfig(path)
	}

	// 命令行优先
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *rules != "" {
		cfg.Rules = *rules
	}
	if *enginePath != "" {
		cfg.Engine.Path = *enginePath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *open {
		cfg.OpenBrowser = true
	}

	logger := logx.NewLogger(cfg.LogLevel)
	if cfgErr != nil {
		logger.Fatal().Err(cfgErr).Str("path", path).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if path != "" {
		logger.Info().Str("path", path).Msg("config loaded")
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      a.Handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("web", cfg.WebDir).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.OpenBrowser {
		// 延迟 100ms 打开，等服务器起来
		go func() {
			time.Sleep(100 * time.Millisecond)
			host := cfg.Addr
			if strings.HasPrefix(host, ":") {
				host = "127.0.0.1" + host
			}
			openBrowser("http://" + host + "/")
		}()
	}

	err = g.Wait()
	if cerr := a.Close(); cerr != nil {
		logger.Warn().Err(cerr).Msg("close")
	}
	if err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
	logger.Info().Msg("shutdown complete")
}
