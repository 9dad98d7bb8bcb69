// Package mobile is the gomobile entry point; the app calls StartServer once at launch.
package mobile

import (
	"net/http"

	"xqboard/internal/app"
	"xqboard/internal/config"
	"xqboard/internal/logx"
)

// StartServer starts the local HTTP server in the background.
// webDir: physical path to the extracted web assets
// dataDir: writable directory for saved games
// enginePath: optional UCI engine binary, empty to use the cloud only
// port: port to listen on, e.g. "2888"
func StartServer(webDir, dataDir, enginePath, port string) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:" + port
	cfg.WebDir = webDir
	cfg.MobileDir = webDir
	cfg.DataDir = dataDir
	cfg.Engine.Path = enginePath

	logger := logx.NewLogger(cfg.LogLevel)
	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("start server")
		return
	}

	// 不能阻塞 Android UI 线程
	go func() {
		defer a.Close()
		if err := http.ListenAndServe(cfg.Addr, a.Handler); err != nil {
			logger.Error().Err(err).Msg("server error")
		}
	}()
}
