package httpserver

import (
	"net/http"

	"github.com/rs/zerolog"

	"xqboard/internal/analysis"
	"xqboard/internal/session"
)

// Options 静态资源目录；为空时不挂载页面，只有 /api/
type Options struct {
	WebDir    string
	MobileDir string
}

// NewRouter 组装 /api/ 与静态页面，外面包 RequestID 和访问日志
func NewRouter(logger zerolog.Logger, games *session.Manager, analyzer analysis.Analyzer, opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", NewHandler(games, analyzer, logger))
	if opts.WebDir != "" {
		RegisterStaticRoutes(mux, opts.WebDir, opts.MobileDir)
	}
	return RequestID(AccessLog(logger, mux))
}
