package httpserver

import (
	"net/http"
	"strings"
	"time"
)

const (
	viewCookieName = "xqboard_view"
	viewCookieTTL  = 30 * 24 * time.Hour
)

type view string

const (
	viewDesktop view = "web"
	viewMobile  view = "mobile"
)

// mountPath 页面挂载点
func (v view) mountPath() string {
	if v == viewMobile {
		return "/web_mobile/"
	}
	return "/web/"
}

var viewAliases = map[string]view{
	"web":        viewDesktop,
	"desktop":    viewDesktop,
	"pc":         viewDesktop,
	"mobile":     viewMobile,
	"m":          viewMobile,
	"phone":      viewMobile,
	"web_mobile": viewMobile,
}

var mobileUANeedles = []string{"android", "iphone", "ipad", "ipod", "mobile", "windows phone", "harmony"}

func parseView(s string) (view, bool) {
	v, ok := viewAliases[strings.ToLower(strings.TrimSpace(s))]
	return v, ok
}

// boardSite 桌面版和手机版两套棋盘页面
type boardSite struct {
	dirs map[view]string
}

// RegisterStaticRoutes 挂载棋盘页面。手机版目录为空时与桌面版共用
func RegisterStaticRoutes(mux *http.ServeMux, desktopDir, mobileDir string) {
	if mux == nil {
		return
	}
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}
	site := boardSite{dirs: map[view]string{viewDesktop: desktopDir, viewMobile: mobileDir}}
	for v, dir := range site.dirs {
		prefix := v.mountPath()
		mux.Handle(prefix, noCache(http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))))
	}
	mux.HandleFunc("/", site.serveRoot)
}

// 棋盘脚本更新频繁，让浏览器每次都校验
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}

func (s boardSite) serveRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		// /web、/web_mobile 少了结尾斜杠
		if v, ok := parseView(strings.TrimPrefix(r.URL.Path, "/")); ok && r.URL.Path == strings.TrimSuffix(v.mountPath(), "/") {
			http.Redirect(w, r, v.mountPath(), http.StatusFound)
			return
		}
		http.NotFound(w, r)
		return
	}

	v, explicit := chooseView(r)
	if explicit {
		http.SetCookie(w, &http.Cookie{
			Name:     viewCookieName,
			Value:    string(v),
			Path:     "/",
			MaxAge:   int(viewCookieTTL / time.Second),
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.Header().Set("Vary", "User-Agent, Cookie")
	http.Redirect(w, r, v.mountPath(), http.StatusFound)
}

// chooseView 依次看 ?view=、cookie、User-Agent；explicit 表示来自 ?view= 需要记住
func chooseView(r *http.Request) (v view, explicit bool) {
	if v, ok := parseView(r.URL.Query().Get("view")); ok {
		return v, true
	}
	if c, err := r.Cookie(viewCookieName); err == nil {
		if v, ok := parseView(c.Value); ok {
			return v, false
		}
	}
	ua := strings.ToLower(r.UserAgent())
	if ua == "" {
		return viewDesktop, false
	}
	for _, n := range mobileUANeedles {
		if strings.Contains(ua, n) {
			return viewMobile, false
		}
	}
	return viewDesktop, false
}
