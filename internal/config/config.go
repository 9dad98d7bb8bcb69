// Package config loads the server settings from config.json and fills defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"xqboard/internal/analysis"
	"xqboard/internal/history"
	"xqboard/internal/xiangqi"
)

type Config struct {
	Addr        string `json:"addr"`
	WebDir      string `json:"web_dir"`
	MobileDir   string `json:"mobile_dir"`
	DataDir     string `json:"data_dir"`
	Rules       string `json:"rules"` // standard / lenient
	RecentLimit int    `json:"recent_limit"`
	LogLevel    string `json:"log_level"`
	OpenBrowser bool   `json:"open_browser"`

	Cloud  CloudConfig  `json:"cloud"`
	Engine EngineConfig `json:"engine"`
}

type CloudConfig struct {
	Enabled bool     `json:"enabled"`
	URL     string   `json:"url"`
	Timeout Duration `json:"timeout"`
}

type EngineConfig struct {
	Path     string   `json:"path"` // 空表示不启用本地引擎
	Depth    int      `json:"depth"`
	MoveTime Duration `json:"move_time"`
	Threads  int      `json:"threads"`
	HashMB   int      `json:"hash_mb"`
}

// Duration 在 JSON 里写成 "10s" 这样的字符串
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// 也接受毫秒数
		var ms int64
		if err2 := json.Unmarshal(b, &ms); err2 != nil {
			return fmt.Errorf("duration: %w", err)
		}
		d.Duration = time.Duration(ms) * time.Millisecond
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() Config {
	return Config{
		Addr:        ":2888",
		WebDir:      "./web",
		MobileDir:   "./web_mobile",
		DataDir:     "./data",
		Rules:       xiangqi.RulesStandard.String(),
		RecentLimit: history.DefaultRecentLimit,
		LogLevel:    "info",
		Cloud: CloudConfig{
			Enabled: true,
			URL:     analysis.DefaultCloudURL,
			Timeout: Duration{10 * time.Second},
		},
		Engine: EngineConfig{
			Depth:   12,
			Threads: 1,
			HashMB:  64,
		},
	}
}

// FindConfigPath 在当前目录及上一级目录查找 config.json
func FindConfigPath() (string, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	paths := []string{
		filepath.Join(cwd, "config.json"),
		filepath.Join(cwd, "..", "config.json"),
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, filepath.Dir(path), nil
		}
	}
	return "", "", fmt.Errorf("config.json not found from %s", cwd)
}

// LoadConfig 读取配置文件；文件中没有写的字段保持默认值。
// 相对目录按配置文件所在目录解析。
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for _, dir := range []*string{&cfg.WebDir, &cfg.MobileDir, &cfg.DataDir} {
		if *dir != "" && !filepath.IsAbs(*dir) {
			*dir = filepath.Join(base, *dir)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := xiangqi.ParseRules(c.Rules); err != nil {
		return err
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("recent_limit must be >= 0, got %d", c.RecentLimit)
	}
	if c.Engine.Depth < 0 {
		return fmt.Errorf("engine.depth must be >= 0, got %d", c.Engine.Depth)
	}
	return nil
}

func (c Config) RulesValue() xiangqi.Rules {
	r, _ := xiangqi.ParseRules(c.Rules)
	return r
}
