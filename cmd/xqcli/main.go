package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"xqboard/internal/analysis"
	"xqboard/internal/logx"
	"xqboard/internal/session"
	"xqboard/internal/store"
	"xqboard/internal/xiangqi"
)

func main() {
	dataDir := flag.String("data", "", "persist the game under this directory (empty = memory only)")
	id := flag.String("id", "", "resume a persisted game id")
	rulesFlag := flag.String("rules", "standard", "standard or lenient")
	cloudURL := flag.String("cloud", analysis.DefaultCloudURL, "cloud analysis URL (empty = disabled)")
	enginePath := flag.String("engine", "", "path to a UCI xiangqi engine")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger := logx.NewLogger(*logLevel)

	rules, err := xiangqi.ParseRules(*rulesFlag)
	if err != nil {
		fatal(err)
	}
	opts := session.Options{Rules: rules}
	if *dataDir != "" {
		db, err := store.NewFileStore(filepath.Join(*dataDir, "sessions"))
		if err != nil {
			fatal(err)
		}
		defer db.Close()
		opts.Store = db
	}

	var s *session.Session
	if *id != "" {
		var ok bool
		s, ok, err = session.Restore(*id, opts)
		if err != nil {
			fatal(err)
		}
		if !ok {
			fatal(fmt.Errorf("game %s not found", *id))
		}
	} else {
		s, err = session.New(uuid.NewString(), opts)
		if err != nil {
			fatal(err)
		}
	}

	var backends []analysis.Backend
	if *cloudURL != "" {
		backends = append(backends, analysis.Backend{Name: "cloud", Analyzer: analysis.NewCloudClient(*cloudURL, 10*time.Second, logger)})
	}
	if *enginePath != "" {
		eng, err := analysis.NewEngineClient(analysis.EngineOptions{Path: *enginePath}, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("local engine disabled")
		} else {
			defer eng.Close()
			backends = append(backends, analysis.Backend{Name: "engine", Analyzer: eng})
		}
	}

	r := newREPL(s, os.Stdin, os.Stdout)
	if len(backends) > 0 {
		r.analyzer = analysis.NewChain(backends...)
	}
	fmt.Fprintf(os.Stdout, "对局 %s，输入 help 查看命令\n", s.ID)
	r.run()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
