package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xqboard/internal/analysis"
	"xqboard/internal/session"
	"xqboard/internal/testutil"
	"xqboard/internal/xiangqi"
)

type stubAnalyzer struct{ sg analysis.Suggestion }

func (s stubAnalyzer) Analyze(ctx context.Context, req analysis.Request) (analysis.Suggestion, error) {
	sg := s.sg
	sg.FEN = req.FEN
	return sg, nil
}

func runScript(t *testing.T, r *repl, script string) string {
	t.Helper()
	var out bytes.Buffer
	r.in = bufio.NewScanner(strings.NewReader(script))
	r.out = &out
	r.run()
	return out.String()
}

func newTestREPL(t *testing.T) *repl {
	t.Helper()
	s, err := session.New("cli-test", session.Options{})
	testutil.AssertNoError(t, err)
	return newREPL(s, strings.NewReader(""), &bytes.Buffer{})
}

func TestREPLMovesAndNavigation(t *testing.T) {
	r := newTestREPL(t)
	out := runScript(t, r, "mv h2e2 h9g7\nback\nhistory\ngoto 0\nforward\nquit\n")

	testutil.AssertContains(t, out, "炮二平五")
	testutil.AssertContains(t, out, "马8进7")
	st := r.s.State()
	testutil.AssertEqual(t, st.Cursor, 1)
	testutil.AssertEqual(t, st.Length, 2)
}

func TestREPLErrorsKeepState(t *testing.T) {
	r := newTestREPL(t)
	out := runScript(t, r, "mv e3d3\nback\nbogus\n")
	testutil.AssertContains(t, out, "错误")
	testutil.AssertContains(t, out, "unknown command")
	testutil.AssertEqual(t, r.s.State().FEN, xiangqi.InitialFEN)
}

func TestREPLExportAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.txt")
	testutil.AssertNoError(t, os.WriteFile(path, []byte("h2e2 h9g7\nb0c2\n"), 0644))

	r := newTestREPL(t)
	runScript(t, r, "load "+path+"\nexport "+filepath.Join(dir, "out.txt")+" text gbk\n")
	testutil.AssertEqual(t, r.s.State().Length, 3)

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	testutil.AssertNoError(t, err)
	if len(data) == 0 {
		t.Fatal("empty export")
	}
}

func TestREPLAnalyzePlay(t *testing.T) {
	r := newTestREPL(t)
	r.analyzer = stubAnalyzer{sg: analysis.Suggestion{Move: "h2e2", ChineseMove: "炮二平五", Source: "cloud"}}
	out := runScript(t, r, "analyze play\n")
	testutil.AssertContains(t, out, "推荐 h2e2")
	testutil.AssertEqual(t, r.s.State().Length, 1)
}
