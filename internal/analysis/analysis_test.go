package analysis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/freeeve/uci"
	"github.com/rs/zerolog"

	"xqboard/internal/store"
	"xqboard/internal/testutil"
	"xqboard/internal/xiangqi"
)

const queryAllBody = "move:h2e2,score:1,rank:2,note:! (12-00),winrate:51.20|" +
	"move:b0c2,score:-2,rank:1,note:* (05-00),winrate:0.49|" +
	"move:c3c4,score:??,rank:0,note:? (??-??),winrate:??"

func TestCloudClientParsesQueryAll(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("board")
		testutil.AssertEqual(t, r.URL.Query().Get("action"), "queryall")
		w.Write([]byte(queryAllBody))
	}))
	defer srv.Close()

	c := NewCloudClient(srv.URL, time.Second, zerolog.Nop())
	sg, err := c.Analyze(context.Background(), Request{FEN: xiangqi.InitialFEN})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, gotQuery, xiangqi.InitialFEN)

	testutil.AssertEqual(t, sg.Move, "h2e2")
	testutil.AssertEqual(t, sg.ChineseMove, "炮二平五")
	testutil.AssertEqual(t, sg.Side, xiangqi.Red)
	testutil.AssertEqual(t, sg.Score, 1)
	testutil.AssertEqual(t, sg.WinRate, 51.2)
	testutil.AssertEqual(t, sg.Source, "cloud")
	testutil.AssertEqual(t, len(sg.Candidates), 2, "unscored move skipped")
	testutil.AssertEqual(t, sg.Candidates[1].ChineseMove, "马八进七")
	testutil.AssertEqual(t, sg.Candidates[1].WinRate, 49.0)
}

func TestCloudClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}, ErrServiceError},
		{"unknown position", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("unknown"))
		}, ErrServiceError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			_, err := NewCloudClient(srv.URL, time.Second, zerolog.Nop()).
				Analyze(context.Background(), Request{FEN: xiangqi.InitialFEN})
			testutil.AssertErrorIs(t, err, tt.want)
		})
	}

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	_, err := NewCloudClient(srv.URL, time.Second, zerolog.Nop()).
		Analyze(context.Background(), Request{FEN: xiangqi.InitialFEN})
	testutil.AssertErrorIs(t, err, ErrNetworkFailure)

	_, err = NewCloudClient(srv.URL, time.Second, zerolog.Nop()).
		Analyze(context.Background(), Request{FEN: "bad"})
	testutil.AssertErrorIs(t, err, xiangqi.ErrMalformedFEN)
}

func TestParseWinRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0.51", 51},
		{"51", 51},
		{"51%", 51},
		{" 75.5 ", 75.5},
		{"??", 0},
		{"", 0},
		{"abc", 0},
		{"150", 0},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, ParseWinRate(tt.in), tt.want, tt.in)
	}
}

type fakeAnalyzer struct {
	sg    Suggestion
	err   error
	calls int32
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req Request) (Suggestion, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.sg, f.err
}

func TestChainFallsBack(t *testing.T) {
	cloud := &fakeAnalyzer{err: ErrNetworkFailure}
	engine := &fakeAnalyzer{sg: Suggestion{Move: "h2e2", Source: "engine"}}
	chain := NewChain(Backend{"cloud", cloud}, Backend{"engine", engine})

	sg, err := chain.Analyze(context.Background(), Request{FEN: xiangqi.InitialFEN})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sg.Source, "engine")
	testutil.AssertEqual(t, cloud.calls, int32(1))

	_, err = chain.Analyze(context.Background(), Request{FEN: xiangqi.InitialFEN, Platform: "cloud"})
	testutil.AssertErrorIs(t, err, ErrNetworkFailure)
	testutil.AssertEqual(t, engine.calls, int32(1), "platform restricts backends")

	_, err = chain.Analyze(context.Background(), Request{FEN: xiangqi.InitialFEN, Platform: "gpu"})
	testutil.AssertErrorIs(t, err, ErrServiceError)
}

type fakeSearcher struct {
	res    *uci.Results
	err    error
	fen    string
	depth  int
	closed bool
}

func (f *fakeSearcher) search(fen string, depth int) (*uci.Results, error) {
	f.fen, f.depth = fen, depth
	return f.res, f.err
}

func (f *fakeSearcher) close() { f.closed = true }

func TestEngineClientErrors(t *testing.T) {
	s := &fakeSearcher{err: errors.New("engine died")}
	e := newEngineClient(s, 0, zerolog.Nop())
	_, err := e.Analyze(context.Background(), Request{FEN: xiangqi.InitialFEN})
	testutil.AssertErrorIs(t, err, ErrServiceError)
	testutil.AssertEqual(t, s.fen, xiangqi.InitialFEN+" - - 0 1")
	testutil.AssertEqual(t, s.depth, DefaultDepth)

	s.err = nil
	s.res = &uci.Results{}
	_, err = e.Analyze(context.Background(), Request{FEN: xiangqi.InitialFEN, Depth: 5})
	testutil.AssertErrorIs(t, err, ErrServiceError)
	testutil.AssertEqual(t, s.depth, 5)

	testutil.AssertNoError(t, e.Close())
	testutil.AssertTrue(t, s.closed)
	_, err = e.Analyze(context.Background(), Request{FEN: xiangqi.InitialFEN})
	testutil.AssertErrorIs(t, err, ErrServiceError)
}

func TestCachedAnalyzer(t *testing.T) {
	next := &fakeAnalyzer{sg: Suggestion{FEN: xiangqi.InitialFEN, Move: "h2e2", Source: "cloud"}}
	c := NewCached(next, store.NewMemStore(), zerolog.Nop())

	for i := 0; i < 3; i++ {
		sg, err := c.Analyze(context.Background(), Request{FEN: xiangqi.InitialFEN + " - - 0 1"})
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, sg.Move, "h2e2")
	}
	testutil.AssertEqual(t, next.calls, int32(1))

	// 更深或限时不同的请求不能拿浅的缓存结果
	for _, req := range []Request{
		{FEN: xiangqi.InitialFEN, Depth: 20},
		{FEN: xiangqi.InitialFEN, MoveTime: 2 * time.Second},
		{FEN: xiangqi.InitialFEN, Depth: 20},
	} {
		_, err := c.Analyze(context.Background(), req)
		testutil.AssertNoError(t, err)
	}
	testutil.AssertEqual(t, next.calls, int32(3))

	next.err = ErrNetworkFailure
	_, err := c.Analyze(context.Background(), Request{FEN: "3k5/9/9/9/9/9/9/9/9/4K4 w"})
	testutil.AssertErrorIs(t, err, ErrNetworkFailure)
}
