package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/freeeve/uci"
	"github.com/rs/zerolog"

	"xqboard/internal/xiangqi"
)

const (
	DefaultDepth = 12
	mateScore    = 1000 // 杀棋分 = 步数 * 1000
)

// searcher 把局面交给引擎搜索到指定深度
type searcher interface {
	search(fen string, depth int) (*uci.Results, error)
	close()
}

type uciSearcher struct {
	eng *uci.Engine
}

func (s uciSearcher) search(fen string, depth int) (*uci.Results, error) {
	if err := s.eng.SetFEN(fen); err != nil {
		return nil, fmt.Errorf("set FEN: %w", err)
	}
	return s.eng.GoDepth(depth, uci.HighestDepthOnly)
}

func (s uciSearcher) close() { s.eng.Close() }

type EngineOptions struct {
	Path     string
	Depth    int
	MoveTime time.Duration // 请求没有指定时使用
	Threads  int
	HashMB   int
}

// EngineClient 驱动本地 UCI 象棋引擎（如 Pikafish）。引擎同一时间只处理一个请求
type EngineClient struct {
	mu       sync.Mutex
	engine   searcher
	depth    int
	moveTime time.Duration
	log      zerolog.Logger
}

func NewEngineClient(opts EngineOptions, logger zerolog.Logger) (*EngineClient, error) {
	if opts.Threads == 0 {
		opts.Threads = 1
	}
	if opts.HashMB == 0 {
		opts.HashMB = 64
	}

	engine, err := uci.NewEngine(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	if err := engine.SetOptions(uci.Options{
		Hash:    opts.HashMB,
		Threads: opts.Threads,
		MultiPV: 1,
		Ponder:  false,
		OwnBook: false,
	}); err != nil {
		engine.Close()
		return nil, fmt.Errorf("set options: %w", err)
	}
	e := newEngineClient(uciSearcher{eng: engine}, opts.Depth, logger)
	e.moveTime = opts.MoveTime
	return e, nil
}

func newEngineClient(engine searcher, depth int, logger zerolog.Logger) *EngineClient {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &EngineClient{
		engine: engine,
		depth:  depth,
		log:    logger.With().Str("component", "engine").Logger(),
	}
}

func (e *EngineClient) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.engine != nil {
		e.engine.close()
		e.engine = nil
	}
	return nil
}

type engineResult struct {
	res *uci.Results
	err error
}

func (e *EngineClient) Analyze(ctx context.Context, req Request) (Suggestion, error) {
	pos, err := decodeRequest(req)
	if err != nil {
		return Suggestion{}, err
	}
	depth := req.Depth
	if depth <= 0 {
		depth = e.depth
	}
	moveTime := req.MoveTime
	if moveTime <= 0 {
		moveTime = e.moveTime
	}
	if moveTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, moveTime+time.Second)
		defer cancel()
	}

	done := make(chan engineResult, 1)
	go func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.engine == nil {
			done <- engineResult{err: fmt.Errorf("%w: engine closed", ErrServiceError)}
			return
		}
		res, err := e.engine.search(EngineFEN(pos), depth)
		done <- engineResult{res: res, err: err}
	}()

	var r engineResult
	select {
	case <-ctx.Done():
		return Suggestion{}, ctx.Err()
	case r = <-done:
	}
	if r.err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrServiceError, r.err)
	}
	return e.suggestion(pos, r.res)
}

func (e *EngineClient) suggestion(pos *xiangqi.Position, res *uci.Results) (Suggestion, error) {
	if res == nil || len(res.Results) == 0 {
		return Suggestion{}, fmt.Errorf("%w: no results from engine", ErrServiceError)
	}
	best := res.Results[0]
	for _, r := range res.Results {
		if r.Depth > best.Depth {
			best = r
		}
	}

	move := res.BestMove
	if move == "" && len(best.BestMoves) > 0 {
		move = best.BestMoves[0]
	}
	if !xiangqi.LooksLikeUCI(move) {
		return Suggestion{}, fmt.Errorf("%w: invalid move %q from engine", ErrServiceError, move)
	}

	score := best.Score
	if best.Mate {
		score *= mateScore
	}
	e.log.Debug().
		Str("fen", pos.EncodeFEN()).
		Int("depth", best.Depth).
		Int("score", score).
		Str("move", move).
		Msg("engine result")

	return Suggestion{
		FEN:         pos.EncodeFEN(),
		Move:        move,
		ChineseMove: chineseFor(pos, move),
		Side:        pos.SideToMove,
		Score:       score,
		Source:      "engine",
	}, nil
}
