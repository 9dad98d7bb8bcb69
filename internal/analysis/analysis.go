// Package analysis adapts remote and local move-suggestion services.
// The search itself happens elsewhere; this package only talks to it.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"xqboard/internal/xiangqi"
)

var (
	ErrNetworkFailure = errors.New("analysis network failure")
	ErrServiceError   = errors.New("analysis service error")
)

type Request struct {
	FEN      string        `json:"fen"`
	Depth    int           `json:"depth,omitempty"`
	MoveTime time.Duration `json:"move_time,omitempty"`
	Platform string        `json:"platform,omitempty"` // cloud / engine，空表示自动
}

// Candidate 云库返回的一条候选着法
type Candidate struct {
	Move        string  `json:"move"`
	ChineseMove string  `json:"chinese_move"`
	Score       int     `json:"score"`
	Rank        int     `json:"rank"`
	Note        string  `json:"note,omitempty"`
	WinRate     float64 `json:"win_rate"` // 百分比
}

type Suggestion struct {
	FEN         string       `json:"fen"`
	Move        string       `json:"move"`
	ChineseMove string       `json:"chinese_move"`
	Side        xiangqi.Side `json:"side"`
	Score       int          `json:"score"`
	WinRate     float64      `json:"win_rate"`
	Source      string       `json:"source"`
	Candidates  []Candidate  `json:"candidates,omitempty"`
}

type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Suggestion, error)
}

// 分析前先解析 FEN，格式不对直接拒绝，不发请求
func decodeRequest(req Request) (*xiangqi.Position, error) {
	return xiangqi.DecodeFEN(req.FEN)
}

// chineseFor 用走子前局面生成中文记谱；着法无效时返回空串
func chineseFor(pos *xiangqi.Position, uci string) string {
	m, err := xiangqi.DecodeUCI(uci)
	if err != nil {
		return ""
	}
	n, ok := pos.NotateMove(m)
	if !ok {
		return ""
	}
	return n.Text
}

// EngineFEN 补齐 UCI 引擎需要的完整 FEN 字段
func EngineFEN(pos *xiangqi.Position) string {
	return pos.EncodeFEN() + " - - 0 1"
}

// Backend 带名字的分析器，Chain 按 Request.Platform 选择
type Backend struct {
	Name     string
	Analyzer Analyzer
}

// Chain 依次尝试各个分析器，前一个失败就用下一个
type Chain struct {
	Backends []Backend
}

func NewChain(backends ...Backend) *Chain {
	return &Chain{Backends: backends}
}

func (c *Chain) Analyze(ctx context.Context, req Request) (Suggestion, error) {
	if _, err := decodeRequest(req); err != nil {
		return Suggestion{}, err
	}
	platform := strings.ToLower(strings.TrimSpace(req.Platform))

	var errs []error
	tried := 0
	for _, b := range c.Backends {
		if platform != "" && platform != b.Name {
			continue
		}
		tried++
		sg, err := b.Analyzer.Analyze(ctx, req)
		if err == nil {
			return sg, nil
		}
		if ctx.Err() != nil {
			return Suggestion{}, ctx.Err()
		}
		errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))
	}
	if tried == 0 {
		return Suggestion{}, fmt.Errorf("%w: no analyzer for platform %q", ErrServiceError, req.Platform)
	}
	return Suggestion{}, errors.Join(errs...)
}
