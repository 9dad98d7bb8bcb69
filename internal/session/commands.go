package session

import "xqboard/internal/analysis"

// Command 是一次对局状态变更请求，由 Session.Dispatch 执行
type Command interface {
	Name() string
}

// ApplyMove 走一步棋（UCI 坐标）
type ApplyMove struct {
	UCI string
}

// StepBack 后退一步
type StepBack struct{}

// StepForward 前进一步
type StepForward struct{}

// StepTo 跳到第 N 步，0 为起始局面
type StepTo struct {
	N int
}

// SetFEN 直接设置局面。KeepHistory 为 false 时清空棋谱并以该局面为起点
type SetFEN struct {
	FEN         string
	KeepHistory bool
}

// NewGame 归档当前对局并回到开局
type NewGame struct{}

// ApplyAnalysis 接受分析服务的结果；Play 为 true 时同时走出推荐的着法
type ApplyAnalysis struct {
	Suggestion analysis.Suggestion
	Play       bool
}

func (ApplyMove) Name() string     { return "apply_move" }
func (StepBack) Name() string      { return "step_back" }
func (StepForward) Name() string   { return "step_forward" }
func (StepTo) Name() string        { return "step_to" }
func (SetFEN) Name() string        { return "set_fen" }
func (NewGame) Name() string       { return "new_game" }
func (ApplyAnalysis) Name() string { return "apply_analysis" }
