package httpserver

import (
	"fmt"

	"xqboard/internal/analysis"
	"xqboard/internal/history"
	"xqboard/internal/session"
	"xqboard/internal/xiangqi"
)

// 前端用的招法结构，格子编号 rank*9+file
type MoveDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (m MoveDTO) toUCI() (string, error) {
	from, to := xiangqi.Square(m.From), xiangqi.Square(m.To)
	if !from.Valid() || !to.Valid() {
		return "", fmt.Errorf("%w: square %d/%d", xiangqi.ErrMalformedUCI, m.From, m.To)
	}
	return xiangqi.EncodeUCI(xiangqi.Move{From: from, To: to}), nil
}

// GameRequest 只带 game_id 的请求：state / step_back / step_forward / history
type GameRequest struct {
	GameID string `json:"game_id"`
}

// Play 请求。UCI 优先，没有时用 Move 的格子编号
type PlayRequest struct {
	GameID string   `json:"game_id"`
	UCI    string   `json:"uci"`
	Move   *MoveDTO `json:"move,omitempty"`
}

type StepToRequest struct {
	GameID string `json:"game_id"`
	Step   int    `json:"step"`
}

type SetFENRequest struct {
	GameID      string `json:"game_id"`
	FEN         string `json:"fen"`
	KeepHistory bool   `json:"keep_history"`
}

// AnalyzeRequest 分析一个局面。FEN 为空时用 game_id 对应对局的当前局面；
// Apply 为 true 时把结果写回对局，Play 再走出推荐着法
type AnalyzeRequest struct {
	GameID     string `json:"game_id"`
	FEN        string `json:"fen"`
	Depth      int    `json:"depth"`
	MoveTimeMs int64  `json:"move_time_ms"`
	Platform   string `json:"platform"`
	Apply      bool   `json:"apply"`
	Play       bool   `json:"play"`
}

// StateResponse new_game / state / play / step_* / set_fen 的统一返回
type StateResponse struct {
	GameID string `json:"game_id"`
	session.Effects
	LegalMoves []string `json:"legal_moves"`
}

type HistoryResponse struct {
	GameID string `json:"game_id"`
	session.HistoryView
}

type AnalyzeResponse struct {
	Suggestion analysis.Suggestion `json:"suggestion"`
	State      *StateResponse      `json:"state,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// 保证 JSON 里是 [] 而不是 null
func nonNilRecords(rs []history.Record) []history.Record {
	if rs == nil {
		return []history.Record{}
	}
	return rs
}
