package session

import (
	"xqboard/internal/history"
	"xqboard/internal/xiangqi"
)

// Effects 是命令执行后界面需要刷新的全部内容
type Effects struct {
	FEN         string          `json:"fen"`
	SideToMove  xiangqi.Side    `json:"side_to_move"`
	Cursor      int             `json:"cursor"`
	Length      int             `json:"length"`
	Record      *history.Record `json:"record,omitempty"` // 这次新增的一步
	Status      xiangqi.Status  `json:"status"`
	InCheck     bool            `json:"in_check"`
	Repetitions int             `json:"repetitions"`
	Notice      string          `json:"notice,omitempty"`
}

// HistoryView 棋谱、最近局面与上一局
type HistoryView struct {
	BaseFEN  string           `json:"base_fen"`
	Records  []history.Record `json:"records"`
	Cursor   int              `json:"cursor"`
	Recent   []history.Entry  `json:"recent"`
	Previous *history.Archive `json:"previous,omitempty"`
}
