// Package history keeps the move journal of a game: the linear record list
// with its cursor, the bounded recent-positions log and the previous-game slot.
package history

import (
	"time"

	"xqboard/internal/xiangqi"
)

// Record 一步棋的记录，追加后不再修改
type Record struct {
	Seq     int          `json:"seq"` // 从 1 开始
	UCI     string       `json:"uci"`
	Chinese string       `json:"chinese"`
	FEN     string       `json:"fen"` // 走完这步之后的局面
	Mover   xiangqi.Side `json:"mover"`
	Capture bool         `json:"capture,omitempty"`
	Check   bool         `json:"check,omitempty"`
	At      time.Time    `json:"at"`
}

// Kind 与界面上的标记一致：吃子 / 将军 / 普通
func (r Record) Kind() string {
	switch {
	case r.Check:
		return "将军"
	case r.Capture:
		return "吃子"
	}
	return "普通"
}
