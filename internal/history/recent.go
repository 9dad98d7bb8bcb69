package history

import "time"

const DefaultRecentLimit = 20

// Entry 最近局面列表的一项
type Entry struct {
	At     time.Time `json:"at"`
	FEN    string    `json:"fen"`
	Move   string    `json:"move,omitempty"` // 中文
	UCI    string    `json:"uci,omitempty"`
	Source string    `json:"source,omitempty"` // manual / analysis / fen
}

// Recent 最近局面，新的在前，超出上限丢弃最旧的
type Recent struct {
	Limit   int     `json:"limit"`
	Entries []Entry `json:"entries"`
}

func NewRecent(limit int) *Recent {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &Recent{Limit: limit}
}

// Push 与最新一项 FEN 相同时不重复记录，返回是否加入
func (r *Recent) Push(e Entry) bool {
	if len(r.Entries) > 0 && r.Entries[0].FEN == e.FEN {
		return false
	}
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	r.Entries = append([]Entry{e}, r.Entries...)
	if len(r.Entries) > limit {
		r.Entries = r.Entries[:limit]
	}
	return true
}

func (r *Recent) Len() int { return len(r.Entries) }

func (r *Recent) Clear() { r.Entries = nil }

func (r *Recent) Clone() *Recent {
	nr := *r
	nr.Entries = append([]Entry(nil), r.Entries...)
	return &nr
}

// Archive 上一局，只保留一份
type Archive struct {
	Records    []Record  `json:"records"`
	Recent     []Entry   `json:"recent"`
	ArchivedAt time.Time `json:"archived_at"`
}

func (a *Archive) Empty() bool {
	return a == nil || (len(a.Records) == 0 && len(a.Recent) == 0)
}
