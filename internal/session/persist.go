package session

import (
	"fmt"
	"time"

	"xqboard/internal/history"
	"xqboard/internal/store"
	"xqboard/internal/xiangqi"
)

// KeySnapshot 会话的全部持久化数据存为一个值，实际存储时加上 "<id>/" 前缀。
// 一次 Put 要么整体写入要么不写，命令失败时存储里不会留下半个状态
const KeySnapshot = "snapshot"

// snapshot 字段名沿用页面版本地存储的键名
type snapshot struct {
	MoveList    []history.Record `json:"moveList"`
	CurrentStep int              `json:"currentStep"`
	BaseFEN     string           `json:"baseFEN"`
	PositionFEN string           `json:"positionFEN"`
	Current     []history.Entry  `json:"chessHistory_current_v2"`
	Previous    *history.Archive `json:"chessHistory_previous_v2,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func key(id, name string) string { return id + "/" + name }

func (s *Session) persist(st state) error {
	snap := snapshot{
		MoveList:    st.journal.Records,
		CurrentStep: st.journal.Cursor,
		BaseFEN:     st.journal.BaseFEN,
		PositionFEN: st.pos.EncodeFEN(),
		Current:     st.recent.Entries,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.opts.Now(),
	}
	if !st.previous.Empty() {
		snap.Previous = st.previous
	}
	if err := s.opts.Store.Put(key(s.ID, KeySnapshot), snap); err != nil {
		return fmt.Errorf("persist %s: %w", s.ID, err)
	}
	return nil
}

// Restore 从存储中恢复会话；没有记录时返回 false。光标会被拉回 [0, len]。
func Restore(id string, opts Options) (*Session, bool, error) {
	opts = opts.withDefaults()

	var snap snapshot
	ok, err := opts.Store.Get(key(id, KeySnapshot), &snap)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	journal := history.NewJournal(snap.BaseFEN)
	journal.Records = snap.MoveList
	journal.Cursor = snap.CurrentStep
	journal.Clamp()

	recent := history.NewRecent(opts.RecentLimit)
	recent.Entries = snap.Current
	if len(recent.Entries) > recent.Limit {
		recent.Entries = recent.Entries[:recent.Limit]
	}

	pos, err := restorePosition(id, snap.PositionFEN, journal)
	if err != nil {
		return nil, false, err
	}

	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = opts.Now()
	}
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = snap.CreatedAt
	}

	s := &Session{
		ID:        id,
		CreatedAt: snap.CreatedAt,
		updatedAt: snap.UpdatedAt,
		opts:      opts,
		st: state{
			pos:     pos,
			journal: journal,
			recent:  recent,
		},
	}
	if !snap.Previous.Empty() {
		s.st.previous = snap.Previous
	}
	return s, true, nil
}

// 优先用保存的当前局面；损坏时退回光标处的 FEN
func restorePosition(id, fen string, j *history.Journal) (*xiangqi.Position, error) {
	if fen != "" {
		if pos, err := xiangqi.DecodeFEN(fen); err == nil {
			return pos, nil
		}
	}
	pos, err := xiangqi.DecodeFEN(j.CurrentFEN())
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", id, err)
	}
	return pos, nil
}

// Erase 删除会话的全部持久化数据
func Erase(db store.Store, id string) error {
	return db.Delete(key(id, KeySnapshot))
}
