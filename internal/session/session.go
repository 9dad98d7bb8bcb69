// Package session runs one game: the live position, its move journal and the
// persisted snapshots, driven by discrete commands.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"xqboard/internal/history"
	"xqboard/internal/store"
	"xqboard/internal/xiangqi"
)

var ErrUnknownCommand = errors.New("unknown command")

// Options 创建会话时的可选项
type Options struct {
	Rules       xiangqi.Rules
	RecentLimit int
	Store       store.Store
	Now         func() time.Time
}

func (o Options) withDefaults() Options {
	if o.RecentLimit <= 0 {
		o.RecentLimit = history.DefaultRecentLimit
	}
	if o.Store == nil {
		o.Store = store.NewMemStore()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// state 是可以整体替换的会话状态；命令先在副本上执行，持久化成功后再提交
type state struct {
	pos      *xiangqi.Position
	journal  *history.Journal
	recent   *history.Recent
	previous *history.Archive
}

func (st state) clone() state {
	var prev *history.Archive
	if st.previous != nil {
		p := *st.previous
		prev = &p
	}
	return state{
		pos:      st.pos.Clone(),
		journal:  st.journal.Clone(),
		recent:   st.recent.Clone(),
		previous: prev,
	}
}

type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	st        state
	opts      Options
	updatedAt time.Time
}

// New 从开局创建会话并写入一次快照
func New(id string, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	now := opts.Now()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		updatedAt: now,
		opts:      opts,
		st: state{
			pos:     xiangqi.NewInitialPosition(),
			journal: history.NewJournal(xiangqi.InitialFEN),
			recent:  history.NewRecent(opts.RecentLimit),
		},
	}
	if err := s.persist(s.st); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Dispatch 执行一条命令。失败时状态保持不变
func (s *Session) Dispatch(cmd Command) (Effects, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	var (
		eff Effects
		err error
	)
	switch c := cmd.(type) {
	case ApplyMove:
		eff, err = s.applyMove(&next, c)
	case StepBack:
		eff, err = s.navigate(&next, next.journal.Back)
	case StepForward:
		eff, err = s.navigate(&next, next.journal.Forward)
	case StepTo:
		eff, err = s.navigate(&next, func() error { return next.journal.Seek(c.N) })
	case SetFEN:
		eff, err = s.setFEN(&next, c)
	case NewGame:
		eff, err = s.newGame(&next)
	case ApplyAnalysis:
		eff, err = s.applyAnalysis(&next, c)
	default:
		return Effects{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	if err != nil {
		return Effects{}, err
	}

	if err := s.persist(next); err != nil {
		return Effects{}, err
	}
	s.st = next
	s.updatedAt = s.opts.Now()
	return eff, nil
}

// State 当前局面的效果视图，不改变状态
func (s *Session) State() Effects {
	s.mu.Lock()
	defer s.mu.Unlock()
	return effectsOf(s.st, nil, "")
}

// Position 返回当前局面的副本
func (s *Session) Position() *xiangqi.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.pos.Clone()
}

// LegalMoves 当前走子方的全部合法走法（UCI）
func (s *Session) LegalMoves() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	moves := s.st.pos.GenerateLegalMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = xiangqi.EncodeUCI(m)
	}
	return out
}

func (s *Session) History() HistoryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := HistoryView{
		BaseFEN: s.st.journal.BaseFEN,
		Records: append([]history.Record(nil), s.st.journal.Records...),
		Cursor:  s.st.journal.Cursor,
		Recent:  append([]history.Entry(nil), s.st.recent.Entries...),
	}
	if !s.st.previous.Empty() {
		p := *s.st.previous
		v.Previous = &p
	}
	return v
}

func effectsOf(st state, rec *history.Record, notice string) Effects {
	pos := st.pos
	return Effects{
		FEN:         pos.EncodeFEN(),
		SideToMove:  pos.SideToMove,
		Cursor:      st.journal.Cursor,
		Length:      st.journal.Len(),
		Record:      rec,
		Status:      pos.Status(),
		InCheck:     pos.IsInCheck(pos.SideToMove),
		Repetitions: st.journal.Repetitions(),
		Notice:      notice,
	}
}
