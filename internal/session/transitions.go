package session

import (
	"fmt"

	"xqboard/internal/history"
	"xqboard/internal/xiangqi"
)

const (
	SourceManual   = "manual"
	SourceFEN      = "fen"
	SourceAnalysis = "analysis"
)

func (s *Session) applyMove(st *state, c ApplyMove) (Effects, error) {
	m, err := xiangqi.DecodeUCI(c.UCI)
	if err != nil {
		return Effects{}, err
	}
	if err := st.pos.CheckMove(m, s.opts.Rules); err != nil {
		return Effects{}, err
	}
	rec, err := s.play(st, m, "", SourceManual)
	if err != nil {
		return Effects{}, err
	}
	return effectsOf(*st, &rec, resultNotice(st.pos, rec)), nil
}

// play 走子并记录，不做规则检查；chinese 为空时自动生成
func (s *Session) play(st *state, m xiangqi.Move, chinese, source string) (history.Record, error) {
	pc := st.pos.Get(m.From)
	if pc.IsEmpty() {
		return history.Record{}, &xiangqi.MoveError{Move: m, Reason: xiangqi.ReasonNoPiece}
	}
	n := xiangqi.Notate(pc, m)
	if chinese == "" {
		chinese = n.Text
	}
	captured, ok := st.pos.MakeMove(m)
	if !ok {
		return history.Record{}, &xiangqi.MoveError{Move: m, Reason: xiangqi.ReasonPieceRule}
	}

	now := s.opts.Now()
	fen := st.pos.EncodeFEN()
	rec := st.journal.Append(history.Record{
		UCI:     xiangqi.EncodeUCI(m),
		Chinese: chinese,
		FEN:     fen,
		Mover:   pc.Side(),
		Capture: !captured.IsEmpty(),
		Check:   st.pos.IsInCheck(st.pos.SideToMove),
		At:      now,
	})
	st.recent.Push(history.Entry{
		At:     now,
		FEN:    fen,
		Move:   n.Label() + chinese,
		UCI:    rec.UCI,
		Source: source,
	})
	return rec, nil
}

func resultNotice(pos *xiangqi.Position, rec history.Record) string {
	switch pos.Status() {
	case xiangqi.StatusCheckmate:
		return fmt.Sprintf("%s，绝杀", rec.Chinese)
	case xiangqi.StatusStalemate:
		return fmt.Sprintf("%s，困毙", rec.Chinese)
	case xiangqi.StatusNoGeneral:
		return fmt.Sprintf("%s，吃将", rec.Chinese)
	}
	if rec.Check {
		return rec.Chinese + "，将军"
	}
	return rec.Chinese
}

// navigate 移动光标后按保存的 FEN 重建局面，不经过走法校验
func (s *Session) navigate(st *state, step func() error) (Effects, error) {
	if err := step(); err != nil {
		return Effects{}, err
	}
	pos, err := xiangqi.DecodeFEN(st.journal.CurrentFEN())
	if err != nil {
		return Effects{}, fmt.Errorf("stored position at step %d: %w", st.journal.Cursor, err)
	}
	st.pos = pos
	notice := "开局"
	if rec, ok := st.journal.Current(); ok {
		notice = fmt.Sprintf("第 %d 步 %s", rec.Seq, rec.Chinese)
	}
	return effectsOf(*st, nil, notice), nil
}

func (s *Session) setFEN(st *state, c SetFEN) (Effects, error) {
	pos, err := xiangqi.DecodeFEN(c.FEN)
	if err != nil {
		return Effects{}, err
	}
	fen := pos.EncodeFEN()
	st.pos = pos
	if !c.KeepHistory {
		st.journal.Reset(fen)
	}
	st.recent.Push(history.Entry{At: s.opts.Now(), FEN: fen, Source: SourceFEN})
	return effectsOf(*st, nil, "局面已设置"), nil
}

func (s *Session) newGame(st *state) (Effects, error) {
	if st.journal.Len() > 0 || st.recent.Len() > 0 {
		st.previous = &history.Archive{
			Records:    append([]history.Record(nil), st.journal.Records...),
			Recent:     append([]history.Entry(nil), st.recent.Entries...),
			ArchivedAt: s.opts.Now(),
		}
	}
	st.pos = xiangqi.NewInitialPosition()
	st.journal.Reset(xiangqi.InitialFEN)
	st.recent.Clear()
	return effectsOf(*st, nil, "新对局"), nil
}

// applyAnalysis 信任分析服务返回的局面：以它为新的起点，不再校验
func (s *Session) applyAnalysis(st *state, c ApplyAnalysis) (Effects, error) {
	sg := c.Suggestion
	pos, err := xiangqi.DecodeFEN(sg.FEN)
	if err != nil {
		return Effects{}, err
	}
	fen := pos.EncodeFEN()
	st.pos = pos
	st.journal.Reset(fen)

	source := SourceAnalysis
	if sg.Source != "" {
		source += ":" + sg.Source
	}
	st.recent.Push(history.Entry{
		At:     s.opts.Now(),
		FEN:    fen,
		Move:   sg.ChineseMove,
		UCI:    sg.Move,
		Source: source,
	})

	notice := "推荐：" + sg.ChineseMove
	if !c.Play || sg.Move == "" {
		return effectsOf(*st, nil, notice), nil
	}

	m, err := xiangqi.DecodeUCI(sg.Move)
	if err != nil {
		return Effects{}, err
	}
	rec, err := s.play(st, m, sg.ChineseMove, source)
	if err != nil {
		return Effects{}, fmt.Errorf("suggested move: %w", err)
	}
	return effectsOf(*st, &rec, resultNotice(st.pos, rec)), nil
}
