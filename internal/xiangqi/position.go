package xiangqi

import "fmt"

// generalsFace 两将同列且中间无子
func (p *Position) generalsFace() bool {
	red, ok := p.GeneralSquare(Red)
	if !ok {
		return false
	}
	black, ok := p.GeneralSquare(Black)
	if !ok {
		// 有一方将已经没了：对局终结，但不存在“对脸”问题
		return false
	}
	if red.File() != black.File() {
		return false
	}

	lo, hi := red.Rank(), black.Rank()
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if p.Board.Squares[squareAt(red.File(), r)] != 0 {
			return false
		}
	}
	return true
}

// Status 描述当前走子方的处境
type Status int

const (
	StatusOngoing Status = iota
	StatusCheckmate
	StatusStalemate // 困毙
	StatusNoGeneral
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusNoGeneral:
		return "no_general"
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	for v := StatusOngoing; v <= StatusNoGeneral; v++ {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", b)
}

// Over 对局是否结束
func (s Status) Over() bool { return s != StatusOngoing }

func (p *Position) Status() Status {
	if !p.GeneralExists(p.SideToMove) {
		return StatusNoGeneral
	}
	if len(p.GenerateLegalMoves()) > 0 {
		return StatusOngoing
	}
	if p.IsInCheck(p.SideToMove) {
		return StatusCheckmate
	}
	return StatusStalemate
}
