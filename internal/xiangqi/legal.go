package xiangqi

import (
	"fmt"
	"strings"
)

// Rules 选择走法校验的严格程度
type Rules int

const (
	// RulesStandard 完整的象棋规则
	RulesStandard Rules = iota
	// RulesLenient 只拦截吃自己的子和兵的走法，不检查轮次
	RulesLenient
)

func (r Rules) String() string {
	if r == RulesLenient {
		return "lenient"
	}
	return "standard"
}

func ParseRules(s string) (Rules, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return RulesStandard, nil
	case "lenient":
		return RulesLenient, nil
	}
	return RulesStandard, fmt.Errorf("unknown rules %q", s)
}

const (
	ReasonOffBoard      = "off board"
	ReasonNoPiece       = "no piece"
	ReasonNotYourTurn   = "not your turn"
	ReasonOwnPiece      = "own piece on target"
	ReasonPieceRule     = "piece rule"
	ReasonLeavesInCheck = "leaves general in check"
)

// IsLegal 按完整规则判断
func (p *Position) IsLegal(m Move) bool {
	return p.CheckMove(m, RulesStandard) == nil
}

// CheckMove 校验走法，不合法时返回 *MoveError
func (p *Position) CheckMove(m Move, rules Rules) error {
	if !m.From.Valid() || !m.To.Valid() {
		return illegal(m, ReasonOffBoard)
	}
	pc := p.Board.Squares[m.From]
	if pc == 0 {
		return illegal(m, ReasonNoPiece)
	}
	side := pc.Side()
	if rules == RulesStandard && side != p.SideToMove {
		return illegal(m, ReasonNotYourTurn)
	}
	if dst := p.Board.Squares[m.To]; dst != 0 && dst.Side() == side {
		return illegal(m, ReasonOwnPiece)
	}
	if m.From == m.To {
		return illegal(m, ReasonPieceRule)
	}

	if rules == RulesLenient {
		if pc.Type() == PieceSoldier && !p.pieceCanReach(m) {
			return illegal(m, ReasonPieceRule)
		}
		return nil
	}

	if !p.pieceCanReach(m) {
		return illegal(m, ReasonPieceRule)
	}
	if p.Board.Squares[m.To].Type() == PieceGeneral {
		return nil
	}
	np, ok := p.ApplyMove(m)
	if !ok || np.IsInCheck(side) {
		return illegal(m, ReasonLeavesInCheck)
	}
	return nil
}

// 只看棋子本身的走法规则
func (p *Position) pieceCanReach(m Move) bool {
	var moves []Move
	genPieceMoves(p, m.From, &moves)
	for _, mv := range moves {
		if mv.To == m.To {
			return true
		}
	}
	return false
}
