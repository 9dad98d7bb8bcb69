package xiangqi

func genPieceMoves(p *Position, sq Square, moves *[]Move) {
	switch p.Board.Squares[sq].Type() {
	case PieceChariot:
		genChariotMoves(p, sq, moves)
	case PieceCannon:
		genCannonMoves(p, sq, moves)
	case PieceHorse:
		genHorseMoves(p, sq, moves)
	case PieceElephant:
		genElephantMoves(p, sq, moves)
	case PieceAdvisor:
		genAdvisorMoves(p, sq, moves)
	case PieceGeneral:
		genGeneralMoves(p, sq, moves)
	case PieceSoldier:
		genSoldierMoves(p, sq, moves)
	}
}

// 生成指定一方的伪合法走法（不考虑自己被将）
func (p *Position) GeneratePseudoMovesForSide(side Side) []Move {
	var moves []Move
	for sq, pc := range p.Board.Squares {
		if pc == 0 || pc.Side() != side {
			continue
		}
		genPieceMoves(p, Square(sq), &moves)
	}
	return moves
}

func (p *Position) GeneratePseudoMoves() []Move {
	return p.GeneratePseudoMovesForSide(p.SideToMove)
}

// GenerateLegalMoves 生成走子方的全部合法走法
func (p *Position) GenerateLegalMoves() []Move {
	pseudo := p.GeneratePseudoMoves()
	out := make([]Move, 0, len(pseudo))
	side := p.SideToMove
	for _, mv := range pseudo {
		// 直接吃掉对方的将，对局结束，不必再看自己是否被将
		if target := p.Board.Squares[mv.To]; target.Type() == PieceGeneral {
			out = append(out, mv)
			continue
		}
		np, ok := p.ApplyMove(mv)
		if !ok || np.IsInCheck(side) {
			continue
		}
		out = append(out, mv)
	}
	return out
}

// ApplyMove 返回走子后的新局面，不修改 p。起点无子或越界时返回 false。
// 这里不检查规则（由 CheckMove 负责）。
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	np := p.Clone()
	if _, ok := np.MakeMove(m); !ok {
		return nil, false
	}
	return np, true
}

// MakeMove 原地走子，返回被吃掉的子。轮到的一方变为走子一方的对方。
func (p *Position) MakeMove(m Move) (Piece, bool) {
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		return 0, false
	}
	pc := p.Board.Squares[m.From]
	if pc == 0 {
		return 0, false
	}
	captured := p.Board.Squares[m.To]

	// 增量 Zobrist：移除 from 的子、移除被吃子（若有）、加入 to 的子、切换走子方。
	h := p.EnsureHash()
	h ^= pieceHashKey(pc, m.From)
	h ^= pieceHashKey(captured, m.To)
	h ^= pieceHashKey(pc, m.To)

	p.Board.Squares[m.To] = pc
	p.Board.Squares[m.From] = 0

	next := pc.Side().Opposite()
	if next != p.SideToMove {
		h ^= zobristSide
	}
	p.SideToMove = next
	p.Hash = h
	return captured, true
}
