package xiangqi

var (
	orthoDirs = [4][2]int{{0, +1}, {0, -1}, {+1, 0}, {-1, 0}} // {df, dr}
	diagDirs  = [4][2]int{{+1, +1}, {+1, -1}, {-1, +1}, {-1, -1}}
)

// 目标格为空或是对方棋子
func canLand(p *Position, to Square, side Side) bool {
	dst := p.Board.Squares[to]
	return dst == 0 || dst.Side() != side
}

// 车：横竖随便走
func genChariotMoves(p *Position, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := p.Board.Squares[from].Side()
	for _, d := range orthoDirs {
		f, r := file+d[0], rank+d[1]
		for onBoard(f, r) {
			to := squareAt(f, r)
			pc := p.Board.Squares[to]
			if pc == 0 {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
}

// 炮：车走法 + 隔一子吃
func genCannonMoves(p *Position, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := p.Board.Squares[from].Side()
	for _, d := range orthoDirs {
		f, r := file+d[0], rank+d[1]

		// 走子阶段：直到第一个棋子
		for onBoard(f, r) {
			to := squareAt(f, r)
			if p.Board.Squares[to] == 0 {
				*moves = append(*moves, Move{From: from, To: to})
				f += d[0]
				r += d[1]
				continue
			}
			f += d[0]
			r += d[1]
			break
		}

		// 吃子阶段：越过炮架，遇到第一子可吃
		for onBoard(f, r) {
			to := squareAt(f, r)
			pc := p.Board.Squares[to]
			if pc != 0 {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
}

// 相：田字 + 塞象眼 + 不过河
func genElephantMoves(p *Position, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := p.Board.Squares[from].Side()
	for _, d := range diagDirs {
		f, r := file+2*d[0], rank+2*d[1]
		if !onBoard(f, r) || !inOwnHalf(side, r) {
			continue
		}
		if p.Board.Squares[squareAt(file+d[0], rank+d[1])] != 0 {
			continue
		}
		to := squareAt(f, r)
		if canLand(p, to, side) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

// 士：九宫内斜走一格
func genAdvisorMoves(p *Position, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := p.Board.Squares[from].Side()
	for _, d := range diagDirs {
		f, r := file+d[0], rank+d[1]
		if !onBoard(f, r) || !inPalace(side, f, r) {
			continue
		}
		to := squareAt(f, r)
		if canLand(p, to, side) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

// 帅：九宫内上下左右一格；同列无子相隔时可以直接吃对方的将（飞将）
func genGeneralMoves(p *Position, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := p.Board.Squares[from].Side()
	for _, d := range orthoDirs {
		f, r := file+d[0], rank+d[1]
		if !onBoard(f, r) || !inPalace(side, f, r) {
			continue
		}
		to := squareAt(f, r)
		if canLand(p, to, side) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}

	dr := soldierDir(side)
	for r := rank + dr; r >= 0 && r < Ranks; r += dr {
		pc := p.Board.Squares[squareAt(file, r)]
		if pc == 0 {
			continue
		}
		if pc.Type() == PieceGeneral && pc.Side() != side {
			*moves = append(*moves, Move{From: from, To: squareAt(file, r)})
		}
		break
	}
}
