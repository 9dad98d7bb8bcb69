package xiangqi

// 马 8 种“日”字：终点 + 马腿
var horseLegMoves = [8]struct {
	Df, Dr int // 终点
	Lf, Lr int // 马腿
}{
	{-1, -2, 0, -1},
	{+1, -2, 0, -1},
	{-2, -1, -1, 0},
	{+2, -1, +1, 0},
	{-2, +1, -1, 0},
	{+2, +1, +1, 0},
	{-1, +2, 0, +1},
	{+1, +2, 0, +1},
}

func genHorseMoves(p *Position, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := p.Board.Squares[from].Side()

	for _, m := range horseLegMoves {
		f, r := file+m.Df, rank+m.Dr
		if !onBoard(f, r) {
			continue
		}
		if p.Board.Squares[squareAt(file+m.Lf, rank+m.Lr)] != 0 {
			continue // 憋马腿
		}
		to := squareAt(f, r)
		if canLand(p, to, side) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}
