package xiangqi

// 兵：未过河只能向前一格；过河后可左右一格；永不后退
func genSoldierMoves(p *Position, from Square, moves *[]Move) {
	file, rank := from.File(), from.Rank()
	side := p.Board.Squares[from].Side()
	dir := soldierDir(side)

	if r := rank + dir; onBoard(file, r) {
		to := squareAt(file, r)
		if canLand(p, to, side) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}

	if !crossedRiver(side, rank) {
		return
	}
	for _, df := range [2]int{-1, +1} {
		f := file + df
		if !onBoard(f, rank) {
			continue
		}
		to := squareAt(f, rank)
		if canLand(p, to, side) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}
