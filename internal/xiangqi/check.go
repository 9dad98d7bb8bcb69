package xiangqi

// IsAttacked 判断 sq 是否被 by 这一方攻击。
// 直接按各兵种的几何关系反查攻击者，不生成走法。
func (p *Position) IsAttacked(sq Square, by Side) bool {
	file, rank := sq.File(), sq.Rank()
	sq2 := p.Board.Squares[:]

	is := func(f, r int, pt PieceType) bool {
		if !onBoard(f, r) {
			return false
		}
		pc := sq2[squareAt(f, r)]
		return pc != 0 && pc.Side() == by && pc.Type() == pt
	}

	// 车、炮：沿四个方向找第一子和第二子
	for _, d := range orthoDirs {
		f, r := file+d[0], rank+d[1]
		screens := 0
		for onBoard(f, r) {
			pc := sq2[squareAt(f, r)]
			if pc != 0 {
				if pc.Side() == by {
					if screens == 0 && pc.Type() == PieceChariot {
						return true
					}
					if screens == 1 && pc.Type() == PieceCannon {
						return true
					}
				}
				screens++
				if screens > 1 {
					break
				}
			}
			f += d[0]
			r += d[1]
		}
	}

	// 马：马从 sq-(Df,Dr) 跳过来，马腿在马的位置 +(Lf,Lr)
	for _, m := range horseLegMoves {
		hf, hr := file-m.Df, rank-m.Dr
		if !is(hf, hr, PieceHorse) {
			continue
		}
		if sq2[squareAt(hf+m.Lf, hr+m.Lr)] == 0 {
			return true
		}
	}

	// 兵：身后一格；或已过河的同行左右
	dir := soldierDir(by)
	if is(file, rank-dir, PieceSoldier) {
		return true
	}
	if crossedRiver(by, rank) && (is(file-1, rank, PieceSoldier) || is(file+1, rank, PieceSoldier)) {
		return true
	}

	// 帅：九宫内相邻一格
	if inPalace(by, file, rank) {
		for _, d := range orthoDirs {
			if is(file+d[0], rank+d[1], PieceGeneral) {
				return true
			}
		}
		for _, d := range diagDirs {
			if is(file+d[0], rank+d[1], PieceAdvisor) {
				return true
			}
		}
	}

	// 相：田字，象眼为空，目标在本方半场
	if inOwnHalf(by, rank) {
		for _, d := range diagDirs {
			if is(file+2*d[0], rank+2*d[1], PieceElephant) && sq2[squareAt(file+d[0], rank+d[1])] == 0 {
				return true
			}
		}
	}
	return false
}

// IsInCheck 判断 side 这一方的帅是否被将军；两将对脸也算被将
func (p *Position) IsInCheck(side Side) bool {
	gen, ok := p.GeneralSquare(side)
	if !ok {
		return false
	}
	if p.generalsFace() {
		return true
	}
	return p.IsAttacked(gen, side.Opposite())
}
