package xiangqi

import "strconv"

var redNames = [numPieceTypes]string{
	PieceChariot:  "车",
	PieceHorse:    "马",
	PieceElephant: "相",
	PieceAdvisor:  "仕",
	PieceGeneral:  "帅",
	PieceCannon:   "炮",
	PieceSoldier:  "兵",
}

var blackNames = [numPieceTypes]string{
	PieceChariot:  "车",
	PieceHorse:    "马",
	PieceElephant: "象",
	PieceAdvisor:  "士",
	PieceGeneral:  "将",
	PieceCannon:   "炮",
	PieceSoldier:  "卒",
}

var chineseNumerals = [10]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// PieceName 返回棋子的中文名
func PieceName(pc Piece) string {
	pt := pc.Type()
	if pt <= PieceNone || int(pt) >= numPieceTypes {
		return ""
	}
	if pc.Side() == Black {
		return blackNames[pt]
	}
	return redNames[pt]
}

// ColumnLabel 红方从右往左用中文数字（a 线为九），黑方从左往右用阿拉伯数字（a 线为 1）
func ColumnLabel(side Side, file int) string {
	if file < 0 || file >= Files {
		return ""
	}
	if side == Black {
		return strconv.Itoa(file + 1)
	}
	return chineseNumerals[Files-file]
}

// Notation 中文记谱，Side 用于界面着色
type Notation struct {
	Side Side   `json:"side"`
	Text string `json:"text"`
}

func (n Notation) Label() string {
	if n.Side == Black {
		return "黑"
	}
	return "红"
}

func (n Notation) String() string { return n.Label() + n.Text }

// Notate 只依赖棋子和起止格，不看棋盘
func Notate(pc Piece, m Move) Notation {
	side := pc.Side()
	from, to := m.From, m.To
	text := PieceName(pc) + ColumnLabel(side, from.File())

	dr := to.Rank() - from.Rank()
	if dr == 0 {
		return Notation{Side: side, Text: text + "平" + ColumnLabel(side, to.File())}
	}

	// 红方 rank 增大为进，黑方相反
	if dr*soldierDir(side) > 0 {
		text += "进"
	} else {
		text += "退"
	}

	switch pc.Type() {
	case PieceHorse, PieceElephant, PieceAdvisor:
		text += ColumnLabel(side, to.File())
	default:
		if dr < 0 {
			dr = -dr
		}
		text += strconv.Itoa(dr)
	}
	return Notation{Side: side, Text: text}
}

// NotateMove 用走子前的局面取起点棋子
func (p *Position) NotateMove(m Move) (Notation, bool) {
	if !m.From.Valid() || !m.To.Valid() {
		return Notation{}, false
	}
	pc := p.Board.Squares[m.From]
	if pc == 0 {
		return Notation{}, false
	}
	return Notate(pc, m), true
}
