package xiangqi

import (
	"fmt"
	"unicode"
)

const (
	Files      = 9
	Ranks      = 10
	NumSquares = Files * Ranks

	// 河界：红方 0..4，黑方 5..9
	RiverRank = 5
)

const InitialFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"

func NewSquare(file, rank int) Square {
	if !onBoard(file, rank) {
		panic(fmt.Errorf("%w: file=%d rank=%d", ErrInvalidSquare, file, rank))
	}
	return Square(rank*Files + file)
}

func (sq Square) File() int   { return int(sq) % Files }
func (sq Square) Rank() int   { return int(sq) / Files }
func (sq Square) Valid() bool { return sq >= 0 && int(sq) < NumSquares }

func (sq Square) String() string {
	if !sq.Valid() {
		return "??"
	}
	return string([]byte{byte('a' + sq.File()), byte('0' + sq.Rank())})
}

func squareAt(file, rank int) Square { return Square(rank*Files + file) }

func onBoard(file, rank int) bool {
	return file >= 0 && file < Files && rank >= 0 && rank < Ranks
}

// 兵的前进方向：红向上(+1)，黑向下(-1)
func soldierDir(side Side) int {
	switch side {
	case Red:
		return +1
	case Black:
		return -1
	}
	return 0
}

// 是否已经过河
func crossedRiver(side Side, rank int) bool {
	switch side {
	case Red:
		return rank >= RiverRank
	case Black:
		return rank < RiverRank
	}
	return false
}

// 相/象只能在本方半场
func inOwnHalf(side Side, rank int) bool {
	switch side {
	case Red:
		return rank < RiverRank
	case Black:
		return rank >= RiverRank
	}
	return false
}

// 是否在九宫
func inPalace(side Side, file, rank int) bool {
	if file < 3 || file > 5 {
		return false
	}
	switch side {
	case Red:
		return rank >= 0 && rank <= 2
	case Black:
		return rank >= 7 && rank <= 9
	}
	return false
}

var letterToPieceType = map[rune]PieceType{
	'r': PieceChariot,  // 车
	'n': PieceHorse,    // 马
	'h': PieceHorse,    // 马（部分软件用 h）
	'b': PieceElephant, // 相 / 象
	'e': PieceElephant, // 相 / 象（部分软件用 e）
	'a': PieceAdvisor,  // 仕 / 士
	'k': PieceGeneral,  // 帅 / 将
	'c': PieceCannon,   // 炮
	'p': PieceSoldier,  // 兵 / 卒
}

var pieceTypeToLetter = [numPieceTypes]rune{
	PieceChariot:  'r',
	PieceHorse:    'n',
	PieceElephant: 'b',
	PieceAdvisor:  'a',
	PieceGeneral:  'k',
	PieceCannon:   'c',
	PieceSoldier:  'p',
}

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	pt := p.Type()
	if pt <= PieceNone || int(pt) >= numPieceTypes {
		return '.'
	}
	base := pieceTypeToLetter[pt]
	if p.Side() == Red {
		return unicode.ToUpper(base)
	}
	return base
}

func NewInitialPosition() *Position {
	pos, err := DecodeFEN(InitialFEN)
	if err != nil {
		panic("initial FEN: " + err.Error())
	}
	return pos
}

// Get 越界属于调用方的编程错误，直接 panic
func (p *Position) Get(sq Square) Piece {
	if !sq.Valid() {
		panic(fmt.Errorf("%w: %d", ErrInvalidSquare, int(sq)))
	}
	return p.Board.Squares[sq]
}

// Set 放置或清空一个格子，同时维护 Hash
func (p *Position) Set(sq Square, pc Piece) {
	if !sq.Valid() {
		panic(fmt.Errorf("%w: %d", ErrInvalidSquare, int(sq)))
	}
	h := p.EnsureHash()
	h ^= pieceHashKey(p.Board.Squares[sq], sq)
	h ^= pieceHashKey(pc, sq)
	p.Board.Squares[sq] = pc
	p.Hash = h
}

func (p *Position) Clone() *Position {
	np := *p
	return &np
}

// Equal 比较棋盘与走子方，不比较 Hash 缓存
func (p *Position) Equal(o *Position) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Board == o.Board && p.SideToMove == o.SideToMove
}

// CountPieces 返回 [side][PieceType] 的数量
func (p *Position) CountPieces() [2][numPieceTypes]int {
	var n [2][numPieceTypes]int
	for _, pc := range p.Board.Squares {
		if pc == 0 {
			continue
		}
		n[pc.Side()][pc.Type()]++
	}
	return n
}

// Validate 检查子力数量不超过开局数量（帅/将最多一个，可以缺失表示已被吃）
func (p *Position) Validate() error {
	counts := p.CountPieces()
	for side := Red; side <= Black; side++ {
		for pt := PieceChariot; int(pt) < numPieceTypes; pt++ {
			if counts[side][pt] > startingCount[pt] {
				return fmt.Errorf("%s has %d %c, max %d",
					side, counts[side][pt], pieceTypeToLetter[pt], startingCount[pt])
			}
		}
	}
	return nil
}

func (p *Position) GeneralSquare(side Side) (Square, bool) {
	want := MakePiece(side, PieceGeneral)
	for sq, pc := range p.Board.Squares {
		if pc == want {
			return Square(sq), true
		}
	}
	return -1, false
}

func (p *Position) GeneralExists(side Side) bool {
	_, ok := p.GeneralSquare(side)
	return ok
}
