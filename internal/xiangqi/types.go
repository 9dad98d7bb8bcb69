package xiangqi

import (
	"fmt"
	"strings"
)

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

func (s Side) Opposite() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

// FENToken 返回 FEN 里的走子方标记：红 w，黑 b
func (s Side) FENToken() string {
	if s == Black {
		return "b"
	}
	return "w"
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSide 接受 red/black、w/b 以及 红/黑
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "w", "r", "红":
		return Red, nil
	case "black", "b", "黑":
		return Black, nil
	case "none", "":
		return NoSide, nil
	}
	return NoSide, fmt.Errorf("unknown side %q", s)
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceChariot            // 车
	PieceHorse              // 马
	PieceElephant           // 相 / 象
	PieceAdvisor            // 仕 / 士
	PieceGeneral            // 帅 / 将
	PieceCannon             // 炮
	PieceSoldier            // 兵 / 卒
)

const numPieceTypes = 8

// 开局每方各兵种数量，也是任何合法局面的上限
var startingCount = [numPieceTypes]int{
	PieceChariot:  2,
	PieceHorse:    2,
	PieceElephant: 2,
	PieceAdvisor:  2,
	PieceGeneral:  1,
	PieceCannon:   2,
	PieceSoldier:  5,
}

type Piece int8 // 0=空；>0 红；<0 黑；abs=PieceType

const NoPiece Piece = 0

func MakePiece(side Side, pt PieceType) Piece {
	if pt == PieceNone || side == NoSide {
		return NoPiece
	}
	if side == Red {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return Red
	}
	return Black
}

func (p Piece) IsEmpty() bool { return p == NoPiece }

type Board struct {
	Squares [NumSquares]Piece
}

// Square = rank*Files + file，rank 0 是红方底线
type Square int

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Position = 棋盘 + 轮到谁走
type Position struct {
	Board      Board
	SideToMove Side
	Hash       uint64
}
