package xiangqi

import (
	"fmt"
	"strings"
	"unicode"
)

// EncodeFEN 从黑方底线（rank 9）写到红方底线（rank 0），空位用数字压缩；空格后 w/b 表示走子方
func (p *Position) EncodeFEN() string {
	var sb strings.Builder
	for r := Ranks - 1; r >= 0; r-- {
		if r < Ranks-1 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < Files; f++ {
			pc := p.Board.Squares[squareAt(f, r)]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.SideToMove.FENToken())
	return sb.String()
}

func (p *Position) String() string { return p.EncodeFEN() }

// DecodeFEN 解析局面。缺少走子方时默认红方；其后的 "- - 0 1" 之类字段忽略。
func DecodeFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrMalformedFEN)
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != Ranks {
		return nil, fmt.Errorf("%w: want %d ranks, got %d", ErrMalformedFEN, Ranks, len(ranks))
	}

	var b Board
	for i, row := range ranks {
		r := Ranks - 1 - i
		f := 0
		for _, ch := range row {
			if ch >= '1' && ch <= '9' {
				f += int(ch - '0')
				if f > Files {
					return nil, fmt.Errorf("%w: rank %d overflows", ErrMalformedFEN, r)
				}
				continue
			}
			if f >= Files {
				return nil, fmt.Errorf("%w: rank %d overflows", ErrMalformedFEN, r)
			}
			pt, ok := letterToPieceType[unicode.ToLower(ch)]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrMalformedFEN, ch)
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = Red
			}
			b.Squares[squareAt(f, r)] = MakePiece(side, pt)
			f++
		}
		if f != Files {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrMalformedFEN, r, f)
		}
	}

	stm := Red
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "w", "r":
			stm = Red
		case "b":
			stm = Black
		default:
			return nil, fmt.Errorf("%w: side token %q", ErrMalformedFEN, fields[1])
		}
	}

	pos := &Position{Board: b, SideToMove: stm}
	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFEN, err)
	}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}
