package xiangqi

import (
	"fmt"
	"strings"
)

// EncodeUCI 形如 "h2e2"：起点列行 + 终点列行
func EncodeUCI(m Move) string {
	return m.From.String() + m.To.String()
}

func (m Move) String() string { return EncodeUCI(m) }

func DecodeUCI(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedUCI, s)
	}
	from, ok := parseSquare(s[0], s[1])
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedUCI, s)
	}
	to, ok := parseSquare(s[2], s[3])
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedUCI, s)
	}
	return Move{From: from, To: to}, nil
}

// ParseSquare 解析 "e3" 这样的坐标
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return -1, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	sq, ok := parseSquare(s[0], s[1])
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

func parseSquare(fc, rc byte) (Square, bool) {
	if fc < 'a' || fc > 'i' || rc < '0' || rc > '9' {
		return -1, false
	}
	return squareAt(int(fc-'a'), int(rc-'0')), true
}

// LooksLikeUCI 只检查形状，不检查走法
func LooksLikeUCI(s string) bool {
	_, err := DecodeUCI(s)
	return err == nil
}
