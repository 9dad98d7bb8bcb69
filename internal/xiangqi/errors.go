package xiangqi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSquare is the panic value for out-of-range squares.
	ErrInvalidSquare = errors.New("invalid square")

	ErrMalformedFEN = errors.New("malformed FEN")
	ErrMalformedUCI = errors.New("malformed UCI move")
	ErrIllegalMove  = errors.New("illegal move")
)

// MoveError describes why a move was rejected. It unwraps to ErrIllegalMove.
type MoveError struct {
	Move   Move
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrIllegalMove, EncodeUCI(e.Move), e.Reason)
}

func (e *MoveError) Unwrap() error { return ErrIllegalMove }

func illegal(m Move, reason string) error {
	return &MoveError{Move: m, Reason: reason}
}
