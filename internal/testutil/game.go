package testutil

import (
	"testing"

	"xqboard/internal/xiangqi"
)

// MustFEN decodes fen and calls t.Fatal on failure.
func MustFEN(t *testing.T, fen string) *xiangqi.Position {
	t.Helper()
	pos, err := xiangqi.DecodeFEN(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	return pos
}

// MustUCI decodes a move and calls t.Fatal on failure.
func MustUCI(t *testing.T, s string) xiangqi.Move {
	t.Helper()
	m, err := xiangqi.DecodeUCI(s)
	if err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return m
}

// PlayUCI applies moves in order under standard rules and returns the final position.
func PlayUCI(t *testing.T, pos *xiangqi.Position, moves ...string) *xiangqi.Position {
	t.Helper()
	for _, s := range moves {
		m := MustUCI(t, s)
		if err := pos.CheckMove(m, xiangqi.RulesStandard); err != nil {
			t.Fatalf("play %s on %s: %v", s, pos.EncodeFEN(), err)
		}
		next, ok := pos.ApplyMove(m)
		if !ok {
			t.Fatalf("apply %s failed", s)
		}
		pos = next
	}
	return pos
}
