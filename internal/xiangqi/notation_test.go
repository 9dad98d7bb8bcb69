package xiangqi_test

import (
	"testing"

	"xqboard/internal/testutil"
	"xqboard/internal/xiangqi"
)

func TestNotate(t *testing.T) {
	tests := []struct {
		fen  string
		move string
		want string
	}{
		{xiangqi.InitialFEN, "a0a1", "车九进1"},
		{xiangqi.InitialFEN, "h2e2", "炮二平五"},
		{xiangqi.InitialFEN, "b0c2", "马八进七"},
		{xiangqi.InitialFEN, "c0e2", "相七进五"},
		{xiangqi.InitialFEN, "f0e1", "仕四进五"},
		{xiangqi.InitialFEN, "e3e4", "兵五进1"},
		{xiangqi.InitialFEN, "e0e1", "帅五进1"},
		{"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C2C4/9/RNBAKABNR b", "h7e7", "炮8平5"},
		{"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C2C4/9/RNBAKABNR b", "h9g7", "马8进7"},
		{"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C2C4/9/RNBAKABNR b", "c6c5", "卒3进1"},
		{"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C2C4/9/RNBAKABNR b", "c9e7", "象3进5"},
		{"3k5/9/9/9/4R4/9/9/9/9/4K4 w", "e5e3", "车五退2"},
		{"3k5/9/9/9/9/4r4/9/9/9/4K4 b", "e4e8", "车5退4"},
	}
	for _, tt := range tests {
		t.Run(tt.move, func(t *testing.T) {
			pos := testutil.MustFEN(t, tt.fen)
			m := testutil.MustUCI(t, tt.move)
			n, ok := pos.NotateMove(m)
			testutil.AssertTrue(t, ok)
			testutil.AssertEqual(t, n.Text, tt.want)
			testutil.AssertEqual(t, n.Side, pos.Get(m.From).Side())
		})
	}
}

func TestNotationLabel(t *testing.T) {
	red := xiangqi.Notate(xiangqi.MakePiece(xiangqi.Red, xiangqi.PieceChariot), testutil.MustUCI(t, "a0a1"))
	testutil.AssertEqual(t, red.String(), "红车九进1")

	black := xiangqi.Notate(xiangqi.MakePiece(xiangqi.Black, xiangqi.PieceChariot), testutil.MustUCI(t, "a9a8"))
	testutil.AssertEqual(t, black.Label(), "黑")
	testutil.AssertEqual(t, black.Text, "车1进1")
}

func TestColumnLabel(t *testing.T) {
	tests := []struct {
		side xiangqi.Side
		file int
		want string
	}{
		{xiangqi.Red, 0, "九"},
		{xiangqi.Red, 4, "五"},
		{xiangqi.Red, 8, "一"},
		{xiangqi.Black, 0, "1"},
		{xiangqi.Black, 8, "9"},
		{xiangqi.Red, 9, ""},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, xiangqi.ColumnLabel(tt.side, tt.file), tt.want)
	}
}

func TestNotateMoveEmptyOrigin(t *testing.T) {
	_, ok := xiangqi.NewInitialPosition().NotateMove(testutil.MustUCI(t, "e4e5"))
	testutil.AssertFalse(t, ok)
}
