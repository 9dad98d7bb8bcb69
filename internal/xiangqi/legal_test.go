package xiangqi_test

import (
	"errors"
	"testing"

	"xqboard/internal/testutil"
	"xqboard/internal/xiangqi"
)

func TestCheckMove(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		move   string
		reason string // 空表示合法
	}{
		{"soldier forward", xiangqi.InitialFEN, "e3e4", ""},
		{"soldier sideways before river", xiangqi.InitialFEN, "e3d3", xiangqi.ReasonPieceRule},
		{"soldier backward", "3k5/9/9/9/4P4/9/9/9/9/4K4 w", "e5e4", xiangqi.ReasonPieceRule},
		{"soldier sideways after river", "3k5/9/9/9/4P4/9/9/9/9/4K4 w", "e5d5", ""},
		{"central cannon", xiangqi.InitialFEN, "h2e2", ""},
		{"cannon capture over screen", xiangqi.InitialFEN, "h2h9", ""},
		{"cannon capture without screen", xiangqi.InitialFEN, "h2h7", xiangqi.ReasonPieceRule},
		{"cannon moves past piece", xiangqi.InitialFEN, "h2h8", xiangqi.ReasonPieceRule},
		{"horse", xiangqi.InitialFEN, "b0c2", ""},
		{"hobbled horse", xiangqi.InitialFEN, "b0d1", xiangqi.ReasonPieceRule},
		{"horse not L", xiangqi.InitialFEN, "b0b1", xiangqi.ReasonPieceRule},
		{"horse onto own cannon", xiangqi.InitialFEN, "b0b2", xiangqi.ReasonOwnPiece},
		{"elephant", xiangqi.InitialFEN, "c0e2", ""},
		{"blocked elephant eye", "3k5/9/9/9/9/9/9/9/3P5/2B1K4 w", "c0e2", xiangqi.ReasonPieceRule},
		{"elephant free side", "3k5/9/9/9/9/9/9/9/3P5/2B1K4 w", "c0a2", ""},
		{"elephant crossing river", "3k5/9/9/9/9/2B6/9/9/9/4K4 w", "c4e6", xiangqi.ReasonPieceRule},
		{"advisor", xiangqi.InitialFEN, "d0e1", ""},
		{"advisor to center", "5k3/9/9/9/9/9/9/5A3/9/3K5 w", "f2e1", ""},
		{"advisor leaves palace", "5k3/9/9/9/9/9/9/5A3/9/3K5 w", "f2g3", xiangqi.ReasonPieceRule},
		{"advisor straight", "5k3/9/9/9/9/9/9/5A3/9/3K5 w", "f2f1", xiangqi.ReasonPieceRule},
		{"general step", xiangqi.InitialFEN, "e0e1", ""},
		{"general leaves palace", "5k3/9/9/9/9/9/9/9/9/3K5 w", "d0c0", xiangqi.ReasonPieceRule},
		{"generals facing", "4k4/9/9/9/9/9/9/9/9/3K5 w", "d0e0", xiangqi.ReasonLeavesInCheck},
		{"flying general capture", "4k4/9/9/9/9/9/9/9/9/4K4 w", "e0e9", ""},
		{"chariot blocked", xiangqi.InitialFEN, "a0a4", xiangqi.ReasonPieceRule},
		{"chariot open file", xiangqi.InitialFEN, "a0a2", ""},
		{"pinned chariot", "3k5/4r4/9/9/9/9/9/9/4R4/4K4 w", "e1d1", xiangqi.ReasonLeavesInCheck},
		{"pinned chariot captures", "3k5/4r4/9/9/9/9/9/9/4R4/4K4 w", "e1e8", ""},
		{"not your turn", xiangqi.InitialFEN, "h7e7", xiangqi.ReasonNotYourTurn},
		{"own piece", xiangqi.InitialFEN, "a0b0", xiangqi.ReasonOwnPiece},
		{"no piece", xiangqi.InitialFEN, "e4e5", xiangqi.ReasonNoPiece},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := testutil.MustFEN(t, tt.fen)
			before := pos.EncodeFEN()
			err := pos.CheckMove(testutil.MustUCI(t, tt.move), xiangqi.RulesStandard)
			testutil.AssertEqual(t, pos.EncodeFEN(), before, "position must not change")
			if tt.reason == "" {
				testutil.AssertNoError(t, err)
				testutil.AssertTrue(t, pos.IsLegal(testutil.MustUCI(t, tt.move)))
				return
			}
			var me *xiangqi.MoveError
			if !errors.As(err, &me) {
				t.Fatalf("want MoveError, got %v", err)
			}
			testutil.AssertEqual(t, me.Reason, tt.reason)
			testutil.AssertErrorIs(t, err, xiangqi.ErrIllegalMove)
		})
	}
}

func TestLenientRules(t *testing.T) {
	pos := xiangqi.NewInitialPosition()
	tests := []struct {
		move  string
		legal bool
	}{
		{"h7e7", true},  // 不检查轮次
		{"b0d1", true},  // 不检查马腿
		{"a0a4", true},  // 不检查挡子
		{"e3d3", false}, // 兵仍按规则
		{"a0b0", false},
	}
	for _, tt := range tests {
		err := pos.CheckMove(testutil.MustUCI(t, tt.move), xiangqi.RulesLenient)
		testutil.AssertEqual(t, err == nil, tt.legal, tt.move)
	}
}

func TestEndToEndCentralCannon(t *testing.T) {
	pos := testutil.PlayUCI(t, xiangqi.NewInitialPosition(), "h2e2")
	testutil.AssertEqual(t, pos.SideToMove, xiangqi.Black)
	testutil.AssertEqual(t, pos.EncodeFEN(), "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C2C4/9/RNBAKABNR b")
}

func TestIsInCheck(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"initial", xiangqi.InitialFEN, false},
		{"chariot on file", "3k5/9/9/9/4r4/9/9/9/9/4K4 w", true},
		{"horse", "3k5/9/9/9/9/9/9/3n5/9/4K4 w", true},
		{"hobbled horse", "3k5/9/9/9/9/9/9/3n5/3A5/4K4 w", false},
		{"cannon with screen", "3k5/9/9/9/4c4/9/4P4/9/9/4K4 w", true},
		{"cannon without screen", "3k5/9/9/9/4c4/9/9/9/9/4K4 w", false},
		{"soldier ahead", "3k5/9/9/9/9/9/9/9/4p4/4K4 w", true},
		{"soldier beside", "3k5/9/9/9/9/9/9/9/9/3pK4 w", true},
		{"facing generals", "4k4/9/9/9/9/9/9/9/9/4K4 w", true},
		{"no general", "3k5/9/9/9/9/9/9/9/9/9 w", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := testutil.MustFEN(t, tt.fen)
			testutil.AssertEqual(t, pos.IsInCheck(xiangqi.Red), tt.want)
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want xiangqi.Status
	}{
		{"initial", xiangqi.InitialFEN, xiangqi.StatusOngoing},
		{"checkmate", "4k4/4R4/4R1N2/9/9/9/9/9/9/3K5 b", xiangqi.StatusCheckmate},
		{"stalemate", "3k5/R8/9/9/9/9/9/9/9/4K4 b", xiangqi.StatusStalemate},
		{"general captured", "9/9/9/9/9/9/9/9/9/4K4 b", xiangqi.StatusNoGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, testutil.MustFEN(t, tt.fen).Status(), tt.want)
		})
	}
}

func TestInitialMoveCount(t *testing.T) {
	// 开局红方共 44 种走法
	testutil.AssertEqual(t, len(xiangqi.NewInitialPosition().GenerateLegalMoves()), 44)
}

func TestApplyMoveDoesNotMutate(t *testing.T) {
	pos := xiangqi.NewInitialPosition()
	next, ok := pos.ApplyMove(testutil.MustUCI(t, "h2e2"))
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, pos.EncodeFEN(), xiangqi.InitialFEN)
	testutil.AssertEqual(t, next.SideToMove, xiangqi.Black)

	_, ok = pos.ApplyMove(testutil.MustUCI(t, "e4e5"))
	testutil.AssertFalse(t, ok, "empty origin")
}
