package history

import (
	"errors"
	"fmt"
	"testing"

	"xqboard/internal/testutil"
	"xqboard/internal/xiangqi"
)

func fillJournal(n int) *Journal {
	j := NewJournal(xiangqi.InitialFEN)
	for i := 1; i <= n; i++ {
		j.Append(Record{UCI: fmt.Sprintf("m%d", i), FEN: fmt.Sprintf("fen%d", i)})
	}
	return j
}

func TestAppendAdvancesCursor(t *testing.T) {
	j := fillJournal(3)
	testutil.AssertEqual(t, j.Len(), 3)
	testutil.AssertEqual(t, j.Cursor, 3)
	for i, r := range j.Records {
		testutil.AssertEqual(t, r.Seq, i+1)
	}
	testutil.AssertEqual(t, j.CurrentFEN(), "fen3")
}

func TestBranchTruncation(t *testing.T) {
	j := fillJournal(5)
	testutil.AssertNoError(t, j.Back())
	testutil.AssertNoError(t, j.Back())
	testutil.AssertEqual(t, j.Cursor, 3)

	rec := j.Append(Record{UCI: "new", FEN: "fen-new"})
	testutil.AssertEqual(t, rec.Seq, 4)
	testutil.AssertEqual(t, j.Len(), 4)
	testutil.AssertEqual(t, j.Cursor, 4)
	testutil.AssertEqual(t, j.Records[3].UCI, "new")

	_, err := j.FENAt(5)
	testutil.AssertErrorIs(t, err, ErrStepOutOfRange)
}

func TestBackToBaseAndBoundary(t *testing.T) {
	j := fillJournal(1)
	testutil.AssertNoError(t, j.Back())
	testutil.AssertEqual(t, j.Cursor, 0)
	testutil.AssertEqual(t, j.CurrentFEN(), xiangqi.InitialFEN)

	err := j.Back()
	testutil.AssertErrorIs(t, err, ErrAtFirstMove)
	testutil.AssertErrorIs(t, err, ErrNavigationBoundary)
	testutil.AssertEqual(t, j.Cursor, 0, "failed Back must not move cursor")
}

func TestForwardBoundary(t *testing.T) {
	j := fillJournal(2)
	err := j.Forward()
	testutil.AssertErrorIs(t, err, ErrAtLastMove)
	testutil.AssertEqual(t, j.Cursor, 2)

	testutil.AssertNoError(t, j.Seek(0))
	testutil.AssertNoError(t, j.Forward())
	testutil.AssertEqual(t, j.CurrentFEN(), "fen1")
}

func TestSeek(t *testing.T) {
	j := fillJournal(4)
	for _, n := range []int{-1, 5} {
		err := j.Seek(n)
		if !errors.Is(err, ErrNavigationBoundary) {
			t.Fatalf("Seek(%d) = %v, want boundary error", n, err)
		}
		testutil.AssertEqual(t, j.Cursor, 4)
	}
	testutil.AssertNoError(t, j.Seek(2))
	testutil.AssertEqual(t, len(j.Visible()), 2)
	rec, ok := j.Current()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, rec.UCI, "m2")
}

func TestCursorInvariantUnderRandomOps(t *testing.T) {
	j := NewJournal(xiangqi.InitialFEN)
	for i := 0; i < 200; i++ {
		switch i % 5 {
		case 0, 3:
			j.Append(Record{FEN: fmt.Sprintf("f%d", i)})
		case 1:
			_ = j.Back()
		case 2:
			_ = j.Back()
			_ = j.Back()
		case 4:
			_ = j.Forward()
		}
		if j.Cursor < 0 || j.Cursor > j.Len() {
			t.Fatalf("cursor %d outside [0, %d] after op %d", j.Cursor, j.Len(), i)
		}
	}
}

func TestClamp(t *testing.T) {
	j := &Journal{BaseFEN: xiangqi.InitialFEN, Records: []Record{{FEN: "a"}, {FEN: "b"}}, Cursor: 7}
	j.Clamp()
	testutil.AssertEqual(t, j.Cursor, 2)
	testutil.AssertEqual(t, j.Records[1].Seq, 2)

	j.Cursor = -3
	j.Clamp()
	testutil.AssertEqual(t, j.Cursor, 0)
}

func TestRepetitions(t *testing.T) {
	j := NewJournal("base")
	j.Append(Record{FEN: "x"})
	j.Append(Record{FEN: "base"})
	j.Append(Record{FEN: "x"})
	testutil.AssertEqual(t, j.Repetitions(), 2)
	testutil.AssertNoError(t, j.Seek(2))
	testutil.AssertEqual(t, j.Repetitions(), 2)
}

func TestRecordKind(t *testing.T) {
	testutil.AssertEqual(t, Record{Capture: true, Check: true}.Kind(), "将军")
	testutil.AssertEqual(t, Record{Capture: true}.Kind(), "吃子")
	testutil.AssertEqual(t, Record{}.Kind(), "普通")
}
