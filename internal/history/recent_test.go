package history

import (
	"fmt"
	"testing"

	"xqboard/internal/testutil"
)

func TestRecentNewestFirstAndDedupe(t *testing.T) {
	r := NewRecent(0)
	testutil.AssertEqual(t, r.Limit, DefaultRecentLimit)

	testutil.AssertTrue(t, r.Push(Entry{FEN: "a"}))
	testutil.AssertTrue(t, r.Push(Entry{FEN: "b"}))
	testutil.AssertFalse(t, r.Push(Entry{FEN: "b"}), "same as newest")
	testutil.AssertTrue(t, r.Push(Entry{FEN: "a"}), "only the newest entry is compared")

	var fens []string
	for _, e := range r.Entries {
		fens = append(fens, e.FEN)
	}
	testutil.AssertEqual(t, fens, []string{"a", "b", "a"})
}

func TestRecentEvictsOldest(t *testing.T) {
	r := NewRecent(DefaultRecentLimit)
	for i := 0; i < 25; i++ {
		r.Push(Entry{FEN: fmt.Sprintf("f%d", i)})
	}
	testutil.AssertEqual(t, r.Len(), 20)
	testutil.AssertEqual(t, r.Entries[0].FEN, "f24")
	testutil.AssertEqual(t, r.Entries[19].FEN, "f5")
}

func TestArchiveEmpty(t *testing.T) {
	var a *Archive
	testutil.AssertTrue(t, a.Empty())
	testutil.AssertTrue(t, (&Archive{}).Empty())
	testutil.AssertFalse(t, (&Archive{Records: []Record{{}}}).Empty())
}
