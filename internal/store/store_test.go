package store

import (
	"os"
	"path/filepath"
	"testing"

	"xqboard/internal/testutil"
)

type sample struct {
	Cursor int      `json:"cursor"`
	Moves  []string `json:"moves"`
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { fs.Close() })
	return map[string]Store{"file": fs, "mem": NewMemStore()}
}

func TestPutGetDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var got sample
			ok, err := s.Get("g1/moveList", &got)
			testutil.AssertNoError(t, err)
			testutil.AssertFalse(t, ok, "missing key")

			want := sample{Cursor: 2, Moves: []string{"h2e2", "h9g7"}}
			testutil.AssertNoError(t, s.Put("g1/moveList", want))
			// 重复写入结果相同
			testutil.AssertNoError(t, s.Put("g1/moveList", want))

			ok, err = s.Get("g1/moveList", &got)
			testutil.AssertNoError(t, err)
			testutil.AssertTrue(t, ok)
			testutil.AssertEqual(t, got, want)

			testutil.AssertNoError(t, s.Delete("g1/moveList"))
			testutil.AssertNoError(t, s.Delete("g1/moveList"))
			ok, err = s.Get("g1/moveList", &got)
			testutil.AssertNoError(t, err)
			testutil.AssertFalse(t, ok)
		})
	}
}

func TestInvalidKeys(t *testing.T) {
	for name, s := range stores(t) {
		for _, key := range []string{"", "../x", "a//b", "a/./b", `a\b`} {
			err := s.Put(key, 1)
			testutil.AssertErrorIs(t, err, ErrInvalidKey, "%s %q", name, key)
		}
	}
}

func TestFileStoreCompressesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer fs.Close()

	testutil.AssertNoError(t, fs.Put("abc/currentStep", 7))

	raw, err := os.ReadFile(filepath.Join(dir, "abc", "currentStep"+fileExt))
	testutil.AssertNoError(t, err)
	// zstd 帧头
	testutil.AssertEqual(t, raw[:4], []byte{0x28, 0xb5, 0x2f, 0xfd})

	_, err = os.Stat(filepath.Join(dir, "abc", "currentStep"+fileExt+".tmp"))
	testutil.AssertTrue(t, os.IsNotExist(err))

	keys, err := fs.Keys("")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, keys, []string{"abc"})
	keys, err = fs.Keys("abc")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, keys, []string{"currentStep"})
}
