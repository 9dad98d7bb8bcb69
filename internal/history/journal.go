package history

import (
	"errors"
	"fmt"
)

var (
	ErrNavigationBoundary = errors.New("navigation boundary")

	ErrAtFirstMove    = fmt.Errorf("%w: already at first move", ErrNavigationBoundary)
	ErrAtLastMove     = fmt.Errorf("%w: already at last move", ErrNavigationBoundary)
	ErrStepOutOfRange = fmt.Errorf("%w: step out of range", ErrNavigationBoundary)
)

// Journal 线性棋谱：Records 是已走的所有步，Cursor 表示当前看到第几步。
// 0 <= Cursor <= len(Records)
type Journal struct {
	BaseFEN string   `json:"base_fen"`
	Records []Record `json:"records"`
	Cursor  int      `json:"cursor"`
}

func NewJournal(baseFEN string) *Journal {
	return &Journal{BaseFEN: baseFEN}
}

func (j *Journal) Len() int { return len(j.Records) }

func (j *Journal) AtTip() bool { return j.Cursor == len(j.Records) }

// Append 在当前位置之后追加一步；光标之后的分支被丢弃
func (j *Journal) Append(rec Record) Record {
	if j.Cursor < len(j.Records) {
		j.Records = j.Records[:j.Cursor:j.Cursor]
	}
	rec.Seq = len(j.Records) + 1
	j.Records = append(j.Records, rec)
	j.Cursor = len(j.Records)
	return rec
}

// Back 后退一步，可以退到开局（Cursor == 0）
func (j *Journal) Back() error {
	if j.Cursor <= 0 {
		return ErrAtFirstMove
	}
	j.Cursor--
	return nil
}

func (j *Journal) Forward() error {
	if j.Cursor >= len(j.Records) {
		return ErrAtLastMove
	}
	j.Cursor++
	return nil
}

// Seek 跳到第 n 步
func (j *Journal) Seek(n int) error {
	if n < 0 || n > len(j.Records) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrStepOutOfRange, n, len(j.Records))
	}
	j.Cursor = n
	return nil
}

// FENAt 第 n 步之后的局面；n == 0 时为起始局面
func (j *Journal) FENAt(n int) (string, error) {
	if n < 0 || n > len(j.Records) {
		return "", fmt.Errorf("%w: %d not in [0, %d]", ErrStepOutOfRange, n, len(j.Records))
	}
	if n == 0 {
		return j.BaseFEN, nil
	}
	return j.Records[n-1].FEN, nil
}

// CurrentFEN 光标处的局面
func (j *Journal) CurrentFEN() string {
	fen, _ := j.FENAt(j.Cursor)
	return fen
}

// Current 光标处最后一步，Cursor == 0 时没有
func (j *Journal) Current() (Record, bool) {
	if j.Cursor == 0 || j.Cursor > len(j.Records) {
		return Record{}, false
	}
	return j.Records[j.Cursor-1], true
}

// Visible 光标之前（含）的步
func (j *Journal) Visible() []Record {
	return j.Records[:j.Cursor]
}

func (j *Journal) Reset(baseFEN string) {
	j.BaseFEN = baseFEN
	j.Records = nil
	j.Cursor = 0
}

// Clamp 恢复持久化数据时把光标拉回合法范围，并重新编号
func (j *Journal) Clamp() {
	if j.Cursor < 0 {
		j.Cursor = 0
	}
	if j.Cursor > len(j.Records) {
		j.Cursor = len(j.Records)
	}
	for i := range j.Records {
		j.Records[i].Seq = i + 1
	}
}

// Repetitions 当前局面在可见历史里出现的次数（含当前）
func (j *Journal) Repetitions() int {
	cur := j.CurrentFEN()
	n := 0
	if j.BaseFEN == cur {
		n++
	}
	for _, r := range j.Visible() {
		if r.FEN == cur {
			n++
		}
	}
	return n
}

func (j *Journal) Clone() *Journal {
	nj := *j
	nj.Records = append([]Record(nil), j.Records...)
	return &nj
}
