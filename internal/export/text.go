package export

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"xqboard/internal/history"
	"xqboard/internal/xiangqi"
)

type Encoding string

const (
	EncodingUTF8 Encoding = "utf-8"
	EncodingGBK  Encoding = "gbk"
)

var ErrUnknownEncoding = errors.New("unknown text encoding")

func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "gbk", "gb2312", "gb18030":
		return EncodingGBK, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
}

// WriteText 输出带编号的中文棋谱，每行一步："  1. 红 炮二平五  h2e2"
func WriteText(w io.Writer, records []history.Record, enc Encoding) error {
	var tw *transform.Writer
	switch enc {
	case EncodingUTF8, "":
	case EncodingGBK:
		tw = transform.NewWriter(w, simplifiedchinese.GBK.NewEncoder())
		w = tw
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}

	bw := bufio.NewWriter(w)
	for _, r := range records {
		label := xiangqi.Notation{Side: r.Mover}.Label()
		if _, err := fmt.Fprintf(bw, "%3d. %s %s  %s\n", r.Seq, label, r.Chinese, r.UCI); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if tw != nil {
		return tw.Close()
	}
	return nil
}

// ReadMoves 从 UTF-8 或 GBK 文本中取出所有 UCI 形状的着法
func ReadMoves(r io.Reader) ([]xiangqi.Move, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	var moves []xiangqi.Move
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r >= utf8.RuneSelf || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	for _, tok := range tokens {
		m, err := xiangqi.DecodeUCI(strings.ToLower(tok))
		if err != nil {
			continue
		}
		moves = append(moves, m)
	}
	return moves, nil
}

func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data), nil
	}
	reader := transform.NewReader(bytes.NewReader(data), simplifiedchinese.GBK.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(decoded) {
		return "", errors.New("failed to decode GBK text")
	}
	return string(decoded), nil
}
