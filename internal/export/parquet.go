// Package export writes finished games to Parquet archives and plain-text
// move lists, and reads UCI move lists back.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"xqboard/internal/history"
	"xqboard/internal/xiangqi"
)

// MoveRow 一步棋在 Parquet 中的一行
type MoveRow struct {
	GameID  string `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Seq     int32  `parquet:"name=seq, type=INT32"`
	UCI     string `parquet:"name=uci, type=BYTE_ARRAY, convertedtype=UTF8"`
	Chinese string `parquet:"name=chinese, type=BYTE_ARRAY, convertedtype=UTF8"`
	FEN     string `parquet:"name=fen, type=BYTE_ARRAY, convertedtype=UTF8"`
	Mover   string `parquet:"name=mover, type=BYTE_ARRAY, convertedtype=UTF8"`
	Capture bool   `parquet:"name=capture, type=BOOLEAN"`
	Check   bool   `parquet:"name=check, type=BOOLEAN"`
	AtMs    int64  `parquet:"name=at_ms, type=INT64"`
}

func rowOf(gameID string, r history.Record) MoveRow {
	var at int64
	if !r.At.IsZero() {
		at = r.At.UnixMilli()
	}
	return MoveRow{
		GameID:  gameID,
		Seq:     int32(r.Seq),
		UCI:     r.UCI,
		Chinese: r.Chinese,
		FEN:     r.FEN,
		Mover:   r.Mover.String(),
		Capture: r.Capture,
		Check:   r.Check,
		AtMs:    at,
	}
}

func (row MoveRow) Record() history.Record {
	mover, err := xiangqi.ParseSide(row.Mover)
	if err != nil {
		mover = xiangqi.NoSide
	}
	var at time.Time
	if row.AtMs != 0 {
		at = time.UnixMilli(row.AtMs).UTC()
	}
	return history.Record{
		Seq:     int(row.Seq),
		UCI:     row.UCI,
		Chinese: row.Chinese,
		FEN:     row.FEN,
		Mover:   mover,
		Capture: row.Capture,
		Check:   row.Check,
		At:      at,
	}
}

// WriteParquet 把一局棋写成 Parquet 文件（SNAPPY 压缩）
func WriteParquet(path, gameID string, records []history.Record) error {
	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer fileWriter.Close()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(MoveRow), 1)
	if err != nil {
		return err
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, r := range records {
		if err := parquetWriter.Write(rowOf(gameID, r)); err != nil {
			return err
		}
	}
	if err := parquetWriter.WriteStop(); err != nil {
		return err
	}
	return fileWriter.Close()
}

// ReadParquet 读回 WriteParquet 写出的文件
func ReadParquet(path string) ([]MoveRow, error) {
	absPath := path
	if resolved, err := filepath.Abs(path); err == nil {
		absPath = resolved
	}
	fileReader, err := local.NewLocalFileReader(absPath)
	if err != nil {
		return nil, err
	}
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(MoveRow), 1)
	if err != nil {
		return nil, err
	}
	defer parquetReader.ReadStop()

	num := int(parquetReader.GetNumRows())
	rows := make([]MoveRow, 0, num)
	batchSize := 1024
	for offset := 0; offset < num; offset += batchSize {
		remain := num - offset
		if remain < batchSize {
			batchSize = remain
		}
		batch := make([]MoveRow, batchSize)
		if err := parquetReader.Read(&batch); err != nil {
			return nil, err
		}
		rows = append(rows, batch...)
	}
	return rows, nil
}
