package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"xqboard/internal/analysis"
	"xqboard/internal/export"
	"xqboard/internal/session"
	"xqboard/internal/xiangqi"
)

const helpText = `命令:
  new                      新对局（当前对局归档）
  fen <FEN> [keep]         设置局面，keep 保留棋谱
  mv <uci> [<uci>...]      走棋，例如 mv h2e2 h9g7
  back | forward           后退 / 前进一步
  goto <n>                 跳到第 n 步，0 为起始局面
  state                    显示棋盘
  history                  显示棋谱与最近局面
  export <path> [text|parquet] [utf-8|gbk]
  load <path>              从文本文件读入 UCI 着法并依次走出
  analyze [cloud|engine] [play]
  quit`

type repl struct {
	s        *session.Session
	analyzer analysis.Analyzer
	in       *bufio.Scanner
	out      io.Writer
}

func newREPL(s *session.Session, in io.Reader, out io.Writer) *repl {
	return &repl{s: s, in: bufio.NewScanner(in), out: out}
}

func (r *repl) run() {
	r.printBoard()
	for {
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			return
		}
		args := strings.Fields(r.in.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return
		}
		if err := r.exec(args[0], args[1:]); err != nil {
			fmt.Fprintln(r.out, "错误:", err)
		}
	}
}

func (r *repl) exec(cmd string, args []string) error {
	switch cmd {
	case "help", "?":
		fmt.Fprintln(r.out, helpText)
	case "new":
		return r.dispatch(session.NewGame{})
	case "fen":
		if len(args) == 0 {
			return fmt.Errorf("usage: fen <FEN> [keep]")
		}
		keep := args[len(args)-1] == "keep"
		if keep {
			args = args[:len(args)-1]
		}
		return r.dispatch(session.SetFEN{FEN: strings.Join(args, " "), KeepHistory: keep})
	case "mv", "move":
		if len(args) == 0 {
			return fmt.Errorf("usage: mv <uci>")
		}
		for _, a := range args {
			if err := r.dispatch(session.ApplyMove{UCI: a}); err != nil {
				return err
			}
		}
	case "back":
		return r.dispatch(session.StepBack{})
	case "forward":
		return r.dispatch(session.StepForward{})
	case "goto":
		if len(args) != 1 {
			return fmt.Errorf("usage: goto <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return r.dispatch(session.StepTo{N: n})
	case "state":
		r.printBoard()
	case "history":
		r.printHistory()
	case "export":
		return r.export(args)
	case "load":
		return r.load(args)
	case "analyze":
		return r.analyze(args)
	default:
		return fmt.Errorf("unknown command %q (help)", cmd)
	}
	return nil
}

func (r *repl) dispatch(cmd session.Command) error {
	eff, err := r.s.Dispatch(cmd)
	if err != nil {
		return err
	}
	if eff.Notice != "" {
		fmt.Fprintln(r.out, eff.Notice)
	}
	r.printBoard()
	return nil
}

func (r *repl) printBoard() {
	pos := r.s.Position()
	for rank := xiangqi.Ranks - 1; rank >= 0; rank-- {
		fmt.Fprintf(r.out, "%d ", rank)
		for file := 0; file < xiangqi.Files; file++ {
			pc := pos.Get(xiangqi.NewSquare(file, rank))
			if pc.IsEmpty() {
				fmt.Fprint(r.out, "・")
			} else {
				fmt.Fprint(r.out, xiangqi.PieceName(pc))
			}
		}
		fmt.Fprintln(r.out)
		if rank == xiangqi.RiverRank {
			fmt.Fprintln(r.out, "  ～～～～～～～～～")
		}
	}
	fmt.Fprintln(r.out, "  a b c d e f g h i")
	st := r.s.State()
	fmt.Fprintf(r.out, "%s  走子方: %s  第 %d/%d 步  %s\n", st.FEN, st.SideToMove, st.Cursor, st.Length, st.Status)
}

func (r *repl) printHistory() {
	h := r.s.History()
	if len(h.Records) == 0 {
		fmt.Fprintln(r.out, "（无棋谱）")
	}
	for _, rec := range h.Records {
		mark := " "
		if rec.Seq == h.Cursor {
			mark = "*"
		}
		fmt.Fprintf(r.out, "%s%3d. %s %s %s\n", mark, rec.Seq, rec.UCI, rec.Chinese, rec.Kind())
	}
	if len(h.Recent) > 0 {
		fmt.Fprintln(r.out, "最近局面:")
		for _, e := range h.Recent {
			fmt.Fprintf(r.out, "  %s %s (%s)\n", e.At.Format("15:04:05"), e.Move, e.Source)
		}
	}
	if h.Previous != nil {
		fmt.Fprintf(r.out, "上一局: %d 步，归档于 %s\n", len(h.Previous.Records), h.Previous.ArchivedAt.Format(time.DateTime))
	}
}

func (r *repl) export(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: export <path> [text|parquet] [utf-8|gbk]")
	}
	path, format, encName := args[0], "text", "utf-8"
	if len(args) > 1 {
		format = args[1]
	}
	if len(args) > 2 {
		encName = args[2]
	}
	records := r.s.History().Records

	switch format {
	case "parquet":
		if err := export.WriteParquet(path, r.s.ID, records); err != nil {
			return err
		}
	case "text":
		enc, err := export.ParseEncoding(encName)
		if err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := export.WriteText(f, records, enc); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	fmt.Fprintf(r.out, "已导出 %d 步到 %s\n", len(records), path)
	return nil
}

func (r *repl) load(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: load <path>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	moves, err := export.ReadMoves(f)
	if err != nil {
		return err
	}
	for i, m := range moves {
		if _, err := r.s.Dispatch(session.ApplyMove{UCI: xiangqi.EncodeUCI(m)}); err != nil {
			r.printBoard()
			return fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	fmt.Fprintf(r.out, "已读入 %d 步\n", len(moves))
	r.printBoard()
	return nil
}

func (r *repl) analyze(args []string) error {
	if r.analyzer == nil {
		return fmt.Errorf("analysis disabled")
	}
	var platform string
	play := false
	for _, a := range args {
		if a == "play" {
			play = true
		} else {
			platform = a
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sg, err := r.analyzer.Analyze(ctx, analysis.Request{FEN: r.s.Position().EncodeFEN(), Platform: platform})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "推荐 %s %s  分数 %d  胜率 %.2f%%  (%s)\n", sg.Move, sg.ChineseMove, sg.Score, sg.WinRate, sg.Source)
	for _, c := range sg.Candidates {
		fmt.Fprintf(r.out, "  %s %s %d %s\n", c.Move, c.ChineseMove, c.Score, c.Note)
	}
	if play {
		return r.dispatch(session.ApplyAnalysis{Suggestion: sg, Play: true})
	}
	return nil
}
