package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"xqboard/internal/xiangqi"
)

// Fixture 一步随机合法着法及前后局面，给前端和其他实现做对照
type Fixture struct {
	Game    int    `json:"game"`
	Ply     int    `json:"ply"`
	FEN     string `json:"fen"`
	UCI     string `json:"uci"`
	Chinese string `json:"chinese"`
	NextFEN string `json:"next_fen"`
	Legal   int    `json:"legal"` // 走子前合法着法数
}

func main() {
	numGames := flag.Int("games", 10, "number of random games")
	maxMoves := flag.Int("max-moves", 200, "max plies per game")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	out := flag.String("out", "move_fixtures.json", "output file")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	var fixtures []Fixture
	for g := 0; g < *numGames; g++ {
		pos := xiangqi.NewInitialPosition()
		for ply := 0; ply < *maxMoves; ply++ {
			if pos.Status().Over() {
				break
			}
			legal := pos.GenerateLegalMoves()
			m := legal[rng.Intn(len(legal))]

			note, ok := pos.NotateMove(m)
			if !ok {
				break
			}
			next, ok := pos.ApplyMove(m)
			if !ok {
				break
			}
			fixtures = append(fixtures, Fixture{
				Game:    g,
				Ply:     ply,
				FEN:     pos.EncodeFEN(),
				UCI:     xiangqi.EncodeUCI(m),
				Chinese: note.Text,
				NextFEN: next.EncodeFEN(),
				Legal:   len(legal),
			})
			pos = next
		}
	}

	data, err := json.MarshalIndent(fixtures, "", "  ")
	if err != nil {
		fatal(err)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		fatal(err)
	}
	fmt.Printf("Generated %d fixtures from %d random games (seed %d) to %s\n", len(fixtures), *numGames, *seed, *out)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
