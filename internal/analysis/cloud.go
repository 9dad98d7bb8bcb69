package analysis

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"xqboard/internal/xiangqi"
)

const DefaultCloudURL = "https://www.chessdb.cn/chessdb.php"

// CloudClient 查询 chessdb 风格的云库（action=queryall）
type CloudClient struct {
	BaseURL string
	HTTP    *http.Client
	log     zerolog.Logger
}

func NewCloudClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *CloudClient {
	if baseURL == "" {
		baseURL = DefaultCloudURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CloudClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		log:     logger.With().Str("component", "cloud").Logger(),
	}
}

func (c *CloudClient) Analyze(ctx context.Context, req Request) (Suggestion, error) {
	pos, err := decodeRequest(req)
	if err != nil {
		return Suggestion{}, err
	}
	fen := pos.EncodeFEN()

	q := url.Values{}
	q.Set("action", "queryall")
	q.Set("learn", "1")
	q.Set("showall", "1")
	q.Set("board", fen)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	c.log.Debug().Str("fen", fen).Msg("query cloud")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: read body: %v", ErrNetworkFailure, err)
	}
	if resp.StatusCode/100 != 2 {
		return Suggestion{}, fmt.Errorf("%w: status %d", ErrServiceError, resp.StatusCode)
	}

	cands := parseQueryAll(string(body), pos)
	if len(cands) == 0 {
		c.log.Info().Str("fen", fen).Msg("position not in cloud book")
		return Suggestion{}, fmt.Errorf("%w: no moves for position", ErrServiceError)
	}

	best := cands[0]
	return Suggestion{
		FEN:         fen,
		Move:        best.Move,
		ChineseMove: best.ChineseMove,
		Side:        pos.SideToMove,
		Score:       best.Score,
		WinRate:     best.WinRate,
		Source:      "cloud",
		Candidates:  cands,
	}, nil
}

// parseQueryAll 解析 "move:h2e2,score:1,rank:2,note:! (12-00),winrate:51.2|..."
func parseQueryAll(body string, pos *xiangqi.Position) []Candidate {
	if !strings.Contains(body, "move") {
		return nil
	}
	var out []Candidate
	for _, part := range strings.Split(strings.TrimSpace(body), "|") {
		if part == "" {
			continue
		}
		fields := map[string]string{}
		for _, item := range strings.Split(part, ",") {
			k, v, ok := strings.Cut(item, ":")
			if !ok {
				continue
			}
			fields[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
		mv, ok := fields["move"]
		if !ok || !xiangqi.LooksLikeUCI(mv) {
			continue
		}
		// 未经计算的着法
		if strings.Contains(fields["score"], "??") && strings.Contains(fields["note"], "??-??") {
			continue
		}
		out = append(out, Candidate{
			Move:        mv,
			ChineseMove: chineseFor(pos, mv),
			Score:       atoiOr(fields["score"], 0),
			Rank:        atoiOr(fields["rank"], 0),
			Note:        fields["note"],
			WinRate:     ParseWinRate(fields["winrate"]),
		})
	}
	return out
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// ParseWinRate 接受 "0.51" "51" "51%"，返回百分比；无法解析时为 0
func ParseWinRate(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" || s == "??" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	switch {
	case v <= 1:
		v *= 100
	case v > 100:
		return 0
	}
	return math.Round(v*100) / 100
}
