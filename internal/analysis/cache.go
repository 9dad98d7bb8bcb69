package analysis

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"xqboard/internal/store"
)

// Cached 把分析结果按局面哈希存起来，同一局面不再重复请求
type Cached struct {
	next  Analyzer
	store store.Store
	log   zerolog.Logger
}

func NewCached(next Analyzer, db store.Store, logger zerolog.Logger) *Cached {
	return &Cached{next: next, store: db, log: logger.With().Str("component", "analysis_cache").Logger()}
}

// 深度和限时也进键，浅的结果不会顶替之后更深的请求；0 表示后端默认值
func cacheKey(hash uint64, req Request) string {
	platform := req.Platform
	if platform == "" {
		platform = "auto"
	}
	return fmt.Sprintf("analysis/%s/d%d-t%d/%016x", platform, req.Depth, req.MoveTime.Milliseconds(), hash)
}

func (c *Cached) Analyze(ctx context.Context, req Request) (Suggestion, error) {
	pos, err := decodeRequest(req)
	if err != nil {
		return Suggestion{}, err
	}
	key := cacheKey(pos.EnsureHash(), req)

	var sg Suggestion
	if ok, err := c.store.Get(key, &sg); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("read analysis cache")
	} else if ok && sg.Move != "" {
		return sg, nil
	}

	sg, err = c.next.Analyze(ctx, req)
	if err != nil {
		return Suggestion{}, err
	}
	if err := c.store.Put(key, sg); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("write analysis cache")
	}
	return sg, nil
}
