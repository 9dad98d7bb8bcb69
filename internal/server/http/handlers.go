package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"xqboard/internal/analysis"
	"xqboard/internal/history"
	"xqboard/internal/session"
	"xqboard/internal/xiangqi"
)

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games    *session.Manager
	analyzer analysis.Analyzer // 可以为 nil，此时 analyze_fen 返回 503
	log      zerolog.Logger
}

func NewHandler(games *session.Manager, analyzer analysis.Analyzer, logger zerolog.Logger) *Handler {
	return &Handler{games: games, analyzer: analyzer, log: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/health" {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleHealth(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/state":
		h.handleState(w, r)
	case "/api/play":
		h.handlePlay(w, r)
	case "/api/step_back":
		h.handleCommand(w, r, session.StepBack{})
	case "/api/step_forward":
		h.handleCommand(w, r, session.StepForward{})
	case "/api/step_to":
		h.handleStepTo(w, r)
	case "/api/set_fen":
		h.handleSetFEN(w, r)
	case "/api/history":
		h.handleHistory(w, r)
	case "/api/analyze_fen":
		h.handleAnalyze(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":   "ok",
		"sessions": h.games.Len(),
		"analysis": h.analyzer != nil,
	})
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	// 允许空 body
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSONStatus(w, http.StatusBadRequest, ErrorResponse{Error: "bad json", Code: "bad_request"})
		return
	}

	// 带 game_id 的是"重新开局"：归档旧对局
	if req.GameID != "" {
		eff, err := h.games.Dispatch(req.GameID, session.NewGame{})
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeState(w, r, req.GameID, eff)
		return
	}

	s, err := h.games.NewSession()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r, s.ID, s.State())
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r, req.GameID, s.State())
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decodeBody(w, r, &req) {
		return
	}
	move := req.UCI
	if move == "" && req.Move != nil {
		var err error
		if move, err = req.Move.toUCI(); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	h.dispatch(w, r, req.GameID, session.ApplyMove{UCI: move})
}

func (h *Handler) handleCommand(w http.ResponseWriter, r *http.Request, cmd session.Command) {
	var req GameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.dispatch(w, r, req.GameID, cmd)
}

func (h *Handler) handleStepTo(w http.ResponseWriter, r *http.Request) {
	var req StepToRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.dispatch(w, r, req.GameID, session.StepTo{N: req.Step})
}

func (h *Handler) handleSetFEN(w http.ResponseWriter, r *http.Request) {
	var req SetFENRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.dispatch(w, r, req.GameID, session.SetFEN{FEN: req.FEN, KeepHistory: req.KeepHistory})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view := s.History()
	view.Records = nonNilRecords(view.Records)
	if view.Recent == nil {
		view.Recent = []history.Entry{}
	}
	writeJSON(w, HistoryResponse{GameID: req.GameID, HistoryView: view})
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if h.analyzer == nil {
		writeJSONStatus(w, http.StatusServiceUnavailable, ErrorResponse{Error: "analysis disabled", Code: "unavailable"})
		return
	}

	fen := req.FEN
	if fen == "" {
		if req.GameID == "" {
			writeJSONStatus(w, http.StatusBadRequest, ErrorResponse{Error: "missing fen", Code: "bad_request"})
			return
		}
		s, err := h.games.Get(req.GameID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		fen = s.Position().EncodeFEN()
	}

	ctx := r.Context()
	if req.MoveTimeMs > 0 {
		// 多给一点余量，引擎自己也会按 MoveTime 截止
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.MoveTimeMs)*time.Millisecond+5*time.Second)
		defer cancel()
	}
	sg, err := h.analyzer.Analyze(ctx, analysis.Request{
		FEN:      fen,
		Depth:    req.Depth,
		MoveTime: time.Duration(req.MoveTimeMs) * time.Millisecond,
		Platform: req.Platform,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := AnalyzeResponse{Suggestion: sg}
	if req.Apply && req.GameID != "" {
		eff, err := h.games.Dispatch(req.GameID, session.ApplyAnalysis{Suggestion: sg, Play: req.Play})
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		st, err := h.stateOf(req.GameID, eff)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		resp.State = &st
	}
	writeJSON(w, resp)
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, id string, cmd session.Command) {
	eff, err := h.games.Dispatch(id, cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeState(w, r, id, eff)
}

func (h *Handler) stateOf(id string, eff session.Effects) (StateResponse, error) {
	s, err := h.games.Get(id)
	if err != nil {
		return StateResponse{}, err
	}
	legal := s.LegalMoves()
	if legal == nil {
		legal = []string{}
	}
	return StateResponse{GameID: id, Effects: eff, LegalMoves: legal}, nil
}

func (h *Handler) writeState(w http.ResponseWriter, r *http.Request, id string, eff session.Effects) {
	st, err := h.stateOf(id, eff)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, st)
}

// statusOf 把领域错误映射成 HTTP 状态码
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrGameNotFound):
		return http.StatusNotFound, "game_not_found"
	case errors.Is(err, xiangqi.ErrIllegalMove):
		return http.StatusUnprocessableEntity, "illegal_move"
	case errors.Is(err, xiangqi.ErrMalformedFEN):
		return http.StatusBadRequest, "malformed_fen"
	case errors.Is(err, xiangqi.ErrMalformedUCI):
		return http.StatusBadRequest, "malformed_uci"
	case errors.Is(err, history.ErrNavigationBoundary):
		return http.StatusConflict, "navigation_boundary"
	case errors.Is(err, analysis.ErrNetworkFailure):
		return http.StatusBadGateway, "network_failure"
	case errors.Is(err, analysis.ErrServiceError):
		return http.StatusBadGateway, "service_error"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	ev := h.log.Debug()
	if status >= http.StatusInternalServerError {
		ev = h.log.Warn()
	}
	ev.Str("rid", GetRequestID(r.Context())).Str("path", r.URL.Path).Int("status", status).Err(err).Msg("request failed")
	writeJSONStatus(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONStatus(w, http.StatusBadRequest, ErrorResponse{Error: "bad json", Code: "bad_request"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
