package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"leetfolio/internal/config"
	"leetfolio/internal/pipeline"
	"leetfolio/internal/storage"
)

type RequestKind string

const (
	// KindPing asks whether the capture side is ready.
	KindPing RequestKind = "ping"
	// KindCapture extracts the submission on PageURL and stores it.
	KindCapture RequestKind = "capture"
)

type Request struct {
	Kind    RequestKind `json:"kind"`
	PageURL string      `json:"pageUrl,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handler answers the page-side messaging requests. The transport carrying
// Request/Response is a collaborator concern; in-process callers and the JSON
// endpoint both go through Handle.
type Handler struct {
	cfg        config.Config
	orch       *pipeline.Orchestrator
	set        *storage.ProblemSet
	httpClient *http.Client
	log        *zap.Logger
}

func NewHandler(cfg config.Config, orch *pipeline.Orchestrator, set *storage.ProblemSet, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		cfg:        cfg,
		orch:       orch,
		set:        set,
		httpClient: &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Millisecond},
		log:        log,
	}
}

func (h *Handler) Handle(ctx context.Context, req Request) Response {
	switch req.Kind {
	case KindPing:
		return Response{Success: true, Data: "ready"}
	case KindCapture:
		return h.capture(ctx, req.PageURL)
	default:
		return Response{Success: false, Error: fmt.Sprintf("unknown request kind %q", req.Kind)}
	}
}

func (h *Handler) capture(ctx context.Context, pageURL string) Response {
	record, err := h.orch.Capture(ctx, pageURL, h.pageLoader(ctx, pageURL))
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	stored, err := h.set.AddProblem(record)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	h.log.Info("captured submission",
		zap.String("id", stored.ID),
		zap.String("name", stored.Name),
		zap.String("language", stored.Language))
	return Response{Success: true, Data: stored}
}

// pageLoader fetches the submission page with the ambient session cookie.
// Deferred behind a closure so the fallback's settle delay precedes the fetch.
func (h *Handler) pageLoader(ctx context.Context, pageURL string) pipeline.PageLoader {
	return func() (*goquery.Document, error) {
		target := pageURL
		if strings.HasPrefix(target, "/") {
			target = strings.TrimRight(h.cfg.LeetCodeBaseURL, "/") + target
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", h.cfg.UserAgent)
		if h.cfg.SessionCookie != "" {
			req.AddCookie(&http.Cookie{Name: "LEETCODE_SESSION", Value: h.cfg.SessionCookie})
		}

		resp, err := h.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("page fetch returned status %d", resp.StatusCode)
		}
		return goquery.NewDocumentFromReader(resp.Body)
	}
}
