package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	mw "github.com/iconidentify/blogsmith/internal/api/middleware"
	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/pipeline"
	"github.com/iconidentify/blogsmith/internal/service"
	"github.com/iconidentify/blogsmith/internal/validator"
)

const (
	promptWait = 30 * time.Second
	writeWait  = 10 * time.Second
)

// Stream event types.
const (
	EventStage  = "stage"
	EventResult = "result"
	EventError  = "error"
)

// StreamEvent is a message sent to a websocket client during generation.
type StreamEvent struct {
	Type           string       `json:"type"`
	Stage          string       `json:"stage,omitempty"`
	Blog           *domain.Blog `json:"blog,omitempty"`
	EnhancedPrompt string       `json:"enhanced_prompt,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// StreamHandler runs a generation over a websocket, reporting each stage.
type StreamHandler struct {
	svc      *service.BlogService
	validate *validator.Validator
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewStreamHandler creates a stream handler accepting connections from
// origins. An empty list or "*" accepts any origin.
func NewStreamHandler(svc *service.BlogService, validate *validator.Validator, origins []string, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		svc:      svc,
		validate: validate,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(origins),
		},
	}
}

func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return func(r *http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
			return true
		}
		return slices.Contains(origins, origin)
	}
}

// Generate handles GET /api/blogs/generate/stream. The client sends one
// {"prompt": "..."} message; the server answers with stage events followed
// by a result or an error event, then closes.
func (h *StreamHandler) Generate(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	var req domain.GenerateRequest
	conn.SetReadDeadline(time.Now().Add(promptWait))
	if err := conn.ReadJSON(&req); err != nil {
		h.send(conn, StreamEvent{Type: EventError, Error: errBadJSON.Error()})
		return
	}
	conn.SetReadDeadline(time.Time{})

	if err := h.validate.ValidateGenerate(&req); err != nil {
		h.send(conn, StreamEvent{Type: EventError, Error: validator.Message(err)})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The only further reads detect the peer going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	observer := pipeline.ObserverFunc(func(stage pipeline.Stage) {
		if stage == pipeline.StageDone || stage == pipeline.StageFailed {
			return
		}
		h.send(conn, StreamEvent{Type: EventStage, Stage: stage.String()})
	})

	authorID, _ := mw.UserIDFromContext(r.Context())
	res, err := h.svc.GenerateObserved(ctx, req.Prompt, authorID, observer)
	if err != nil {
		if ctx.Err() != nil {
			h.logger.Info("stream client went away", "error", err)
			return
		}
		_, msg := generationFailure(err)
		h.send(conn, StreamEvent{Type: EventError, Error: msg})
		h.close(conn)
		return
	}

	h.send(conn, StreamEvent{Type: EventResult, Blog: res.Blog, EnhancedPrompt: res.EnhancedPrompt})
	h.close(conn)
}

func (h *StreamHandler) send(conn *websocket.Conn, ev StreamEvent) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(ev); err != nil {
		h.logger.Debug("stream write failed", "type", ev.Type, "error", err)
	}
}

func (h *StreamHandler) close(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
