package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"buddy-hunt/internal/app"
	"buddy-hunt/internal/confetti"
	"buddy-hunt/internal/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	defaultCanvasWidth  = 480
	defaultCanvasHeight = 270
	maxCanvasSide       = 4096
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
	logger   *zap.Logger

	defaultQuizID string
	width, height int
	confettiOpts  []confetti.Option
}

// HandlerOption configures a WSHandler.
type HandlerOption func(*WSHandler)

func WithLogger(l *zap.Logger) HandlerOption {
	return func(h *WSHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithDefaultQuiz sets the quiz served when the client omits quizId.
func WithDefaultQuiz(id string) HandlerOption {
	return func(h *WSHandler) { h.defaultQuizID = id }
}

// WithConfetti sets the default canvas size and the animator options used
// for every connection.
func WithConfetti(width, height int, opts ...confetti.Option) HandlerOption {
	return func(h *WSHandler) {
		if width > 0 {
			h.width = width
		}
		if height > 0 {
			h.height = height
		}
		h.confettiOpts = append(h.confettiOpts, opts...)
	}
}

func NewWSHandler(service *app.QuizService, opts ...HandlerOption) *WSHandler {
	h := &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: zap.NewNop(),
		width:  defaultCanvasWidth,
		height: defaultCanvasHeight,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Index *int `json:"index"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func errorMessage(msg string) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: msg}}
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	key := app.SessionKey{QuizID: query.Get("quizId"), UserID: query.Get("userId")}
	if key.QuizID == "" {
		key.QuizID = h.defaultQuizID
	}
	if key.QuizID == "" || key.UserID == "" {
		http.Error(w, "missing quizId or userId", http.StatusBadRequest)
		return
	}
	width := canvasSide(query.Get("width"), h.width)
	height := canvasSide(query.Get("height"), h.height)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	log := h.logger.With(zap.String("session", key.String()))

	if _, err := h.service.Start(ctx, key); err != nil {
		log.Info("start failed", zap.Error(err))
		_ = conn.WriteJSON(errorMessage(err.Error()))
		return
	}
	defer h.service.Leave(ctx, key)

	updates, cancel, err := h.service.Subscribe(ctx, key)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err.Error()))
		return
	}
	defer cancel()

	send := make(chan outboundMessage, 64)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	enqueue := func(msg outboundMessage) bool {
		select {
		case send <- msg:
			return true
		case <-writerDone:
			return false
		case <-closeSignals:
			return false
		}
	}

	// gorilla connections allow one concurrent writer; everything goes through send.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("ws write error", zap.Error(err))
				_ = conn.Close()
				return
			}
		}
	}()

	surface := newFrameSurface(width, height, func(f confettiFrame) bool {
		select {
		case send <- outboundMessage{Type: "confetti", Payload: f}:
			return true
		default:
			return false
		}
	})
	opts := append([]confetti.Option{confetti.WithLogger(log)}, h.confettiOpts...)
	animator := confetti.NewAnimator(surface, opts...)

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Celebrate > 0 {
					animator.Celebrate(update.Celebrate)
					continue
				}
				if !enqueue(outboundMessage{Type: "view", Payload: update.View}) {
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if msg, ok := h.handle(ctx, log, key, inbound); ok {
			if !enqueue(msg) {
				break
			}
		}
	}

	close(closeSignals)
	<-updatesDone
	animator.Close()
	animator.Wait()
	close(send)
	<-writerDone
	if n := surface.Dropped(); n > 0 {
		log.Debug("confetti frames dropped", zap.Int("frames", n))
	}
}

// handle applies one inbound message. Views reach the client through the
// session subscription; only errors are answered directly.
func (h *WSHandler) handle(ctx context.Context, log *zap.Logger, key app.SessionKey, inbound inboundMessage) (outboundMessage, bool) {
	var err error
	switch inbound.Type {
	case "select":
		var payload selectPayload
		if jerr := json.Unmarshal(inbound.Payload, &payload); jerr != nil || payload.Index == nil {
			return errorMessage("invalid select payload"), true
		}
		err = h.service.SelectOption(ctx, key, *payload.Index)
	case "submit":
		_, err = h.service.Submit(ctx, key)
	case "advance":
		err = h.service.Advance(ctx, key)
	default:
		return errorMessage("unsupported message type"), true
	}

	switch {
	case err == nil, app.IsNoop(err):
		return outboundMessage{}, false
	case errors.Is(err, domain.ErrInvalidSelection):
		return errorMessage("invalid option"), true
	default:
		log.Warn("ws action failed", zap.String("type", inbound.Type), zap.Error(err))
		return errorMessage(err.Error()), true
	}
}

func canvasSide(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	if n > maxCanvasSide {
		return maxCanvasSide
	}
	return n
}
