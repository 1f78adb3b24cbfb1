package http

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"buddy-hunt/internal/confetti"
	"go.uber.org/zap"
)

const maxGIFDuration = 5 * time.Second

// GIFHandler serves a server-rendered confetti burst. The seed and duration
// come from the query string; the rest from the configured defaults.
type GIFHandler struct {
	defaults confetti.GIFOptions
	logger   *zap.Logger
}

func NewGIFHandler(defaults confetti.GIFOptions, logger *zap.Logger) *GIFHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GIFHandler{defaults: defaults, logger: logger}
}

func (h *GIFHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts := h.defaults
	query := r.URL.Query()

	opts.Seed = time.Now().UnixNano()
	if raw := query.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		opts.Seed = seed
	}
	if raw := query.Get("duration"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			http.Error(w, "invalid duration", http.StatusBadRequest)
			return
		}
		opts.Duration = min(d, maxGIFDuration)
	}

	var buf bytes.Buffer
	if err := confetti.RenderGIF(&buf, opts); err != nil {
		h.logger.Error("render gif failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
