package http

import (
	"fmt"
	"image/color"
	"sync"
)

// rect is one confetti piece as drawn by the browser canvas.
type rect struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Rot   float64 `json:"rot"`
	Color string  `json:"color"`
}

// confettiFrame is the payload of a "confetti" message. An empty Rects list
// tells the client to clear its canvas.
type confettiFrame struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rects  []rect  `json:"rects"`
}

// frameSurface collects the rectangles of a frame and hands the frame to emit
// on Flush.
type frameSurface struct {
	width, height float64
	emit          func(confettiFrame) bool

	mu      sync.Mutex
	pending []rect
	dropped int
}

func newFrameSurface(width, height int, emit func(confettiFrame) bool) *frameSurface {
	return &frameSurface{width: float64(width), height: float64(height), emit: emit}
}

func (s *frameSurface) Size() (float64, float64) {
	return s.width, s.height
}

func (s *frameSurface) Clear() {
	s.mu.Lock()
	s.pending = s.pending[:0]
	s.mu.Unlock()
}

func (s *frameSurface) FillRect(cx, cy, w, h, rot float64, c color.RGBA) {
	s.mu.Lock()
	s.pending = append(s.pending, rect{
		X:     cx,
		Y:     cy,
		W:     w,
		H:     h,
		Rot:   rot,
		Color: hexColor(c),
	})
	s.mu.Unlock()
}

// Flush never blocks; frames the connection cannot take right now are dropped.
func (s *frameSurface) Flush() error {
	s.mu.Lock()
	frame := confettiFrame{
		Width:  s.width,
		Height: s.height,
		Rects:  append([]rect(nil), s.pending...),
	}
	s.mu.Unlock()

	if frame.Rects == nil {
		frame.Rects = []rect{}
	}
	if !s.emit(frame) {
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
	}
	return nil
}

func (s *frameSurface) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
