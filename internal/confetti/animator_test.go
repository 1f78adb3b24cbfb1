package confetti

import (
	"bytes"
	"image/color"
	"image/gif"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type manualClock struct {
	start  time.Time
	frames chan time.Time
}

func newManualClock() *manualClock {
	return &manualClock{
		start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		frames: make(chan time.Time, 8),
	}
}

func (c *manualClock) Now() time.Time { return c.start }

func (c *manualClock) Frames() (<-chan time.Time, func()) {
	return c.frames, func() {}
}

func (c *manualClock) tick(after time.Duration) {
	c.frames <- c.start.Add(after)
}

type recordingSurface struct {
	mu      sync.Mutex
	clears  int
	fills   int
	flushes int
}

func (s *recordingSurface) Size() (float64, float64) { return 400, 300 }

func (s *recordingSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
}

func (s *recordingSurface) FillRect(_, _, _, _, _ float64, _ color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fills++
}

func (s *recordingSurface) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return nil
}

func (s *recordingSurface) counts() (int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears, s.fills, s.flushes
}

func TestAnimatorPlayRunsUntilDurationThenClears(t *testing.T) {
	surface := &recordingSurface{}
	clock := newManualClock()
	a := NewAnimator(surface,
		WithClock(clock),
		WithRand(rand.New(rand.NewSource(1))),
		WithParticles(5),
		WithSettle(5*time.Millisecond),
	)

	a.Play(40 * time.Millisecond)
	clock.tick(16 * time.Millisecond)
	clock.tick(40 * time.Millisecond)
	a.Wait()

	clears, fills, flushes := surface.counts()
	// frame 1: clear; frame 2: clear + final clear; safety clear afterwards.
	require.Equal(t, 4, clears)
	require.Equal(t, 10, fills)
	require.Equal(t, 3, flushes)
}

func TestAnimatorCloseStopsInFlightPlay(t *testing.T) {
	surface := &recordingSurface{}
	clock := newManualClock()
	a := NewAnimator(surface, WithClock(clock), WithParticles(5))

	a.Play(time.Hour)
	a.Close()
	clock.tick(16 * time.Millisecond)
	a.Wait()

	_, fills, flushes := surface.counts()
	require.Zero(t, fills)
	require.Zero(t, flushes)

	a.Play(time.Second)
	a.Wait()
	_, fills, _ = surface.counts()
	require.Zero(t, fills, "plays after close are ignored")
}

func TestAnimatorWithoutSurfaceIsNoop(t *testing.T) {
	a := NewAnimator(nil)
	a.Celebrate(time.Second)
	a.Wait()
}

func TestAnimatorOverlappingPlays(t *testing.T) {
	surface := &recordingSurface{}
	a := NewAnimator(surface,
		WithClock(NewTickerClock(200)),
		WithParticles(3),
		WithSettle(time.Millisecond),
	)

	a.Play(20 * time.Millisecond)
	a.Play(30 * time.Millisecond)
	a.Wait()

	clears, fills, flushes := surface.counts()
	require.Positive(t, fills)
	require.Greater(t, flushes, 2)
	require.GreaterOrEqual(t, clears, flushes)
}

func TestRenderGIFIsDeterministic(t *testing.T) {
	opts := GIFOptions{Width: 64, Height: 48, Duration: 200 * time.Millisecond, FPS: 50, Particles: 10, Seed: 3}

	var first, second bytes.Buffer
	require.NoError(t, RenderGIF(&first, opts))
	require.NoError(t, RenderGIF(&second, opts))
	require.Equal(t, first.Bytes(), second.Bytes())

	decoded, err := gif.DecodeAll(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)
	// 200ms at 50fps is ten frames; the last one is the final clear.
	require.Len(t, decoded.Image, 10)
	require.Equal(t, 64, decoded.Config.Width)

	last := decoded.Image[len(decoded.Image)-1]
	for _, idx := range last.Pix {
		require.Zero(t, idx, "final frame must be background only")
	}
}
