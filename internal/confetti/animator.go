package confetti

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultSettle is how long after a play's duration the safety clear runs.
const DefaultSettle = 250 * time.Millisecond

// Option configures an Animator.
type Option func(*Animator)

// WithClock replaces the frame clock.
func WithClock(c FrameClock) Option {
	return func(a *Animator) { a.clock = c }
}

// WithRand injects the random source used to spawn particles.
func WithRand(rnd *rand.Rand) Option {
	return func(a *Animator) { a.rnd = rnd }
}

// WithParticles sets how many particles each play spawns.
func WithParticles(n int) Option {
	return func(a *Animator) {
		if n > 0 {
			a.particles = n
		}
	}
}

// WithSettle sets the delay of the safety clear after a play ends.
func WithSettle(d time.Duration) Option {
	return func(a *Animator) {
		if d >= 0 {
			a.settle = d
		}
	}
}

// WithLogger sets the logger used for drawing errors.
func WithLogger(l *zap.Logger) Option {
	return func(a *Animator) { a.logger = l }
}

// Animator plays confetti bursts on a Surface. Plays may overlap; each one
// owns its particles and they share the surface frame by frame.
type Animator struct {
	surface   Surface
	clock     FrameClock
	particles int
	settle    time.Duration
	logger    *zap.Logger

	rndMu sync.Mutex
	rnd   *rand.Rand

	// frameMu makes each frame (clear, draw, flush) atomic on the surface.
	frameMu sync.Mutex

	active atomic.Bool
	wg     sync.WaitGroup
	mu     sync.Mutex
	timers map[*time.Timer]struct{}
}

// NewAnimator builds an animator drawing on surface. A nil surface yields an
// animator whose plays do nothing.
func NewAnimator(surface Surface, opts ...Option) *Animator {
	a := &Animator{
		surface:   surface,
		clock:     NewTickerClock(DefaultFPS),
		particles: DefaultParticles,
		settle:    DefaultSettle,
		logger:    zap.NewNop(),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		timers:    make(map[*time.Timer]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.active.Store(true)
	return a
}

// Celebrate plays a burst lasting d.
func (a *Animator) Celebrate(d time.Duration) {
	a.Play(d)
}

// Play starts a burst that lasts d and returns immediately.
func (a *Animator) Play(d time.Duration) {
	if a.surface == nil || !a.active.Load() {
		return
	}

	width, height := a.surface.Size()
	a.rndMu.Lock()
	particles := Spawn(a.rnd, width, height, a.particles)
	a.rndMu.Unlock()
	start := a.clock.Now()

	a.wg.Add(1)
	go a.run(particles, start, d)
	a.scheduleClear(d + a.settle)
}

// Close stops in-flight plays before their next frame and cancels pending
// safety clears. Later plays are ignored.
func (a *Animator) Close() {
	a.active.Store(false)

	a.mu.Lock()
	defer a.mu.Unlock()
	for t := range a.timers {
		if t.Stop() {
			a.wg.Done()
		}
		delete(a.timers, t)
	}
}

// Wait blocks until every play and safety clear has finished.
func (a *Animator) Wait() {
	a.wg.Wait()
}

func (a *Animator) run(particles []Particle, start time.Time, d time.Duration) {
	defer a.wg.Done()

	frames, stop := a.clock.Frames()
	defer stop()

	for now := range frames {
		if !a.active.Load() {
			return
		}
		a.frameMu.Lock()
		done := drawFrame(a.surface, particles, now.Sub(start), d)
		a.flush()
		a.frameMu.Unlock()
		if done {
			return
		}
	}
}

func (a *Animator) scheduleClear(after time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active.Load() {
		return
	}

	a.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(after, func() {
		defer a.wg.Done()
		a.mu.Lock()
		delete(a.timers, t)
		a.mu.Unlock()

		if !a.active.Load() {
			return
		}
		a.frameMu.Lock()
		a.surface.Clear()
		a.flush()
		a.frameMu.Unlock()
	})
	a.timers[t] = struct{}{}
}

func (a *Animator) flush() {
	if err := a.surface.Flush(); err != nil {
		a.logger.Debug("confetti flush failed", zap.Error(err))
	}
}

// drawFrame advances one frame. Once elapsed reaches d the surface is left
// cleared and drawFrame reports done.
func drawFrame(s Surface, particles []Particle, elapsed, d time.Duration) bool {
	s.Clear()
	Step(particles)
	for _, p := range particles {
		s.FillRect(p.X, p.Y, p.W, p.H, p.Rot, p.Color)
	}
	if elapsed < d {
		return false
	}
	s.Clear()
	return true
}
