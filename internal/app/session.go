package app

import (
	"sync"
	"time"

	"buddy-hunt/internal/domain"
)

// SessionKey identifies one participant's run through one quiz.
type SessionKey struct {
	QuizID string
	UserID string
}

func (k SessionKey) String() string {
	return k.QuizID + ":" + k.UserID
}

// Update is pushed to subscribers after every state change. Celebrate is
// non-zero when the subscriber should play the confetti effect for that long;
// such updates carry no view.
type Update struct {
	View      View
	Celebrate time.Duration
}

// Session is one participant's quiz run. It serialises controller calls so
// each input event runs to completion before the next one.
type Session struct {
	key       SessionKey
	startedAt time.Time
	now       func() time.Time

	mu          sync.Mutex
	ctrl        *Controller
	finishedAt  time.Time
	subscribers map[chan Update]struct{}
}

// NewSession builds a session for key playing quiz.
func NewSession(key SessionKey, quiz domain.Quiz, opts ...ControllerOption) (*Session, error) {
	return NewSessionWithClock(key, quiz, time.Now, opts...)
}

// NewSessionWithClock is NewSession with a deterministic clock for tests.
func NewSessionWithClock(key SessionKey, quiz domain.Quiz, now func() time.Time, opts ...ControllerOption) (*Session, error) {
	s := &Session{
		key:         key,
		startedAt:   now(),
		now:         now,
		subscribers: make(map[chan Update]struct{}),
	}
	all := make([]ControllerOption, 0, len(opts)+2)
	all = append(all, opts...)
	all = append(all, WithPresenter(sessionPresenter{s}), WithCelebrator(sessionCelebrator{s}))
	ctrl, err := NewController(quiz, all...)
	if err != nil {
		return nil, err
	}
	s.ctrl = ctrl
	return s, nil
}

// Key returns the session identity.
func (s *Session) Key() SessionKey {
	return s.key
}

// View returns the current view.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.View()
}

func (s *Session) selectOption(k int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.SelectOption(k)
}

func (s *Session) submit() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Submit()
}

// advance reports whether this call finished the quiz.
func (s *Session) advance() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctrl.Advance(); err != nil {
		return false, err
	}
	if s.ctrl.Finished() {
		s.finishedAt = s.now()
		return true, nil
	}
	return false, nil
}

func (s *Session) timing() (time.Time, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt, s.finishedAt
}

// IsIdle reports whether nobody is subscribed to the session.
func (s *Session) IsIdle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers) == 0
}

func (s *Session) subscribe() (<-chan Update, func()) {
	ch := make(chan Update, 16)

	// The snapshot goes in under the lock so no broadcast can overtake it.
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	ch <- Update{View: s.ctrl.View()}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked(u Update) {
	for ch := range s.subscribers {
		select {
		case ch <- u:
		default:
			// Slow subscriber: drop its oldest update to make room.
			select {
			case <-ch:
			default:
			}
			ch <- u
		}
	}
}

// sessionPresenter and sessionCelebrator are called by the controller while
// the session lock is held.
type sessionPresenter struct{ s *Session }

func (p sessionPresenter) Render(v View) {
	p.s.broadcastLocked(Update{View: v})
}

type sessionCelebrator struct{ s *Session }

func (c sessionCelebrator) Celebrate(d time.Duration) {
	c.s.broadcastLocked(Update{Celebrate: d})
}
