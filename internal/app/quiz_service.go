package app

import (
	"context"
	"errors"
	"time"

	"buddy-hunt/internal/domain"
	"go.uber.org/zap"
)

// SessionRepository abstracts where participant sessions live (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(key SessionKey, create func() (*Session, error)) (*Session, error)
	Get(key SessionKey) (*Session, bool)
	DeleteIfIdle(key SessionKey)
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// FinishedRoutingKey is the routing key of QuizFinished events.
const FinishedRoutingKey = "quiz.finished"

// QuizFinished is published once a participant clears the last question.
type QuizFinished struct {
	QuizID     string    `json:"quizId"`
	UserID     string    `json:"userId"`
	Questions  int       `json:"questions"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// EventSink publishes quiz lifecycle events to the host application.
type EventSink interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// NopEvents discards every event.
type NopEvents struct{}

func (NopEvents) Publish(context.Context, string, any) error { return nil }

// QuizService contains the quiz use cases shared by every transport.
type QuizService struct {
	sessions SessionRepository
	quizzes  QuizRepository
	events   EventSink
	logger   *zap.Logger
	opts     []ControllerOption
}

func NewQuizService(store SessionRepository, quizzes QuizRepository, events EventSink, logger *zap.Logger, opts ...ControllerOption) *QuizService {
	if events == nil {
		events = NopEvents{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{sessions: store, quizzes: quizzes, events: events, logger: logger, opts: opts}
}

// Start returns the participant's session, creating it at the first question
// if needed.
func (s *QuizService) Start(ctx context.Context, key SessionKey) (View, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, key.QuizID)
	if err != nil {
		return View{}, err
	}

	session, err := s.sessions.GetOrCreate(key, func() (*Session, error) {
		return NewSession(key, quiz, s.opts...)
	})
	if err != nil {
		return View{}, err
	}
	s.logger.Debug("session started", zap.String("session", key.String()))
	return session.View(), nil
}

// SelectOption selects option k of the participant's current question.
func (s *QuizService) SelectOption(_ context.Context, key SessionKey, k int) error {
	session, ok := s.sessions.Get(key)
	if !ok {
		return domain.ErrSessionNotFound
	}
	return session.selectOption(k)
}

// Submit checks the selected option and reports whether it was correct.
func (s *QuizService) Submit(_ context.Context, key SessionKey) (bool, error) {
	session, ok := s.sessions.Get(key)
	if !ok {
		return false, domain.ErrSessionNotFound
	}
	return session.submit()
}

// Advance moves to the next question. Finishing the quiz publishes a
// QuizFinished event; a failed publish is logged and never blocks the taker.
func (s *QuizService) Advance(ctx context.Context, key SessionKey) error {
	session, ok := s.sessions.Get(key)
	if !ok {
		return domain.ErrSessionNotFound
	}
	finished, err := session.advance()
	if err != nil || !finished {
		return err
	}

	view := session.View()
	startedAt, finishedAt := session.timing()
	event := QuizFinished{
		QuizID:     key.QuizID,
		UserID:     key.UserID,
		Questions:  view.Total,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	if err := s.events.Publish(ctx, FinishedRoutingKey, event); err != nil {
		s.logger.Warn("publish quiz finished failed", zap.String("session", key.String()), zap.Error(err))
	}
	s.logger.Info("quiz finished", zap.String("session", key.String()))
	return nil
}

// View returns the participant's current view.
func (s *QuizService) View(_ context.Context, key SessionKey) (View, error) {
	session, ok := s.sessions.Get(key)
	if !ok {
		return View{}, domain.ErrSessionNotFound
	}
	return session.View(), nil
}

// Subscribe returns a channel that receives the session's updates.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(_ context.Context, key SessionKey) (<-chan Update, func(), error) {
	session, ok := s.sessions.Get(key)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// Leave drops the session once nobody is watching it; progress is not kept.
func (s *QuizService) Leave(_ context.Context, key SessionKey) {
	if _, ok := s.sessions.Get(key); ok {
		s.sessions.DeleteIfIdle(key)
	}
}

// IsNoop reports whether err is one of the expected "nothing to do" outcomes
// of an input event (premature submit or advance, a repeated submit).
func IsNoop(err error) bool {
	return errors.Is(err, domain.ErrNoSelection) ||
		errors.Is(err, domain.ErrAlreadySolved) ||
		errors.Is(err, domain.ErrNotSolved) ||
		errors.Is(err, domain.ErrFinished)
}
