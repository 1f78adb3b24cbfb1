package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"buddy-hunt/internal/app"
	"buddy-hunt/internal/domain"
	"buddy-hunt/internal/infra/memory"
	"github.com/stretchr/testify/require"
)

type recordingEvents struct {
	mu     sync.Mutex
	keys   []string
	events []any
	err    error
}

func (r *recordingEvents) Publish(_ context.Context, routingKey string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, routingKey)
	r.events = append(r.events, payload)
	return r.err
}

func TestServiceFullRunPublishesFinished(t *testing.T) {
	ctx := context.Background()
	events := &recordingEvents{}
	service := newTestService(events)
	key := app.SessionKey{QuizID: "buddy-hunt", UserID: "u1"}

	view, err := service.Start(ctx, key)
	require.NoError(t, err)
	require.Equal(t, 1, view.Number)
	require.Equal(t, 3, view.Total)

	for _, correct := range []int{0, 1, 0} {
		require.NoError(t, service.SelectOption(ctx, key, correct))
		ok, err := service.Submit(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, service.Advance(ctx, key))
	}

	final, err := service.View(ctx, key)
	require.NoError(t, err)
	require.True(t, final.Finished)
	require.Equal(t, 1.0, final.Progress)
	require.Equal(t, []string{app.FinishedRoutingKey}, events.keys)

	finished := events.events[0].(app.QuizFinished)
	require.Equal(t, "u1", finished.UserID)
	require.Equal(t, 3, finished.Questions)
}

func TestServiceStartIsIdempotent(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil)
	key := app.SessionKey{QuizID: "buddy-hunt", UserID: "u1"}

	_, _ = service.Start(ctx, key)
	_ = service.SelectOption(ctx, key, 0)
	_, _ = service.Submit(ctx, key)
	_ = service.Advance(ctx, key)

	view, err := service.Start(ctx, key)
	require.NoError(t, err)
	require.Equal(t, 2, view.Number, "the running session should be returned")
}

func TestServicePublishFailureDoesNotBlockFinish(t *testing.T) {
	ctx := context.Background()
	service := newTestService(&recordingEvents{err: errors.New("broker down")})
	key := app.SessionKey{QuizID: "buddy-hunt", UserID: "u1"}

	_, _ = service.Start(ctx, key)
	for _, correct := range []int{0, 1, 0} {
		_ = service.SelectOption(ctx, key, correct)
		_, _ = service.Submit(ctx, key)
		require.NoError(t, service.Advance(ctx, key))
	}
}

func TestSubscribeReceivesUpdatesAndCelebrations(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil)
	key := app.SessionKey{QuizID: "buddy-hunt", UserID: "u1"}

	_, err := service.Start(ctx, key)
	require.NoError(t, err)
	ch, cancel, err := service.Subscribe(ctx, key)
	require.NoError(t, err)
	defer cancel()

	initial := <-ch
	require.Equal(t, 1, initial.View.Number)

	_ = service.SelectOption(ctx, key, 0)
	u := <-ch
	require.True(t, u.View.Options[0].Selected)

	_, _ = service.Submit(ctx, key)
	u = <-ch
	require.Equal(t, domain.FeedbackSuccess, u.View.Feedback.Kind)
	u = <-ch
	require.Equal(t, app.DefaultSuccessCelebration, u.Celebrate)
}

func TestSubscribeSnapshotIsNeverOvertaken(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil)
	key := app.SessionKey{QuizID: "buddy-hunt", UserID: "u1"}
	_, err := service.Start(ctx, key)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		k := i % 3
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = service.SelectOption(ctx, key, k)
		}()
		ch, cancel, err := service.Subscribe(ctx, key)
		require.NoError(t, err)
		wg.Wait()

		var last app.View
	drain:
		for {
			select {
			case u := <-ch:
				last = u.View
			default:
				break drain
			}
		}
		cancel()

		current, err := service.View(ctx, key)
		require.NoError(t, err)
		require.Equal(t, current, last, "iteration %d: subscriber was left on an outdated view", i)
	}
}

func TestActionsRequireSession(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil)
	key := app.SessionKey{QuizID: "buddy-hunt", UserID: "ghost"}

	require.ErrorIs(t, service.SelectOption(ctx, key, 0), domain.ErrSessionNotFound)
	_, err := service.Submit(ctx, key)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	require.ErrorIs(t, service.Advance(ctx, key), domain.ErrSessionNotFound)
	_, err = service.Start(ctx, app.SessionKey{QuizID: "missing", UserID: "u1"})
	require.ErrorIs(t, err, domain.ErrQuizNotFound)
}

func TestLeaveDropsIdleSession(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil)
	key := app.SessionKey{QuizID: "buddy-hunt", UserID: "u1"}

	_, _ = service.Start(ctx, key)
	_, cancel, _ := service.Subscribe(ctx, key)
	service.Leave(ctx, key)
	_, err := service.View(ctx, key)
	require.NoError(t, err, "a session with a subscriber must survive leave")

	cancel()
	service.Leave(ctx, key)
	_, err = service.View(ctx, key)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestIsNoop(t *testing.T) {
	for _, err := range []error{domain.ErrNoSelection, domain.ErrNotSolved, domain.ErrAlreadySolved, domain.ErrFinished} {
		require.True(t, app.IsNoop(err), "%v", err)
	}
	require.False(t, app.IsNoop(domain.ErrInvalidSelection), "invalid selection must be reported")
}

func newTestService(events app.EventSink) *app.QuizService {
	sessionStore := memory.NewSessionStore()
	quizRepo := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{
		"buddy-hunt": referenceQuiz(),
	}), 5*time.Minute)
	return app.NewQuizService(sessionStore, quizRepo, events, nil)
}
