package cli

import (
	"context"
	"time"

	"buddy-hunt/internal/app"
	"buddy-hunt/internal/config"
	"buddy-hunt/internal/confetti"
	"buddy-hunt/internal/event"
	"buddy-hunt/internal/infra/file"
	"buddy-hunt/internal/infra/memory"
	pgloader "buddy-hunt/internal/infra/postgres"
	redisstore "buddy-hunt/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// deps is the wired quiz service plus everything that must be closed with it.
type deps struct {
	service *app.QuizService
	closers []func()
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// buildService wires quiz loading, caching, sessions and events from cfg.
// Postgres is consulted before the YAML quizzes when configured; Redis
// replaces the in-memory cache and session store when configured.
func buildService(ctx context.Context, cfg config.Config, log *zap.Logger) (*deps, error) {
	d := &deps{}

	files, err := file.NewLoader(cfg.Quiz.Dir)
	if err != nil {
		return nil, err
	}
	loader := memory.ChainLoader{files}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, pool.Close)
		loader = memory.ChainLoader{pgloader.NewQuizLoader(pool), files}
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	var store app.SessionRepository
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		d.closers = append(d.closers, func() { _ = client.Close() })
		quizRepo = redisstore.NewQuizRepository(client, loader, quizTTL, log)
		store = redisstore.NewSessionStore(client, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
		store = memory.NewSessionStore()
	}

	var events app.EventSink = event.NopSink{}
	if cfg.Events.AMQPURL != "" {
		pub, err := event.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, log)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = pub.Close() })
		events = pub
	}

	d.service = app.NewQuizService(store, quizRepo, events, log,
		app.WithCelebrationDurations(
			config.TTLDuration(cfg.Confetti.Success, app.DefaultSuccessCelebration),
			config.TTLDuration(cfg.Confetti.Final, app.DefaultFinalCelebration),
		),
	)
	return d, nil
}

func animatorOptions(cfg config.Config) []confetti.Option {
	fps := cfg.Confetti.FPS
	if fps <= 0 {
		fps = confetti.DefaultFPS
	}
	return []confetti.Option{
		confetti.WithClock(confetti.NewTickerClock(fps)),
		confetti.WithParticles(cfg.Confetti.Particles),
		confetti.WithSettle(config.TTLDuration(cfg.Confetti.Settle, confetti.DefaultSettle)),
	}
}

func gifOptions(cfg config.Config) confetti.GIFOptions {
	return confetti.GIFOptions{
		Width:     cfg.Confetti.Width,
		Height:    cfg.Confetti.Height,
		Particles: cfg.Confetti.Particles,
	}
}
