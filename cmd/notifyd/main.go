// Command notifyd publishes HTTP request bodies to in-process topic listeners.
//
// Every topic named in NOTIFYD_TOPICS gets a listener that logs what it
// receives; deliveries run on a fixed worker pool.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/notify/pkg/broadcast"
	"github.com/dmitrymomot/notify/pkg/config"
	"github.com/dmitrymomot/notify/pkg/httpserver"
	"github.com/dmitrymomot/notify/pkg/logger"
	"github.com/dmitrymomot/notify/pkg/topicapi"
	"github.com/dmitrymomot/notify/pkg/workerpool"
)

const serviceName = "notifyd"

type appConfig struct {
	Env    string            `env:"NOTIFYD_ENV" envDefault:"development"`
	Topics []string          `env:"NOTIFYD_TOPICS" envSeparator:","`
	HTTP   httpserver.Config `envPrefix:"NOTIFYD_"`
	Pool   workerpool.Config

	StatsInterval time.Duration `env:"NOTIFYD_STATS_INTERVAL" envDefault:"1m"`
	MaxBacklog    int           `env:"NOTIFYD_MAX_BACKLOG" envDefault:"10000"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithContextExtractors(topicapi.RequestIDExtractor()),
	)
	logger.SetAsDefault(log)

	pool := workerpool.NewFromConfig(cfg.Pool, workerpool.WithLogger(log))
	bus := broadcast.NewBus[string](broadcast.WithStrategy(pool), broadcast.WithLogger(log))

	var subs broadcast.Subscriptions
	for _, topic := range cfg.Topics {
		subs.Add(bus.Subscribe(topic, logListener(log, topic)))
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("notifyd starting",
		logger.Workers(pool.Workers()),
		slog.Any("topics", cfg.Topics))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, topicapi.NewRouter(bus, pool, log, topicapi.WithMaxBacklog(cfg.MaxBacklog)))
	})
	g.Go(func() error {
		reportStats(gctx, log, pool, cfg.StatsInterval)
		return nil
	})
	err := g.Wait()

	// No new publishes arrive once the server is down. Drain what was
	// accepted before releasing the listeners.
	sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if perr := pool.Shutdown(sctx); perr != nil {
		err = errors.Join(err, fmt.Errorf("drain worker pool: %w", perr))
	}
	subs.Clear()
	if cerr := bus.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}

	log.Info("notifyd stopped", slog.Any("pool", pool.Stats()))
	return err
}

func logListener(log *slog.Logger, topic string) func(string) {
	log = log.With(logger.Component("listener"), logger.Topic(topic))
	return func(payload string) {
		log.Info("message received", slog.Int("bytes", len(payload)))
	}
}

func reportStats(ctx context.Context, log *slog.Logger, pool *workerpool.Pool, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s := pool.Stats()
			log.Debug("worker pool stats",
				slog.Int("queued", s.Queued),
				slog.Int("active", s.Active),
				slog.Uint64("completed", s.Completed),
				slog.Uint64("failed", s.Failed),
				logger.Duration(s.AvgTaskTime))
		}
	}
}
