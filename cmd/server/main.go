package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/auction-house/internal/config"
	"github.com/iliyamo/auction-house/internal/database"
	"github.com/iliyamo/auction-house/internal/handler"
	"github.com/iliyamo/auction-house/internal/mailer"
	"github.com/iliyamo/auction-house/internal/middleware"
	"github.com/iliyamo/auction-house/internal/obs"
	"github.com/iliyamo/auction-house/internal/queue"
	"github.com/iliyamo/auction-house/internal/repository"
	"github.com/iliyamo/auction-house/internal/router"
	"github.com/iliyamo/auction-house/internal/service"
	"github.com/iliyamo/auction-house/internal/utils"
)

const serviceName = "auction-house"

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		utils.Fatal("server stopped", map[string]any{"error": err.Error()})
	}
	utils.Info("server stopped", nil)
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.OTLPEndpoint != "" {
		shutdown, err := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint, cfg.Env)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
	}

	store, ready, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	events, closeEvents := openBroadcaster(cfg)
	defer closeEvents()

	g, gctx := errgroup.WithContext(ctx)

	mail, closeMail, err := openMailer(gctx, g, cfg)
	if err != nil {
		return err
	}
	defer closeMail()

	svc := service.NewAuctionService(store, events, mail, service.Options{
		BidIncrement: cfg.BidIncrement,
		FeeRate:      cfg.FeeRate,
	})

	sched := service.NewScheduler(svc, service.ScheduleConfig{
		CloseEvery:      cfg.CloseSweepEvery,
		EndingSoonEvery: cfg.EndingSoonSweepEvery,
		EndingSoonIn:    cfg.EndingSoonWithin,
	})
	sched.Start(gctx)
	defer sched.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger)

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil && cfg.RateLimit.Enabled {
		utils.Warn("redis unavailable; rate limiting disabled", map[string]any{"addr": cfg.Redis.Addr})
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	h := handler.NewAuctionHandler(svc)
	router.RegisterRoutes(e, ready)
	router.RegisterPublic(e, h)
	router.RegisterAuctions(e, h, cfg.JWTSecret, middleware.NewTokenBucket(cfg.RateLimit, rdb))

	addr := ":" + cfg.Port
	g.Go(func() error {
		utils.Info("listening", map[string]any{"addr": addr, "env": cfg.Env, "store": cfg.StoreDriver})
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(sctx)
	})
	return g.Wait()
}

// openStore returns the configured store, its readiness probe and a close
// function.
func openStore(ctx context.Context, cfg config.Config) (repository.Store, func(context.Context) error, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		utils.Warn("using in-memory store; data is lost on restart", nil)
		return repository.NewMemoryStore(nil), nil, func() {}, nil
	}

	db, err := database.Open(cfg.DB.User, cfg.DB.Pass, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	return repository.NewSQLStore(db), db.PingContext, func() { _ = db.Close() }, nil
}

// openBroadcaster publishes to RabbitMQ when configured and falls back to
// logging events otherwise.
func openBroadcaster(cfg config.Config) (service.Broadcaster, func()) {
	if cfg.RabbitMQURL == "" {
		return queue.LogPublisher{}, func() {}
	}
	p, err := queue.NewPublisher(cfg.RabbitMQURL, cfg.EventsExchange)
	if err != nil {
		utils.Warn("rabbitmq unavailable; events are only logged", map[string]any{"error": err.Error()})
		return queue.LogPublisher{}, func() {}
	}
	return p, func() { _ = p.Close() }
}

// openMailer enqueues mail on RabbitMQ and runs the consumer that delivers
// it; without a broker mail is delivered directly to the mail log.
func openMailer(ctx context.Context, g *errgroup.Group, cfg config.Config) (service.Mailer, func(), error) {
	logMailer, closer, err := mailer.OpenLogMailer("logs/mail.log")
	if err != nil {
		return nil, nil, err
	}
	closeLog := func() { _ = closer.Close() }
	if cfg.RabbitMQURL == "" {
		return logMailer, closeLog, nil
	}

	g.Go(func() error {
		err := queue.StartMailConsumer(ctx, cfg.RabbitMQURL, cfg.MailQueue, logMailer)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return queue.NewMailQueue(cfg.RabbitMQURL, cfg.MailQueue), closeLog, nil
}
