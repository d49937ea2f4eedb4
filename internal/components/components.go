package components

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/Neb-Ur/service-app-backend/internal/api"
	"github.com/Neb-Ur/service-app-backend/internal/api/handlers/http/system"
	"github.com/Neb-Ur/service-app-backend/internal/config"
	"github.com/Neb-Ur/service-app-backend/internal/metrics"
	"github.com/Neb-Ur/service-app-backend/internal/mqtt"
	"github.com/Neb-Ur/service-app-backend/internal/redis"
	"github.com/Neb-Ur/service-app-backend/internal/service"
	"github.com/Neb-Ur/service-app-backend/internal/storage/postgres"
	"github.com/Neb-Ur/service-app-backend/internal/storage/sqlite"
	"github.com/Neb-Ur/service-app-backend/internal/workers"
	"github.com/Neb-Ur/service-app-backend/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Dispatch   *service.DispatchService
	Sweeper    *workers.TimeoutSweeper
	Metrics    *metrics.Prom

	cfg        *config.Config
	store      Store
	redis      *redis.Redis
	publisher  *mqtt.Publisher
	pushPool   *workers.PushPool
	pushSender *service.PushSender

	cancel      context.CancelFunc
	stopSweeper context.CancelFunc
	sweeperDone chan struct{}
	wg          sync.WaitGroup
}

// Store is what the wiring needs from either storage backend.
type Store interface {
	Ping(ctx context.Context) error
	Close() error
}

type storage struct {
	Store
	emergency service.EmergencyRepository
	directory service.Directory
}

// openStorage connects the configured backend. Both backends apply their
// schema on open.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		logger.Info("Initializing SQLite")
		s, err := sqlite.NewSQLite(ctx, cfg.SQLite.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init sqlite: %w", err)
		}
		return &storage{Store: s, emergency: s.Emergency, directory: s.Directory}, nil
	default:
		logger.Info("Initializing Postgres")
		p, err := postgres.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		return &storage{Store: p, emergency: p.Emergency, directory: p.Directory}, nil
	}
}

// Migrate opens the configured storage, which applies the schema, and closes
// it again.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	st, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("Schema is up to date", slog.String("driver", cfg.Storage.Driver))
	return st.Close()
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	st, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init storage", slog.Any("error", err))
		return nil, err
	}

	c := &Components{logger: logger, cfg: cfg, store: st}
	checks := map[string]system.Pinger{"storage": st}

	prom, err := metrics.NewProm(nil)
	if err != nil {
		c.ShutdownAll()
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}
	c.Metrics = prom

	var (
		source service.CandidateSource = st.directory
		locker service.Locker
		queue  *redis.PushQueue
	)
	if cfg.Redis.Enabled {
		logger.Info("Initializing Redis")
		rdb, err := redis.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		c.redis = rdb
		checks["redis"] = rdb

		source = redis.NewCandidateCache(rdb.Client, st.directory, cfg.Dispatch.CandidateCacheTTL, logger)
		locker = redis.NewLocker(rdb.Client, cfg.Dispatch.LockTTL, logger)
		queue = redis.NewPushQueue(rdb.Client, cfg.Push.QueueKey)
	}

	transport, err := c.initTransport(cfg, logger)
	if err != nil {
		c.ShutdownAll()
		return nil, err
	}

	var sink workers.PushSink
	if queue != nil {
		c.pushSender = service.NewPushSender(logger, queue, transport, prom)
		sink = queue.Enqueue
	} else {
		sender := service.NewPushSender(logger, nil, transport, prom)
		sink = sender.Send
	}
	c.pushPool = workers.NewPushPool(cfg.Push.Workers, cfg.Push.Buffer, sink, logger)

	c.Dispatch = service.NewDispatchService(
		st.emergency,
		st.directory,
		service.NewFinder(source, logger),
		locker,
		c.pushPool,
		prom,
		logger,
		service.DispatchOptions{
			NotificationTimeout: cfg.Dispatch.NotificationTimeout,
			InitialRadiusKM:     cfg.Dispatch.InitialRadiusKM,
			RadiusStepKM:        cfg.Dispatch.RadiusStepKM,
			MaxRadiusKM:         cfg.Dispatch.MaxRadiusKM,
			StrandedAfter:       cfg.Dispatch.SweepInterval,
		},
	)
	c.Sweeper = workers.NewTimeoutSweeper(c.Dispatch, cfg.Dispatch.SweepInterval, logger)

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = prom.Handler()
	}
	c.HttpServer = api.NewServer(ctx, cfg, logger, c.Dispatch, checks, metricsHandler)
	logger.Info("Initialized server")

	return c, nil
}

func (c *Components) initTransport(cfg *config.Config, logger *slog.Logger) (service.PushTransport, error) {
	switch cfg.Push.Transport {
	case config.PushTransportWebhook:
		return service.NewWebhookTransport(cfg.Push.WebhookURL), nil
	case config.PushTransportMQTT:
		logger.Info("Initializing MQTT publisher", slog.String("broker", cfg.MQTT.Broker))
		p, err := mqtt.NewPublisher(cfg.MQTT, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init mqtt: %w", err)
		}
		c.publisher = p
		return p, nil
	default:
		return service.NewLogTransport(logger), nil
	}
}

// StartDelivery launches the push pool and, when Redis is on, the queue
// consumer. They stop when ctx is done or on ShutdownAll.
func (c *Components) StartDelivery(ctx context.Context) context.Context {
	ctx, c.cancel = context.WithCancel(ctx)

	c.pushPool.Start(ctx)

	if c.pushSender != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.pushSender.Run(ctx)
		}()
	}
	return ctx
}

// StartWorkers starts delivery and the periodic timeout sweeper.
func (c *Components) StartWorkers(ctx context.Context) {
	ctx = c.StartDelivery(ctx)

	ctx, c.stopSweeper = context.WithCancel(ctx)
	c.sweeperDone = make(chan struct{})
	go func() {
		defer close(c.sweeperDone)
		c.Sweeper.Run(ctx)
	}()
}

// Run serves HTTP until ctx is done. The workers outlive ctx so that
// ShutdownAll can drain pushes buffered by the last requests.
func (c *Components) Run(ctx context.Context) error {
	c.StartWorkers(context.WithoutCancel(ctx))
	return c.HttpServer.Run(ctx)
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	// no new offers once the sweeper is gone; the pool then drains its
	// buffer before the queue consumer is cancelled
	if c.stopSweeper != nil {
		c.stopSweeper()
		<-c.sweeperDone
	}
	if c.pushPool != nil {
		c.pushPool.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()

	if c.publisher != nil {
		c.publisher.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			c.logger.Error("Storage close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
