// Command server runs the delivery marketplace HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oladokun-o/engine/internal/api"
	"github.com/oladokun-o/engine/internal/api/handler"
	"github.com/oladokun-o/engine/internal/core/ports"
	"github.com/oladokun-o/engine/internal/core/service"
	"github.com/oladokun-o/engine/internal/infrastructure/config"
	mongostore "github.com/oladokun-o/engine/internal/infrastructure/db/mongo"
	pgstore "github.com/oladokun-o/engine/internal/infrastructure/db/postgres"
	redisstore "github.com/oladokun-o/engine/internal/infrastructure/db/redis"
	"github.com/oladokun-o/engine/internal/infrastructure/mail"
	"github.com/oladokun-o/engine/internal/infrastructure/queue"
	"github.com/oladokun-o/engine/internal/infrastructure/security"
	"github.com/oladokun-o/engine/internal/infrastructure/token"
	"github.com/oladokun-o/engine/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Get().Fatal().Err(err).Msg("server stopped")
	}
}

// repositories is the store a backend provides.
type repositories struct {
	users    ports.UserRepository
	otps     ports.OtpRepository
	orders   ports.OrderRepository
	messages ports.MessageRepository
	ping     handler.Dependency
	close    func(ctx context.Context) error
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Env: cfg.Env, Service: "marketplace"})

	repos, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := repos.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	locker := redisstore.NewLocker(rdb, redisstore.LockOptions{
		TTL:  cfg.Redis.LockTTL,
		Wait: cfg.Redis.LockWait,
	}, logger.For("lock"))

	mailer, err := mail.NewMailer(cfg.Mail, logger.For("mail"))
	if err != nil {
		return err
	}
	dispatcher := queue.NewDispatcher(mailer, queue.Options{
		Workers: cfg.Notify.Workers,
		Buffer:  cfg.Notify.Buffer,
	}, logger.For("notify"))

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	otp := service.NewOtpService(repos.users, repos.otps, dispatcher, locker, nil, nil, logger.For("otp"))

	svc := api.Services{
		Auth:  service.NewAuthService(repos.users, hasher, cfg.Auth.JWTSecret, cfg.Auth.JWTTTL, logger.For("auth")),
		Users: service.NewUserService(repos.users, hasher, otp, dispatcher, logger.For("users")),
		Otp:   otp,
		Reset: service.NewResetService(repos.users, token.NewResetCodec(cfg.Auth.ResetTokenSecret), hasher,
			dispatcher, locker, nil, service.ResetOptions{TTL: cfg.Auth.ResetTokenTTL, AppURL: cfg.AppURL},
			logger.For("reset")),
		Settings: service.NewSettingsService(repos.users, hasher, dispatcher, logger.For("settings")),
		Orders: service.NewOrderService(repos.orders, repos.users, repos.messages, locker, nil,
			logger.For("orders")),
		Messages: service.NewMessageService(repos.orders, repos.messages, nil, logger.For("messages")),
		Health: []handler.Dependency{
			repos.ping,
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
	}
	e := api.NewRouter(svc, nil, logger.For("http"))

	g, gctx := errgroup.WithContext(ctx)

	dispatcher.Start(gctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := e.Shutdown(shutdownCtx)
		// Queued notifications are flushed after the last request finished.
		if derr := dispatcher.Stop(shutdownCtx); derr != nil {
			log.Warn().Err(derr).Msg("notification queue not drained")
		}
		return err
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := pgstore.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &repositories{
			users:    pgstore.NewUserRepository(db),
			otps:     pgstore.NewOtpRepository(db),
			orders:   pgstore.NewOrderRepository(db),
			messages: pgstore.NewMessageRepository(db),
			ping:     handler.Dependency{Name: "postgres", Ping: db.PingContext},
			close:    func(context.Context) error { return db.Close() },
		}, nil

	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &repositories{
			users:    mongostore.NewUserRepository(db),
			otps:     mongostore.NewOtpRepository(db),
			orders:   mongostore.NewOrderRepository(db),
			messages: mongostore.NewMessageRepository(db),
			ping:     handler.Dependency{Name: "mongodb", Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) }},
			close:    client.Disconnect,
		}, nil
	}
}
