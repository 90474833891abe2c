package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stylematch/waitlist/internal/api"
	"github.com/stylematch/waitlist/internal/core/domain"
	"github.com/stylematch/waitlist/internal/core/ports"
	"github.com/stylematch/waitlist/internal/core/service"
	"github.com/stylematch/waitlist/internal/infrastructure/config"
	"github.com/stylematch/waitlist/internal/infrastructure/db/file"
	mongodb "github.com/stylematch/waitlist/internal/infrastructure/db/mongo"
	redisdb "github.com/stylematch/waitlist/internal/infrastructure/db/redis"
	"github.com/stylematch/waitlist/internal/infrastructure/http/handlers"
	"github.com/stylematch/waitlist/internal/infrastructure/notify"
	"github.com/stylematch/waitlist/internal/infrastructure/queue"
	"github.com/stylematch/waitlist/internal/infrastructure/ratelimit"
	"github.com/stylematch/waitlist/pkg/logger"
)

const (
	serviceName     = "stylematch-waitlist"
	shutdownTimeout = 10 * time.Second
	notifyWorkers   = 2
	notifyBuffer    = 256
)

// @title                       StyleMatch Waitlist API
// @version                     1.0
// @description                 Customer and merchant waitlist intake with admin review endpoints.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// Init returns the running logger, or a default one when config failed first.
		log := logger.Init(logger.Options{Service: serviceName})
		log.Error().Err(err).Msg("server exited with error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	var (
		customers ports.SubmissionRepository[*domain.Customer]
		merchants ports.SubmissionRepository[*domain.Merchant]
		health    []handlers.Dependency
	)

	// --- Storage ---
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()

		store, err := mongodb.NewStore(ctx, db)
		if err != nil {
			return err
		}
		customers, merchants = store.Customers, store.Merchants
		health = append(health, handlers.Dependency{Name: "storage", Pinger: store})
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo storage")
	default:
		store, err := file.Open(cfg.Storage.DataDir)
		if err != nil {
			return err
		}
		customers, merchants = store.Customers, store.Merchants
		health = append(health, handlers.Dependency{Name: "storage", Pinger: store})
		log.Info().Str("dir", cfg.Storage.DataDir).Msg("using file storage")
	}

	// --- Rate limiting and email claims ---
	var (
		generalLimiter ports.RateLimiter
		submitLimiter  ports.RateLimiter
		submissionOpts []service.SubmissionOption
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()

		generalLimiter = redisdb.NewRateLimiter(rdb, "general", cfg.RateLimit.General, cfg.RateLimit.Window)
		submitLimiter = redisdb.NewRateLimiter(rdb, "submit", cfg.RateLimit.Submit, cfg.RateLimit.Window)
		submissionOpts = append(submissionOpts, service.WithEmailClaims(redisdb.NewEmailClaims(rdb)))
		health = append(health, handlers.Dependency{Name: "redis", Pinger: redisdb.Pinger{Client: rdb}})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis rate limiter")
	} else {
		general := ratelimit.NewStore(cfg.RateLimit.General, cfg.RateLimit.Window)
		submit := ratelimit.NewStore(cfg.RateLimit.Submit, cfg.RateLimit.Window)
		general.StartJanitor(ctx)
		submit.StartJanitor(ctx)
		generalLimiter, submitLimiter = general, submit
	}

	// --- Notifications ---
	notifier, err := buildNotifier(ctx, cfg.Notify, log)
	if err != nil {
		return err
	}
	dispatcher := queue.NewDispatcher(notifyWorkers, notifyBuffer, notifier, log,
		queue.WithSendRate(cfg.Notify.MaxPerSecond))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Services ---
	admin, err := service.NewAdminService(cfg.Admin.Secret, cfg.Admin.TokenTTL)
	if err != nil {
		return err
	}
	submissions := service.NewSubmissionService(customers, merchants, dispatcher, log, submissionOpts...)

	e := api.NewRouter(api.Dependencies{
		Submissions:    submissions,
		Admin:          admin,
		GeneralLimiter: generalLimiter,
		SubmitLimiter:  submitLimiter,
		Health:         health,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		ProtectLists:   cfg.Admin.ProtectLists,
		TrustProxy:     cfg.TrustProxy,
		Log:            log,
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func buildNotifier(ctx context.Context, cfg config.NotifyConfig, log zerolog.Logger) (ports.Notifier, error) {
	if !cfg.SESEnabled() {
		log.Info().Msg("no mail transport configured, notifications go to the log")
		return notify.NewLogNotifier(log), nil
	}
	n, err := notify.NewSESNotifier(ctx, notify.SESConfig{
		Region:          cfg.SESRegion,
		AccessKeyID:     cfg.SESAccessKeyID,
		SecretAccessKey: cfg.SESSecretAccessKey,
		From:            cfg.From,
		To:              cfg.To,
	}, log)
	if err != nil {
		return nil, err
	}
	log.Info().Str("region", cfg.SESRegion).Msg("ses notifier enabled")
	return n, nil
}
