package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/coinquestapp/coinquest-backend/internal/activity"
	"github.com/coinquestapp/coinquest-backend/internal/challenges"
	"github.com/coinquestapp/coinquest-backend/internal/cron"
	"github.com/coinquestapp/coinquest-backend/internal/friends"
	"github.com/coinquestapp/coinquest-backend/internal/ledger"
	"github.com/coinquestapp/coinquest-backend/internal/users"
	"github.com/coinquestapp/coinquest-backend/internal/verification"
	"github.com/coinquestapp/coinquest-backend/pkg/config"
	"github.com/coinquestapp/coinquest-backend/pkg/db"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
	"github.com/coinquestapp/coinquest-backend/pkg/metrics"
	"github.com/coinquestapp/coinquest-backend/pkg/migrate"
	"github.com/coinquestapp/coinquest-backend/pkg/outbox"
	"github.com/coinquestapp/coinquest-backend/pkg/redis"
)

const lockKeyFormat = "cq:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	challengeService, err := buildChallengeService(cfg, logg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create challenge service", err)
		os.Exit(1)
	}

	acceptExpiryJob, err := cron.NewChallengeAcceptExpiryJob(cron.ChallengeAcceptExpiryJobParams{
		Logger:     logg,
		Challenges: challengeService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create accept expiry job", err)
		os.Exit(1)
	}

	settlementJob, err := cron.NewChallengeSettlementJob(cron.ChallengeSettlementJobParams{
		Logger:     logg,
		Challenges: challengeService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settlement job", err)
		os.Exit(1)
	}

	retentionJob, err := cron.NewOutboxRetentionJob(cron.OutboxRetentionJobParams{
		Logger:     logg,
		DB:         dbClient,
		Repository: outbox.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create outbox retention job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(acceptExpiryJob, settlementJob, retentionJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Challenge.SweepInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func buildChallengeService(cfg *config.Config, logg *logger.Logger, dbClient *db.Client) (challenges.Service, error) {
	userRepo := users.NewRepository(dbClient.DB())
	activityRepo := activity.NewRepository(dbClient.DB())

	ledgerService, err := ledger.NewService(ledger.NewRepository(dbClient.DB()))
	if err != nil {
		return nil, err
	}

	verifier, err := verification.NewVerifier(activityRepo)
	if err != nil {
		return nil, err
	}

	friendsService, err := friends.NewService(friends.ServiceParams{
		DB:       dbClient,
		Repo:     friends.NewRepository(dbClient.DB()),
		UserRepo: userRepo,
	})
	if err != nil {
		return nil, err
	}

	return challenges.NewService(challenges.ServiceParams{
		DB:       dbClient,
		Repo:     challenges.NewRepository(dbClient.DB()),
		Ledger:   ledgerService,
		Verifier: verifier,
		Friends:  friendsService,
		Baseline: activityRepo,
		Events:   outbox.NewService(outbox.NewRepository(dbClient.DB()), logg),
		Logger:   logg,
		Config:   cfg.Challenge,
	})
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
