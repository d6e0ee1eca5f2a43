package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/coinquestapp/coinquest-backend/api/routes"
	"github.com/coinquestapp/coinquest-backend/internal/activity"
	"github.com/coinquestapp/coinquest-backend/internal/auth"
	"github.com/coinquestapp/coinquest-backend/internal/challenges"
	"github.com/coinquestapp/coinquest-backend/internal/consumers/feed"
	"github.com/coinquestapp/coinquest-backend/internal/friends"
	"github.com/coinquestapp/coinquest-backend/internal/ledger"
	"github.com/coinquestapp/coinquest-backend/internal/users"
	"github.com/coinquestapp/coinquest-backend/internal/verification"
	"github.com/coinquestapp/coinquest-backend/pkg/auth/session"
	"github.com/coinquestapp/coinquest-backend/pkg/config"
	"github.com/coinquestapp/coinquest-backend/pkg/db"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
	"github.com/coinquestapp/coinquest-backend/pkg/migrate"
	"github.com/coinquestapp/coinquest-backend/pkg/outbox"
	"github.com/coinquestapp/coinquest-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	activityRepo := activity.NewRepository(dbClient.DB())

	ledgerService, err := ledger.NewService(ledger.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	verifier, err := verification.NewVerifier(activityRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create verifier", err)
		os.Exit(1)
	}

	friendsService, err := friends.NewService(friends.ServiceParams{
		DB:       dbClient,
		Repo:     friends.NewRepository(dbClient.DB()),
		UserRepo: userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create friends service", err)
		os.Exit(1)
	}

	challengeService, err := challenges.NewService(challenges.ServiceParams{
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
	if err != nil {
		logg.Error(context.Background(), "failed to create challenge service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:              dbClient,
		UserRepo:        userRepo,
		Ledger:          ledgerService,
		PasswordConfig:  cfg.Password,
		ChallengeConfig: cfg.Challenge,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	feedReader, err := feed.NewReader(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create feed reader", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Redis:      redisClient,
			Sessions:   sessionManager,
			Auth:       authService,
			Register:   registerService,
			Challenges: challengeService,
			Ledger:     ledgerService,
			Friends:    friendsService,
			Feed:       feedReader,
			UserRepo:   userRepo,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}
