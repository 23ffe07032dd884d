package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rmartelo/freightops-backend/api/routes"
	"github.com/rmartelo/freightops-backend/internal/agents"
	"github.com/rmartelo/freightops-backend/internal/auth"
	"github.com/rmartelo/freightops-backend/internal/carriers"
	"github.com/rmartelo/freightops-backend/internal/clients"
	"github.com/rmartelo/freightops-backend/internal/geodata"
	"github.com/rmartelo/freightops-backend/internal/opsfiles"
	"github.com/rmartelo/freightops-backend/internal/partners"
	"github.com/rmartelo/freightops-backend/internal/refs"
	"github.com/rmartelo/freightops-backend/internal/stats"
	"github.com/rmartelo/freightops-backend/internal/users"
	"github.com/rmartelo/freightops-backend/pkg/auth/session"
	"github.com/rmartelo/freightops-backend/pkg/config"
	"github.com/rmartelo/freightops-backend/pkg/db"
	"github.com/rmartelo/freightops-backend/pkg/logger"
	"github.com/rmartelo/freightops-backend/pkg/migrate"
	"github.com/rmartelo/freightops-backend/pkg/outbox"
	"github.com/rmartelo/freightops-backend/pkg/redis"
)

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

	gormDB := dbClient.DB()
	refStore := refs.NewStore(gormDB)
	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)

	usersService, err := users.NewService(users.NewRepository(gormDB), cfg.Password)
	exitOnError(logg, "users service", err)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(gormDB),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	exitOnError(logg, "auth service", err)

	opsService, err := opsfiles.NewService(opsfiles.NewRepository(gormDB), refStore, dbClient, outboxService)
	exitOnError(logg, "ops files service", err)

	partnersService, err := partners.NewService(partners.NewRepository(gormDB), refStore, dbClient)
	exitOnError(logg, "partners service", err)

	clientsService, err := clients.NewService(clients.NewRepository(gormDB))
	exitOnError(logg, "clients service", err)

	carriersService, err := carriers.NewService(carriers.NewRepository(gormDB))
	exitOnError(logg, "carriers service", err)

	agentsService, err := agents.NewService(agents.NewRepository(gormDB))
	exitOnError(logg, "agents service", err)

	geodataService, err := geodata.NewService(geodata.NewRepository(gormDB))
	exitOnError(logg, "geodata service", err)

	statsService, err := stats.NewService(stats.NewRepository(gormDB), cfg.Ops)
	exitOnError(logg, "stats service", err)

	registry := prometheus.NewRegistry()

	handler := routes.NewRouter(
		routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Sessions: sessionManager,
			Registry: registry,
		},
		routes.Services{
			Auth:     authService,
			OpsFiles: opsService,
			Clients:  clientsService,
			Carriers: carriersService,
			Agents:   agentsService,
			Partners: partnersService,
			Geodata:  geodataService,
			Users:    usersService,
			Stats:    statsService,
		},
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server stopped")
}

func exitOnError(logg *logger.Logger, what string, err error) {
	if err != nil {
		logg.Error(context.Background(), "failed to create "+what, err)
		os.Exit(1)
	}
}
