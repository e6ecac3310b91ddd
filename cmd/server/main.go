package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/agendavista/task-api/internal/api"
	"github.com/agendavista/task-api/internal/core/ports"
	"github.com/agendavista/task-api/internal/core/service"
	"github.com/agendavista/task-api/internal/infrastructure/config"
	"github.com/agendavista/task-api/internal/infrastructure/db/file"
	"github.com/agendavista/task-api/internal/infrastructure/db/memory"
	"github.com/agendavista/task-api/internal/infrastructure/db/mongo"
	"github.com/agendavista/task-api/internal/infrastructure/db/redis"
	"github.com/agendavista/task-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// --- Stores ---
	var (
		users   ports.UserRepository
		tasksRp ports.TaskRepository
		mongoDB *gomongo.Database
	)

	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		userRepo := mongo.NewUserRepository(db)
		taskRepo := mongo.NewTaskRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("user index creation failed")
		}
		if err := taskRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("task index creation failed")
		}

		users, tasksRp, mongoDB = userRepo, taskRepo, db

	case config.StoreFile:
		store, err := file.Open(cfg.Store.File, log)
		if err != nil {
			log.Fatal().Err(err).Msg("file store open failed")
		}
		users, tasksRp = store.Users(), store.Tasks()

	default: // config.StoreMemory
		store := memory.NewStore()
		users, tasksRp = store.Users(), store.Tasks()
	}

	// --- Optional task-list cache ---
	var (
		cache ports.TaskCache
		rdb   *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = rdb.Close()
		}()
		cache = redis.NewTaskCache(rdb, cfg.Redis.TTL)
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(users, tokens)
	taskService := service.NewTaskService(tasksRp, cache, log)

	e := api.NewRouter(api.Deps{
		AuthService: authService,
		TaskService: taskService,
		Tokens:      tokens,
		Users:       users,
		Mongo:       mongoDB,
		Redis:       rdb,
		Logger:      log,
		Production:  cfg.Production(),
		Metrics:     true,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("store", cfg.Store.Driver).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
