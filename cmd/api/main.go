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
	"github.com/redis/go-redis/v9"

	"go-mongo-todo/internal/cache"
	"go-mongo-todo/internal/config"
	"go-mongo-todo/internal/database"
	"go-mongo-todo/internal/logging"
	"go-mongo-todo/internal/repositories"
	"go-mongo-todo/internal/routes"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.New("dev").Error("config load failed", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Error("mongodb disconnect failed", "error", err)
		}
	}()
	log.Info("connected to mongodb", "database", cfg.Mongo.Database)

	userRepo := repositories.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Error("index bootstrap failed", "error", err)
		os.Exit(1)
	}

	var todoCache *cache.TodoCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		todoCache = cache.NewTodoCache(rdb, cfg.Redis.TTL)
		log.Info("todo list cache enabled", "addr", cfg.Redis.Addr)
	}

	router := routes.SetupRouter(routes.Deps{
		Users:     userRepo,
		Todos:     repositories.NewTodoRepository(db),
		JWTSecret: []byte(cfg.JWT.Secret),
		Cache:     todoCache,
		Log:       log,
		Health: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("server listening", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
