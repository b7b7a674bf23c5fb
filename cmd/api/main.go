package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelreservation/internal/config"
	"hotelreservation/internal/database"
	jwtsvc "hotelreservation/internal/pkg/jwt"
	"hotelreservation/internal/pkg/logger"
	"hotelreservation/internal/pkg/roomlock"
	"hotelreservation/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log, closer, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		logrus.WithError(err).Fatal("logger setup failed")
	}
	defer closer.Close()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		defer sqlDB.Close()
	}

	store := repository.NewStore(db)
	locker := newLocker(cfg, log)
	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(cfg, store, locker, tokens, log)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}

// newLocker falls back to the no-op locker when Redis is not configured or
// unreachable; booking transactions stay correct without it.
func newLocker(cfg *config.Config, log logrus.FieldLogger) roomlock.Locker {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, room lock disabled")
		return roomlock.NopLocker{}
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("invalid REDIS_URL, room lock disabled")
		return roomlock.NopLocker{}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable, room lock disabled")
		_ = client.Close()
		return roomlock.NopLocker{}
	}
	log.Info("redis connected, room lock enabled")
	return roomlock.NewRedisLocker(client, cfg.RoomLockTTL, log)
}
