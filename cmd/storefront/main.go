package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/QuliyevMSH/gubre-evi-main/internal/admin"
	"github.com/QuliyevMSH/gubre-evi-main/internal/auth"
	"github.com/QuliyevMSH/gubre-evi-main/internal/cart"
	"github.com/QuliyevMSH/gubre-evi-main/internal/catalog"
	"github.com/QuliyevMSH/gubre-evi-main/internal/config"
	"github.com/QuliyevMSH/gubre-evi-main/internal/notify"
	"github.com/QuliyevMSH/gubre-evi-main/internal/profile"
	"github.com/QuliyevMSH/gubre-evi-main/internal/server"
	"github.com/QuliyevMSH/gubre-evi-main/internal/storage"
	"github.com/QuliyevMSH/gubre-evi-main/internal/store"
	"github.com/QuliyevMSH/gubre-evi-main/internal/telemetry"
)

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	return log
}

func main() {
	log := newLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	if cfg.OTLPEndpoint != "" {
		tp, err := telemetry.InitTracerProvider(ctx, "storefront", cfg.OTLPEndpoint)
		if err != nil {
			log.Fatalf("failed to init tracing: %v", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.WithError(err).Warn("tracer provider shutdown failed")
			}
		}()
	}

	db, err := store.Connect(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()
	log.Info("connected to postgres")

	var (
		feed         notify.Feed
		catalogCache catalog.Cache = catalog.NopCache{}
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		log.Info("connected to redis")

		feed = notify.NewRedisFeed(redisClient, log)
		catalogCache = catalog.NewRedisCache(redisClient)
	} else {
		feed = notify.NewBroker()
		log.Info("using in-process change feed")
	}

	catalogStore := store.NewPostgres(db, feed, log)
	if err := catalogStore.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	var bucket storage.Bucket
	if cfg.StorageBaseURL != "" {
		bucket = storage.NewHTTPBucket(cfg.StorageBaseURL, cfg.StorageBucket, cfg.StorageToken)
	} else {
		bucket = storage.NewMemoryBucket("/" + cfg.StorageBucket)
		log.Info("using in-memory avatar bucket")
	}

	catalogSvc := catalog.NewService(catalogStore, catalogCache, log)
	authSvc := auth.NewService(catalogStore, catalogStore, []byte(cfg.JWTSecret), cfg.TokenTTL, log)
	profileSvc := profile.NewService(catalogStore, bucket, log)
	adminSvc := admin.NewService(catalogStore, catalogSvc, bucket, log)
	facade := cart.NewFacade(catalogStore, log)

	srv := server.New(log, authSvc, catalogSvc, profileSvc, adminSvc, facade, catalogStore, feed, cfg.RequestTimeout)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      srv.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // the cart watch stream writes indefinitely
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("storefront listening on :%s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down storefront...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Info("storefront stopped")
}
