package main

import (
	"context"
	"log"
	"time"

	"friendchat/config"
	"friendchat/internal/handler"
	"friendchat/internal/redis"
	"friendchat/internal/repository"
	"friendchat/internal/server"
	"friendchat/internal/services"
	"friendchat/internal/storage"
	"friendchat/pkg/database"
	"friendchat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	l := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			l.Errorf("Failed to close database: %s", err)
		}
	}()

	if err := repository.InitSchema(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	ctx := context.Background()
	checks := map[string]handler.Pinger{
		"database": func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	}

	var cache services.ProfileCache
	if cfg.RedisEnabled {
		client := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		if err := redis.Ping(ctx, client); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		cache = redis.NewProfileCache(client, time.Duration(cfg.ProfileTTLSec)*time.Second)
		checks["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, client) }
		l.Infof("Profile cache enabled on %s", client.Options().Addr)
	}

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up file storage: %v", err)
	}

	handlers, authService := server.NewHandlers(cfg, server.Deps{
		DB:     db,
		Cache:  cache,
		Files:  files,
		Checks: checks,
	}, l)

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService)

	if err := srv.Start(); err != nil {
		l.Errorf("Server exited with error: %s", err)
	}
}

func newFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, error) {
	switch cfg.StorageDriver {
	case config.StorageS3:
		return storage.NewS3Store(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
		})
	default:
		return storage.NewLocalStore(cfg.UploadDir)
	}
}
