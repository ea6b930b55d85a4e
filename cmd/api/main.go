package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_directory/internal/adapters/geocoder"
	server "hotel_directory/internal/adapters/http_server"
	"hotel_directory/internal/adapters/observability"
	"hotel_directory/internal/adapters/photostore"
	redisad "hotel_directory/internal/adapters/redis"
	"hotel_directory/internal/app"
	"hotel_directory/internal/query"
	"hotel_directory/internal/shared"
	mysqlrepo "hotel_directory/internal/storage/mysql"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")
	if cfg.MigrateOnStart {
		if err := mysqlrepo.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
		log.Info().Msg("migrations applied")
	}

	// deps
	repo := mysqlrepo.New(db)

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cache.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; serving without cache")
	}
	cancel()

	geo, err := geocoder.New(cfg.GeocoderBase, cfg.GeocoderKey, cfg.GeocoderRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize geocoder")
	}
	photos, err := photostore.New(photostore.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
		Bucket:    cfg.PhotoBucket,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize photo store")
	}
	if !photos.Enabled() {
		log.Warn().Msg("MINIO_ENDPOINT is empty; photo uploads are disabled")
	}

	hotels := app.NewHotelService(app.HotelDeps{
		Hotels:    repo,
		Geocoder:  geo,
		Photos:    photos,
		Cache:     cache,
		CacheTTL:  cfg.CacheTTL,
		MaxUpload: cfg.MaxFileUpload,
	})

	lists := server.Collections{
		Hotels:  collection(repo, "hotels"),
		Rooms:   collection(repo, "rooms"),
		Reviews: collection(repo, "reviews"),
		Users:   collection(repo, "users"),
	}

	// http
	srv := server.New(server.Options{
		RequestTimeout:     cfg.RequestTimeout,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Production:         !cfg.IsDev(),
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Auth:         app.NewAuthService(repo, cfg.JWTSecret, cfg.JWTExpire),
		Hotels:       hotels,
		Rooms:        app.NewRoomService(repo, hotels),
		Reviews:      app.NewReviewService(repo, hotels),
		Users:        app.NewUserService(repo),
		Lists:        lists,
		MaxUpload:    cfg.MaxFileUpload,
		SecureCookie: !cfg.IsDev(),
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("db close failed")
	}
}

func collection(repo *mysqlrepo.Repo, name string) query.Collection {
	c, err := repo.Collection(name)
	if err != nil {
		log.Fatal().Err(err).Str("collection", name).Msg("unknown collection")
	}
	return c
}
