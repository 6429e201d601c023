package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/showcase-backend/config"
	httpapi "github.com/GoSim-25-26J-441/showcase-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/auth"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/assets"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/cache"
	cataloghttp "github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/http"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/repository"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/service"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/storage/postgres"
)

const serviceName = "showcase-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer sqlDB.Close()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database), MaxConns: 5})
	if err != nil {
		log.Fatalf("database pool: %v", err)
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	m, err := metrics.New("showcase", reg)
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}

	var (
		shared     cache.GenStore
		cachePing  httpapi.Pinger
		redisClose func() error
	)
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("redis url: %v", err)
		}
		rdb := redis.NewClient(opts)
		shared = cache.NewRedisGens(rdb)
		cachePing = httpapi.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		redisClose = rdb.Close
		log.Printf("[info] shared cache invalidation via redis %s", opts.Addr)
	}

	uploader, uploadDir, err := newUploader(ctx, cfg)
	if err != nil {
		log.Fatalf("image storage: %v", err)
	}

	repo := repository.NewProjectRepository(sqlDB)
	coord, err := cache.NewCoordinator(repo, cache.Options{
		TTL:        cfg.Cache.TTL,
		MaxEntries: cfg.Cache.MaxEntries,
		Shared:     shared,
		Metrics:    m,
	})
	if err != nil {
		log.Fatalf("cache: %v", err)
	}

	janitor, err := cache.NewJanitor(coord, cfg.Cache.SweepSpec)
	if err != nil {
		log.Fatalf("cache janitor: %v", err)
	}
	janitor.Start()
	defer janitor.Stop()

	resolver, err := newResolver(ctx, cfg, auth.NewRoleStore(pool))
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	pipeline := service.NewPipeline(repo, uploader, coord, m, cfg.Server.MaxImageBytes)
	handler := cataloghttp.New(service.NewCatalog(coord), pipeline, cfg.Server.MaxImageBytes)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          pool,
		Cache:       cachePing,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		Catalog:     handler,
		Resolver:    resolver,
		RateLimit:   cfg.Admin.RateLimit,
		RateBurst:   cfg.Admin.RateBurst,
		UploadDir:   uploadDir,
		Gatherer:    reg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("%s listening on :%s (env=%s, auth=%s, storage=%s)",
			serviceName, cfg.Server.Port, cfg.App.Environment, cfg.Firebase.AuthMode, cfg.Storage.Driver)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[error] shutdown http server: %v", err)
		}
		cancel()
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[error] serve http: %v", err)
		}
	}

	if redisClose != nil {
		if err := redisClose(); err != nil {
			log.Printf("[warn] close redis: %v", err)
		}
	}
}

// newUploader returns the configured image store. The directory is non-empty
// only for the local driver and is served under /uploads.
func newUploader(ctx context.Context, cfg *config.Config) (assets.Uploader, string, error) {
	switch cfg.Storage.Driver {
	case "s3":
		u, err := assets.NewS3(ctx, assets.S3Config{
			Bucket:        cfg.Storage.S3Bucket,
			Region:        cfg.Storage.S3Region,
			Endpoint:      cfg.Storage.S3Endpoint,
			PathStyle:     cfg.Storage.S3PathStyle,
			PublicBaseURL: cfg.Storage.S3PublicBaseURL,
		})
		return u, "", err
	default:
		u, err := assets.NewLocal(cfg.Storage.LocalDir, cfg.Storage.LocalBaseURL)
		if err != nil {
			return nil, "", err
		}
		return u, u.Dir(), nil
	}
}

func newResolver(ctx context.Context, cfg *config.Config, roles *auth.RoleStore) (auth.Resolver, error) {
	if cfg.Firebase.AuthMode == "header" {
		log.Printf("[warn] AUTH_MODE=header trusts X-User-Id; do not expose this instance publicly")
		return auth.HeaderResolver{}, nil
	}
	verifier, err := auth.NewTokenVerifier(ctx, &cfg.Firebase)
	if err != nil {
		return nil, err
	}
	return auth.FirebaseResolver{Verifier: verifier, Roles: roles}, nil
}
