package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/strnadel/strnadel-api/handlers"
	"github.com/strnadel/strnadel-api/internal/cache"
	"github.com/strnadel/strnadel-api/internal/config"
	"github.com/strnadel/strnadel-api/internal/database"
	"github.com/strnadel/strnadel-api/internal/repository"
	"github.com/strnadel/strnadel-api/internal/site"
	"github.com/strnadel/strnadel-api/pkg/logger"
	"github.com/strnadel/strnadel-api/pkg/metrics"
	"github.com/strnadel/strnadel-api/pkg/middleware"
	"github.com/strnadel/strnadel-api/pkg/observability"
)

var startTime = time.Now()

const (
	mongoConnectAttempts = 5
	mongoConnectBackoff  = time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init(os.Getenv("LOG_LEVEL"))
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	if cfg.Log.File != "" {
		closer := logger.TeeToFile(logger.FileOptions{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
		defer func() { _ = closer.Close() }()
	}
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	logger.Infof("config loaded: driver=%s database_url=%v redis=%v cache=%v rate_limit=%v",
		cfg.Database.Driver, cfg.Database.URL != "", cfg.RedisAddr() != "", cfg.Cache.Enabled, cfg.RateLimit.Enabled)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx := context.Background()

	tp, err := observability.InitTracing(ctx, observability.Config{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: cfg.Tracing.ServiceVersion,
		Environment:    cfg.Server.Environment,
		OTLPEndpoint:   cfg.Tracing.OTLPEndpoint,
		OTLPInsecure:   cfg.Tracing.OTLPInsecure,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		logger.Warnf("tracing disabled: %v", err)
	} else {
		defer func() { _ = observability.Shutdown(context.Background(), tp) }()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Tracing(), middleware.RequestLogger(), middleware.CORS())

	// Redis backs the optional listing cache and the shared rate limiter.
	var rdb *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
			_ = client.Close()
		} else {
			rdb = client
			defer func() { _ = rdb.Close() }()
			logger.Infof("Connected to Redis: %s", addr)
		}
	}

	var store repository.Store
	switch {
	case cfg.Database.Driver == config.DriverMemory:
		store = repository.NewMemoryRepo(cfg.Database.Name)
		logger.Warnf("using in-memory document store; data is lost on restart")
	case cfg.Database.URL == "":
		logger.Warnf("DATABASE_URL not set; starting without a document store")
	default:
		client, err := database.ConnectWithRetry(ctx, cfg.Database.URL, cfg.Database.Timeout, mongoConnectAttempts, mongoConnectBackoff)
		if err != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", mongoConnectAttempts, err)
			break
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		name := database.DatabaseName(cfg.Database.URL, cfg.Database.Name)
		store = repository.NewMongoRepo(client.Database(name))
		logger.Infof("Connected to MongoDB database %q", name)
	}

	var listings *cache.ListingCache
	if cfg.Cache.Enabled {
		if rdb == nil {
			logger.Warnf("CACHE_ENABLED set but Redis is unavailable; listings are not cached")
		} else {
			listings = cache.NewListingCache(rdb, "", cfg.Cache.TTL)
		}
	}

	deps := handlers.Deps{DatabaseURLSet: cfg.Database.URL != ""}
	if store != nil {
		deps.Service = site.NewService(store, listings)
		deps.Inspector = store
	} else {
		deps.Service = site.NewService(nil, listings)
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			deps.InquiryLimiter = middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			deps.InquiryLimiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	handlers.RegisterSiteRoutes(r, deps)
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// 200 only when the document store answers a ping.
	r.GET("/ready", func(c *gin.Context) {
		status := gin.H{"storage": false, "redis": rdb != nil}
		ready := false
		if store != nil {
			pctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			ready = store.Ping(pctx) == nil
			cancel()
			status["storage"] = ready
		}
		code, state := http.StatusOK, "ready"
		if !ready {
			code, state = http.StatusServiceUnavailable, "not_ready"
		}
		c.JSON(code, gin.H{"status": state, "deps": status, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting STRNADEL API on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Infof("received %s, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
