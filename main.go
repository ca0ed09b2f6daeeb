package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/knowthatperson/knowthatperson/backend/api/handlers"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/answers"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/config"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/database"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/scenarios"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/shares"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/tokens"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/logger"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/metrics"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v base_url=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.App.BaseURL)

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis for rate limiting: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Connect to MongoDB with retry/backoff to tolerate startup races. The
	// service has nothing to serve without its store, so exhausting the
	// attempts is fatal.
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.MongoDB.Database)
	if err := database.EnsureCollections(ctx, db); err != nil {
		logger.Fatalf("failed to ensure collections: %v", err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Warnf("failed to ensure indexes: %v", err)
	}

	// readiness endpoint — 200 only when the store answers a ping
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"mongodb": true, "redis": true}
		ready := true
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			deps["mongodb"] = false
			ready = false
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if redisClient == nil {
				ready = false
			}
		}
		status := http.StatusOK
		label := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			label = "not_ready"
		}
		c.JSON(status, gin.H{"status": label, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Repositories, services and route registration
	scRepo := scenarios.NewMongoRepository(db.Collection(database.ScenariosCollection))
	shRepo := shares.NewMongoRepository(db.Collection(database.SharesCollection))
	ansRepo := answers.NewMongoRepository(db.Collection(database.AnswersCollection))

	scSvc := scenarios.NewService(scRepo, cfg.Pagination)
	shSvc := shares.NewService(shRepo, scRepo, ansRepo, tokens.NewShareToken, cfg.App.BaseURL)
	ansSvc := answers.NewService(ansRepo, shRepo)

	handlers.NewScenarioHandler(scSvc).Register(r)
	handlers.NewShareHandler(shSvc, ansSvc).Register(r)
	if cfg.Admin.Secret != "" {
		handlers.NewAdminHandler(scSvc, shSvc, ansSvc).Register(r, tokens.NewAdminVerifier(cfg.Admin.Secret))
	} else {
		logger.Warnf("moderation endpoints not registered because ADMIN_JWT_SECRET is unset")
	}

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting API service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
