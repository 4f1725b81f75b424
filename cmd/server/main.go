package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nflpredict/prediction-service/internal/agents"
	"github.com/nflpredict/prediction-service/internal/api"
	"github.com/nflpredict/prediction-service/internal/api/middleware"
	"github.com/nflpredict/prediction-service/internal/providers"
	"github.com/nflpredict/prediction-service/internal/services"
	"github.com/nflpredict/prediction-service/internal/simulator"
	"github.com/nflpredict/prediction-service/pkg/config"
	"github.com/nflpredict/prediction-service/pkg/database"
	"github.com/nflpredict/prediction-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger("", cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store := services.NewScheduleStore(db.DB, log)
	if err := store.AutoMigrate(); err != nil {
		log.WithError(err).Fatal("Failed to migrate schedule tables")
	}

	// Redis is optional too: a nil client degrades every cache read to a
	// miss.
	var redisClient *redis.Client
	if opt, err := redis.ParseURL(cfg.RedisURL); err != nil {
		log.WithError(err).Warn("Invalid Redis URL, caching disabled")
	} else {
		client := redis.NewClient(opt)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.WithError(err).Warn("Redis unreachable, caching disabled")
		} else {
			redisClient = client
			defer redisClient.Close()
		}
		cancel()
	}
	cacheService := services.NewCacheService(redisClient)

	// Live data providers.
	weatherClient := providers.NewOpenMeteoClient(cfg.ExternalAPITimeout, cfg.ProviderRateLimit, log)
	espnClient := providers.NewESPNClient(cfg.ExternalAPITimeout, cfg.ProviderRateLimit, log)

	// The four agents. Each gets its own RNG so heuristic draws stay
	// independent across agents.
	seed := time.Now().UnixNano()
	statistical := agents.NewStatisticalAgent("stat_machine", espnClient, rand.New(rand.NewSource(seed)), cfg.AgentCacheTTL, cfg.AgentCacheMaxEntries, log)
	weather := agents.NewWeatherAgent("weather_wizard", weatherClient, rand.New(rand.NewSource(seed+1)), cfg.AgentCacheTTL, cfg.AgentCacheMaxEntries, log)
	sentiment := agents.NewSentimentAgent("news_hound", espnClient, rand.New(rand.NewSource(seed+2)), cfg.AgentCacheTTL, cfg.AgentCacheMaxEntries, log)
	market := agents.NewMarketAgent("sharp_eye", rand.New(rand.NewSource(seed+3)), cfg.AgentCacheTTL, cfg.AgentCacheMaxEntries, log)

	collector := services.NewContextCollector(
		weatherClient, espnClient, espnClient,
		cacheService, rand.New(rand.NewSource(seed+4)),
		cfg.ExternalAPITimeout, cfg.ContextCacheTTL, log,
	)
	predictor := services.NewPredictionService(
		statistical, weather, sentiment, market,
		collector, cacheService, cfg.ContextCacheTTL, log,
	)
	simulation := services.NewSimulationService(
		store, simulator.New(rand.New(rand.NewSource(seed+5))),
		cacheService, cfg.DefaultSimulations, cfg.MaxSimulations,
		cfg.ContextCacheTTL, log,
	)

	refresher := services.NewAgentRefresherService(predictor, cfg.AgentRefreshInterval, log)
	if err := refresher.Start(); err != nil {
		log.WithError(err).Error("Failed to start agent refresher")
	}
	defer refresher.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, predictor, refresher, store, simulation, cacheService)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
