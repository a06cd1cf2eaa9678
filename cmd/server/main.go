package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"order-tracking-service/internal/config"
	"order-tracking-service/internal/controllers/http"
	"order-tracking-service/internal/infra"
	mmysql "order-tracking-service/internal/infra/mysql"
	"order-tracking-service/internal/infra/rabbitmq"
	"order-tracking-service/internal/logger"
	"order-tracking-service/internal/middleware"
	"order-tracking-service/internal/repository"
	mysqlrepo "order-tracking-service/internal/repository/mysql"
	"order-tracking-service/internal/services"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	if err := logger.Initialize(cfg.LogLevel, cfg.Env); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Log.Sync()

	var source infra.OrderSourceInterface
	if cfg.UseMockData {
		logger.Log.Info("serving demo portfolio instead of the order api")
		source = infra.NewMockSource(cfg.MockLatency)
	} else {
		source = infra.NewOrderClient(cfg.OrderAPIURL, 5*time.Second)
	}

	var snapshots repository.SnapshotRepository
	if os.Getenv("MYSQL_HOST") != "" {
		db, err := mmysql.NewMySQLFromEnv()
		if err != nil {
			logger.Log.Fatal("db: connect", zap.Error(err))
		}
		snapshots, err = mysqlrepo.NewSnapshotRepository(db)
		if err != nil {
			logger.Log.Fatal("db: migrate", zap.Error(err))
		}
	}

	var publisher rabbitmq.PublisherInterface
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, "order.exchange")
		if err != nil {
			logger.Log.Fatal("failed to init publisher", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	}

	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisHost + ":6379",
			DB:           0,
			PoolSize:     200,
			MinIdleConns: 20,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
	}

	service := services.NewOrderService(source, snapshots, publisher, cfg.CacheTTL)
	handler := http.NewHandler(service, redisClient)

	demoBuyer := ""
	if cfg.UseMockData || cfg.JWTSecret == "" {
		demoBuyer = cfg.DemoBuyerID
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	handler.RegisterRoutes(r, middleware.BuyerAuth(cfg.JWTSecret, demoBuyer))

	logger.Log.Info("starting order tracking service", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("server run", zap.Error(err))
	}
}
