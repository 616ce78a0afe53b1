package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"relay-chat/config"
	"relay-chat/internal/events"
	"relay-chat/internal/handler"
	"relay-chat/internal/middleware"
	redisclient "relay-chat/internal/redis"
	"relay-chat/internal/repository"
	"relay-chat/internal/services"
	ws "relay-chat/internal/websocket"
	"relay-chat/pkg/database"
	"relay-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	appLog := logger.New(cfg.AppMode)
	defer appLog.Sync()
	logger.SetGlobalLogger(appLog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to Database
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.ApplyRawMigrations(ctx, pool, "migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Connect to Redis (broker for notification fan-out)
	redisCli := redisclient.NewClient(redisclient.Config{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()
	if err := redisclient.Ping(ctx, redisCli); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	userRepo := repository.NewUserRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)

	presence := services.NewPresenceService(userRepo)
	relay := services.NewRelayService(messageRepo, roomRepo)
	notifier := events.NewRedisNotifier(redisCli)
	limiter := redisclient.NewRateLimiter(redisCli, redisclient.DefaultRateLimitConfig())

	hub := ws.NewHub()
	go hub.Run(ctx)

	bridge := ws.NewRedisBridge(redisclient.NewSubscriber(redisCli), hub)
	go func() {
		if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			appLog.Errorf("redis bridge stopped: %v", err)
		}
	}()

	gateway := ws.NewGateway(presence, relay, notifier, hub, limiter, appLog)
	userHandler := handler.NewUserHandler(presence)
	messageHandler := handler.NewMessageHandler(relay)

	if cfg.AppMode == logger.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(appLog))
	r.Use(middleware.ErrorHandler(appLog))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/ws", middleware.ConnectRateLimitMiddleware(limiter), gateway.Connect)
	r.GET("/users", userHandler.ListConnected)
	r.GET("/messages/:senderId/:recipientId", messageHandler.History)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.AppPort),
		Handler: r,
	}

	go func() {
		appLog.Infof("starting server on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLog.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Errorf("server shutdown: %v", err)
	}
}
