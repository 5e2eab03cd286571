package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/campusnet/internal/config"
	"github.com/thereayou/campusnet/internal/database"
	"github.com/thereayou/campusnet/internal/handlers"
	"github.com/thereayou/campusnet/internal/middleware"
	"github.com/thereayou/campusnet/internal/services"
	"github.com/thereayou/campusnet/internal/websocket"
	"github.com/thereayou/campusnet/internal/workers"
	"github.com/thereayou/campusnet/pkg/auth"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg        *config.Config
	log        *slog.Logger
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *websocket.Hub
	Workers    *workers.Supervisor
}

func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Server, error) {
	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	blacklist := auth.NewTokenBlacklist(rdb)

	hub := websocket.NewHub(log.With("component", "hub"))

	notificationSvc := services.NewNotificationService(dbConn, hub, log.With("component", "notifications"))
	messageSvc := services.NewMessageService(dbConn, dbConn, dbConn, notificationSvc, hub, log.With("component", "messages"))
	friendSvc := services.NewFriendService(dbConn, dbConn, notificationSvc)

	bridge := services.NewChangeFeedBridge(
		database.NewDeleteFeed(cfg.DatabaseURL, log.With("component", "delete-feed")),
		hub,
		log.With("component", "change-feed"),
	)
	sweeper := database.NewExpirySweeper(dbConn, cfg.NotificationSweepInterval, log.With("component", "expiry"))

	supervisor := workers.NewSupervisor(log.With("component", "workers"), cfg.FeedRestartMin, cfg.FeedRestartMax).
		Add(hub, bridge, sweeper)

	routes := routeHandlers{
		auth:          handlers.NewAuthHandler(jwtMgr, blacklist, log),
		users:         handlers.NewUserHandler(dbConn, log),
		notifications: handlers.NewNotificationHandler(notificationSvc, log),
		messages:      handlers.NewMessageHandler(messageSvc, log),
		friends:       handlers.NewFriendHandler(friendSvc, log),
		health:        handlers.NewHealthHandler(hub),
		websocket: handlers.NewWebSocketHandler(
			hub,
			handlers.NewEventHandler(hub, messageSvc),
			cfg.AllowedOrigin,
			cfg.ClientSendBuffer,
			log.With("component", "websocket"),
		),
	}

	router := gin.Default()
	APIEndpoints(router, routes,
		middleware.AuthMiddleware(jwtMgr, blacklist),
		middleware.WSAuthMiddleware(jwtMgr, blacklist),
	)

	return &Server{
		cfg:        cfg,
		log:        log,
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Workers:    supervisor,
	}, nil
}

// Run обслуживает HTTP и фоновые воркеры до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.Router,
	}

	// Воркеры останавливаются и при отмене ctx, и при падении HTTP
	workersCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		s.Workers.Run(workersCtx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "port", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("http shutdown", "error", err)
	}
	stopWorkers()
	<-workersDone

	return runErr
}

func (s *Server) Close() {
	if err := s.Redis.Close(); err != nil {
		s.log.Warn("redis close", "error", err)
	}
	if err := s.DB.Close(); err != nil {
		s.log.Warn("postgres close", "error", err)
	}
}
