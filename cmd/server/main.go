package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"twitch-giveaway-backend/docs"
	"twitch-giveaway-backend/internal/common/cache"
	"twitch-giveaway-backend/internal/common/config"
	"twitch-giveaway-backend/internal/common/logger"
	"twitch-giveaway-backend/internal/common/middleware"
	authhttp "twitch-giveaway-backend/internal/features/auth/delivery/http"
	authrepo "twitch-giveaway-backend/internal/features/auth/repository"
	authmemory "twitch-giveaway-backend/internal/features/auth/repository/memory"
	authredis "twitch-giveaway-backend/internal/features/auth/repository/redis"
	authservice "twitch-giveaway-backend/internal/features/auth/service"
	giveawayhttp "twitch-giveaway-backend/internal/features/giveaway/delivery/http"
	"twitch-giveaway-backend/internal/features/giveaway/models"
	giverepo "twitch-giveaway-backend/internal/features/giveaway/repository"
	"twitch-giveaway-backend/internal/features/giveaway/repository/cached"
	givememory "twitch-giveaway-backend/internal/features/giveaway/repository/memory"
	giveredis "twitch-giveaway-backend/internal/features/giveaway/repository/redis"
	"twitch-giveaway-backend/internal/features/giveaway/service"
	"twitch-giveaway-backend/internal/features/realtime"
	platformredis "twitch-giveaway-backend/internal/platform/redis"
	"twitch-giveaway-backend/internal/platform/twitch"
)

// @title           Twitch Giveaway Backend API
// @version         1.0
// @description     API for running keyword giveaways in Twitch chat: sessions, winner draws, history and realtime events.

// @host      localhost:8080
// @BasePath  /api/v1

// @tag.name auth
// @tag.description Admin login and session management

// @tag.name giveaways
// @tag.description Giveaway lifecycle - start, end, winner draws, history

// @tag.name channels
// @tag.description Chat channels the bot listens to

func main() {
	cfg := config.Load()
	logger.Init("twitch-giveaway-backend", cfg.Debug)

	log := logger.Component("main")
	log.Info().Bool("debug", cfg.Debug).Str("store", cfg.Store).Msg("starting twitch giveaway backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Persistence is best-effort: if Redis is down the backend still runs,
	// keeping everything in memory.
	var (
		giveawayRepo giverepo.GiveawayRepository
		sessionRepo  authrepo.SessionRepository
	)
	if cfg.Store == "memory" {
		giveawayRepo = givememory.NewRepository()
		sessionRepo = authmemory.NewRepository()
		log.Info().Msg("using in-memory store")
	} else {
		redisClient, err := platformredis.Open(ctx, cfg)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, falling back to in-memory store")
			giveawayRepo = givememory.NewRepository()
			sessionRepo = authmemory.NewRepository()
		} else {
			defer redisClient.Close()
			giveawayRepo = cached.New(giveredis.NewRedisGiveawayRepository(redisClient), cache.New(redisClient))
			sessionRepo = authredis.NewRepository(redisClient)
			log.Info().Msg("connected to redis")
		}
	}

	hub := realtime.NewHub()
	chat := twitch.NewClient(cfg.Twitch)

	manager := service.NewGiveawayManager(giveawayRepo, hub, chat, cfg)
	chatRouter := service.NewChatEventRouter(manager, hub)

	chat.OnMessage(func(msg twitch.Message) {
		chatRouter.OnMessage(ctx, models.ChatEvent{
			Channel:   msg.Channel,
			Username:  msg.Username,
			Text:      msg.Text,
			Tags:      msg.Tags,
			Timestamp: msg.Timestamp,
		})
	})
	chat.OnStatus(func(event string, payload map[string]interface{}) {
		hub.Broadcast(event, payload)
	})
	hub.SetInboundHandler(func(event string, data json.RawMessage) {
		handleClientEvent(ctx, manager, hub, event, data)
	})

	go chat.Run(ctx)

	authSvc := authservice.NewService(sessionRepo, cfg)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	authhttp.NewAuthHandler(authSvc).RegisterRoutes(v1)
	giveawayhttp.NewGiveawayHandler(manager, chat).RegisterRoutes(v1, middleware.RequireSession(authSvc))

	router.GET("/ws", hub.Handler())

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "twitch-giveaway-backend",
			"anonymous": chat.Anonymous(),
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// handleClientEvent routes events sent by dashboard clients over the
// websocket back into the application. Unknown events are dropped.
func handleClientEvent(ctx context.Context, manager service.GiveawayManager, hub *realtime.Hub, event string, data json.RawMessage) {
	log := logger.Component("client_events")

	switch event {
	case "addParticipant":
		var payload struct {
			Channel  string `json:"channel"`
			Username string `json:"username"`
		}
		if err := json.Unmarshal(data, &payload); err != nil || payload.Channel == "" || payload.Username == "" {
			log.Debug().Str("event", event).Msg("malformed payload")
			return
		}
		manager.TryAddParticipant(ctx, payload.Channel, payload.Username)

	case "winnerAnnounced":
		// Dashboard-composed announcement, echoed to every observer as a
		// system chat line.
		var payload struct {
			Channel string `json:"channel"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &payload); err != nil || payload.Message == "" {
			log.Debug().Str("event", event).Msg("malformed payload")
			return
		}
		hub.Broadcast(service.EventChatMessage, map[string]interface{}{
			"channel":  payload.Channel,
			"username": models.SystemUsername,
			"message":  payload.Message,
		})

	default:
		log.Debug().Str("event", event).Msg("unknown client event")
	}
}
