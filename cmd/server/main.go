package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wordguess/internal/cache"
	"wordguess/internal/config"
	"wordguess/internal/model"
	"wordguess/internal/poller"
	"wordguess/internal/repository"
	"wordguess/internal/service"
	"wordguess/internal/store"
	"wordguess/internal/transport/rest"
	"wordguess/internal/transport/ws"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	// MongoDB connection (word list + round archive)
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	log.Info().Msg("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Event store + leaderboard: Redis when configured, in-memory otherwise
	var (
		eventStore  store.EventStore
		leaderboard cache.LeaderboardCache
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal().Err(err).Msg("failed to ping Redis")
		}
		log.Info().Msg("connected to Redis")
		eventStore = store.NewRedisStore(rdb)
		leaderboard = cache.NewLeaderboardCache(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, using in-memory event store")
		memStore := store.NewMemoryStore()
		defer memStore.Close()
		eventStore = memStore
		leaderboard = cache.NewMemoryLeaderboard()
	}

	// Repositories
	wordRepo := repository.NewWordRepo(db)
	roundRepo := repository.NewRoundRepo(db)

	// Live feed hub
	wsHub := ws.NewHub(log)

	// Services
	authSvc := service.NewAuthService(cfg.HostUsername, cfg.HostPassword, cfg.JWTSecret)
	relaySvc := service.NewRelayService(eventStore, log)
	gameSvc := service.NewGameService(wordRepo, roundRepo, leaderboard, model.GameConfig{
		RoundDuration:        cfg.RoundDuration,
		RevealInterval:       cfg.RevealInterval,
		DoublePointsDuration: cfg.DoublePointsDuration,
	}, log)
	applySvc := service.NewApplyService(gameSvc, log)

	// Notification sinks: live feed always, alerts webhook when configured
	notifiers := service.MultiNotifier{wsHub}
	if cfg.AlertsWebhookURL != "" {
		notifiers = append(notifiers, service.NewAlertsClient(cfg.AlertsWebhookURL, log))
		log.Info().Msg("alerts webhook configured")
	}
	gameSvc.SetNotifier(notifiers)

	// Create router with container
	container := &rest.Container{
		AuthService:  authSvc,
		RelayService: relaySvc,
		GameService:  gameSvc,
		ApplyService: applySvc,
		Leaderboard:  leaderboard,
		WordRepo:     wordRepo,
		RoundRepo:    roundRepo,
		WSHub:        wsHub,
		WSHandler:    ws.NewHandler(wsHub, authSvc, log),
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	// Background loops: round clock and the consumer-side poller
	loopCtx, stopLoops := context.WithCancel(ctx)
	defer stopLoops()

	go gameSvc.RunClock(loopCtx)

	if cfg.PollerEnabled {
		p := poller.New(cfg.PollerBaseURL, applySvc, log)
		go p.Run(loopCtx)
		log.Info().Str("baseURL", cfg.PollerBaseURL).Msg("poller started")
	} else {
		log.Info().Msg("poller disabled")
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	stopLoops()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
