package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"dorry-backend/internal/config"
	"dorry-backend/internal/database"
	httpapi "dorry-backend/internal/http"
	"dorry-backend/internal/logger"
	"dorry-backend/internal/repository"
	"dorry-backend/internal/service"
	"dorry-backend/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "dorry-server")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Environmental lookups are cached in redis when reachable; the
	// in-process cache keeps generation usable without it.
	var kv store.KV
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err == nil {
		kv = store.NewRedisKV(redisClient)
	} else {
		log.Warn("Redis unavailable, using in-process weather cache", zap.Error(err))
		kv = store.NewMemoryKV()
	}

	var (
		db           *sql.DB
		projectsRepo repository.ProjectsRepository
		designsRepo  repository.DesignsRepository
		boqsRepo     repository.BOQRepository
		chatRepo     repository.ChatRepository
	)
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			log.Info("DB enabled for dorry-server")
		} else {
			log.Warn("DB enabled but connection failed, falling back to in-memory repositories", zap.Error(err))
		}
	}
	if db != nil {
		projectsRepo = repository.NewPostgresProjectsRepository(db)
		designsRepo = repository.NewPostgresDesignsRepository(db)
		boqsRepo = repository.NewPostgresBOQRepository(db)
		chatRepo = repository.NewPostgresChatRepository(db)
	} else {
		projectsRepo = repository.NewMemoryProjectsRepo()
		designsRepo = repository.NewMemoryDesignsRepo()
		boqsRepo = repository.NewMemoryBOQRepo()
		chatRepo = repository.NewMemoryChatRepo()
	}

	weather := service.NewWeatherClient(cfg.Weather, kv, log)
	tts := service.NewTTSClient(cfg.TTS, log)

	priceTable := service.DefaultPriceTable()
	for material, price := range cfg.Pricing {
		priceTable[material] = service.MaterialPrice{
			PricePerUnit: price.PricePerUnit,
			Unit:         price.Unit,
		}
	}
	estimator := service.NewEstimator(priceTable)

	designSvc := service.NewDesignService(projectsRepo, designsRepo, boqsRepo, chatRepo, weather, estimator, log)
	chatSvc := service.NewChatService(designsRepo, boqsRepo, chatRepo, estimator, tts, log)

	router := httpapi.NewRouter(log)
	router.RegisterAPIRoutes(
		httpapi.NewProjectsHandler(projectsRepo, log),
		httpapi.NewDesignsHandler(designsRepo, designSvc, log),
		httpapi.NewBOQHandler(projectsRepo, boqsRepo, estimator, log),
		httpapi.NewChatHandler(chatSvc, tts, log),
		httpapi.NewEnvironmentHandler(weather, log),
	)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server stopped", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
	if db != nil {
		_ = db.Close()
	}
}
