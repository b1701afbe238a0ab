package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-analytics-be/internal/config"
	"ai-analytics-be/internal/controller"
	"ai-analytics-be/internal/ingest"
	"ai-analytics-be/internal/pkg/logger"
	"ai-analytics-be/internal/repository/contract"
	"ai-analytics-be/internal/repository/implementation"
	"ai-analytics-be/internal/repository/memory"
	redisrepo "ai-analytics-be/internal/repository/redis"
	"ai-analytics-be/internal/service"
	"ai-analytics-be/internal/websocket"
	"ai-analytics-be/pkg/cleaning"
	"ai-analytics-be/pkg/database"
	"ai-analytics-be/pkg/llm/factory"
	pktNats "ai-analytics-be/pkg/nats"
	"ai-analytics-be/pkg/nlq"
	"ai-analytics-be/pkg/report"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	DatasetController controller.IDatasetController
	QueryController   controller.IQueryController
	ChartController   controller.IChartController
	ReportController  controller.IReportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub

	// Held for shutdown
	NatsPublisher *pktNats.Publisher
	Logger        logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GroqAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if llmProvider != nil {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	} else {
		log.Printf("[INFO] No LLM Provider configured; assisted query tier disabled")
	}

	// Session Storage
	sessionRepo := newSessionRepository(cfg)

	// 2.5 Infrastructure
	// NATS mirror is optional; the local bus carries activity regardless.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// WebSocket Hub
	wsHub := websocket.NewHub(sysLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(cfg.App.ActivityTopic, pubSub)
	activityService := service.NewActivityService(publisherService, natsPub, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ActivityTopic, wsHub, sysLogger)

	// 3. Services
	locks := service.NewSessionLocks()
	loader := ingest.NewLoader(cfg.Upload.MaxFileSizeMB)
	cleaner := cleaning.NewEngine()
	queryEngine := nlq.NewEngine(llmProvider, time.Duration(cfg.Ai.DelegateTimeoutSeconds)*time.Second, sysLogger)
	compiler := report.NewCompiler(cfg.Report.Dir, cfg.Report.Title)

	sessionService := service.NewSessionService(sessionRepo, locks, activityService)
	datasetService := service.NewDatasetService(sessionRepo, loader, cleaner, locks, activityService)
	queryService := service.NewQueryService(sessionRepo, queryEngine, locks, activityService)
	chartService := service.NewChartService(sessionRepo, locks, activityService)
	reportService := service.NewReportService(sessionRepo, compiler, locks, activityService)

	// 4. Controllers
	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		DatasetController: controller.NewDatasetController(datasetService),
		QueryController:   controller.NewQueryController(queryService),
		ChartController:   controller.NewChartController(chartService),
		ReportController:  controller.NewReportController(reportService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		NatsPublisher:   natsPub,
		Logger:          sysLogger,
	}
}

// newSessionRepository picks the session store backend. Memory is the
// default; redis and postgres hold sessions across restarts.
func newSessionRepository(cfg *config.Config) contract.ISessionRepository {
	ttl := time.Duration(cfg.Store.SessionTTLMinutes) * time.Minute

	switch cfg.Store.Backend {
	case "redis":
		opt, err := redis.ParseURL(cfg.Store.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.Store.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		return redisrepo.NewSessionRepository(rdb, ttl)

	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect to database: %v", err)
		}
		repo, err := implementation.NewSessionRepository(db)
		if err != nil {
			log.Fatalf("[FATAL] Failed to prepare session store: %v", err)
		}
		return repo

	default:
		return memory.NewSessionRepository(ttl)
	}
}
