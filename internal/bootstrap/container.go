package bootstrap

import (
	"log"

	"ai-transcript-notes-be/internal/config"
	"ai-transcript-notes-be/internal/controller"
	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/internal/repository/memory"
	"ai-transcript-notes-be/internal/repository/rediscache"
	"ai-transcript-notes-be/internal/repository/unitofwork"
	"ai-transcript-notes-be/internal/service"
	"ai-transcript-notes-be/pkg/events"
	"ai-transcript-notes-be/pkg/extraction"
	pktNats "ai-transcript-notes-be/pkg/nats"

	"gorm.io/gorm"
)

const natsDurable = "notes-activity"

type Container struct {
	// Controllers
	MessageController    controller.IMessageController
	EntityController     controller.IEntityController
	LLMConfigController  controller.ILLMConfigController
	PlaygroundController controller.IPlaygroundController
	LogController        controller.ILogController

	// Background Services (Exposed for main.go to run). Nil when EVENT_BUS=none.
	ActivityService service.IActivityService

	Logger logger.ILogger

	closers []func() error
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	configStore, err := config.NewLLMConfigStore(cfg.LLM.ConfigPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load LLM configuration: %v", err)
	}

	// 2. Probe cache
	var probeCache extraction.ProbeCache = memory.NewConnectivityCache(cfg.LLM.ProbeTTL)
	if cfg.Cache.Backend == "redis" {
		redisCache, err := rediscache.NewConnectivityCache(cfg.Cache.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis, using in-memory probe cache: %v", err)
		} else {
			probeCache = redisCache
			c.closers = append(c.closers, redisCache.Close)
		}
	}

	// 3. Event Bus
	var publisher events.Publisher = events.NopPublisher{}
	var source service.EventSource
	switch cfg.Events.Bus {
	case "nats":
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			break
		}
		natsSub, err := pktNats.NewSubscriber(cfg.Events.NatsURL, natsDurable)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			source = natsSub
			c.closers = append(c.closers, natsSub.Close)
		}
		publisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	case "none":
	default:
		bus := events.NewGoChannelBus(nil)
		publisher = bus
		source = bus
		c.closers = append(c.closers, bus.Close)
	}
	log.Printf("[INFO] Using event bus: %s", cfg.Events.Bus)

	// 4. Services
	adapterFactory := service.NewAdapterFactory(configStore, probeCache, cfg.LLM.ProbeTTL, sysLogger)
	extractionService := service.NewExtractionService(uowFactory, adapterFactory, publisher, sysLogger)
	messageService := service.NewMessageService(uowFactory, extractionService, publisher, sysLogger)
	entityService := service.NewEntityService(uowFactory, publisher, sysLogger)
	llmConfigService := service.NewLLMConfigService(configStore, sysLogger)
	playgroundService := service.NewPlaygroundService(adapterFactory, configStore, sysLogger)
	if source != nil {
		c.ActivityService = service.NewActivityService(source, sysLogger)
	}

	// 5. Controllers
	c.MessageController = controller.NewMessageController(messageService)
	c.EntityController = controller.NewEntityController(entityService)
	c.LLMConfigController = controller.NewLLMConfigController(llmConfigService)
	c.PlaygroundController = controller.NewPlaygroundController(playgroundService)
	c.LogController = controller.NewLogController(sysLogger)

	return c
}

// Close releases the event bus and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Printf("[WARN] Failed to close resource: %v", err)
		}
	}
	_ = c.Logger.Sync()
}
