package bootstrap

import (
	"log"

	"quicknote-be/internal/collection"
	"quicknote-be/internal/config"
	"quicknote-be/internal/controller"
	"quicknote-be/internal/pkg/logger"
	"quicknote-be/internal/repository/unitofwork"
	"quicknote-be/internal/service"
	"quicknote-be/pkg/llm"
	"quicknote-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	NoteController    controller.INoteController
	SummaryController controller.ISummaryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Completion Provider
	// A missing provider is not fatal at startup: summarization requests
	// fail with a configuration error while the rest of the app works.
	var baseURL string
	switch cfg.Ai.Provider {
	case "ollama":
		baseURL = cfg.Ai.OllamaBaseURL
	default:
		baseURL = cfg.Ai.NvidiaBaseURL
	}
	var llmProvider llm.LLMProvider
	provider, err := factory.NewLLMProvider(cfg.Ai.Provider, cfg.Ai.Model, baseURL, cfg.Ai.NvidiaAPIKey)
	if err != nil {
		log.Printf("[WARN] LLM provider unavailable: %v", err)
	} else {
		llmProvider = provider
		log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.Provider)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.ActivityTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ActivityTopic, sysLogger)

	authService := service.NewAuthService(uowFactory)
	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)
	summaryService := service.NewSummaryService(llmProvider, sysLogger)

	registry := collection.NewRegistry(noteService, summaryService, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService, registry),
		NoteController:    controller.NewNoteController(registry),
		SummaryController: controller.NewSummaryController(summaryService),

		ConsumerService: consumerService,
	}
}
