package bootstrap

import (
	"context"
	"log"

	"reflecta-journal-be/internal/config"
	"reflecta-journal-be/internal/controller"
	"reflecta-journal-be/internal/handler"
	"reflecta-journal-be/internal/pkg/logger"
	"reflecta-journal-be/internal/repository/implementation"
	"reflecta-journal-be/internal/repository/memory"
	"reflecta-journal-be/internal/repository/unitofwork"
	"reflecta-journal-be/internal/service"
	"reflecta-journal-be/internal/websocket"
	"reflecta-journal-be/pkg/analysis"
	"reflecta-journal-be/pkg/llm/factory"
	"reflecta-journal-be/pkg/tts"

	pktNats "reflecta-journal-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	EntryController     controller.IEntryController
	ChatController      controller.IChatController
	HistoryController   controller.IHistoryController
	DialogueController  controller.IDialogueController
	AnalysisController  controller.IAnalysisController
	AnalyticsController controller.IAnalyticsController
	QuestionController  controller.IQuestionController
	SpeechController    controller.ISpeechController
	VoiceController     controller.IVoiceController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	location := cfg.Location()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		cfg.Keys.DeepSeek,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	analyzer := analysis.NewAnalyzer(llmProvider)
	ttsClient := tts.NewElevenLabsClient(cfg.Keys.ElevenLabs, cfg.Speech.VoiceID, cfg.Speech.ModelID)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)

	// In-Memory Session Storage
	chatSessionRepo := memory.NewChatSessionRepository()
	voiceSessionRepo := memory.NewVoiceSessionRepository()

	// Durable chat mirror (Redis)
	mirrorRepo := implementation.NewChatMirrorRepository(rdb)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.AnalyzeEntryTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.AnalyzeEntryTopic,
		uowFactory,
		analyzer,
		natsPub,
	)

	authService := service.NewAuthService(uowFactory)
	entryService := service.NewEntryService(uowFactory, publisherService, natsPub, location)
	chatService := service.NewChatMessageService(uowFactory, location)
	historyService := service.NewChatHistoryService(chatSessionRepo, mirrorRepo, uowFactory, natsPub, sysLogger)
	analysisService := service.NewAnalysisService(analyzer, historyService)
	dialogueService := service.NewDialogueService(analysisService, historyService)
	analyticsService := service.NewAnalyticsService(uowFactory, location)
	questionService := service.NewQuestionService(uowFactory, location)
	speechService := service.NewSpeechService(ttsClient, cfg.Voice.Language, sysLogger)
	voiceService := service.NewVoiceService(voiceSessionRepo, wsHub, cfg.Voice, wsLogger)

	// Voice capture frames arrive over the websocket; teardown on disconnect.
	wsHub.OnMessage = voiceService.HandleFrame
	wsHub.OnDisconnect = voiceService.Shutdown
	go wsHub.Run()

	// Push bus events (entry scored, history cleared) to connected clients.
	notificationService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		notificationService.Start()
	}

	streamHandler := handler.NewStreamHandler(wsHub, wsLogger)

	return &Container{
		AuthController:      controller.NewAuthController(authService),
		EntryController:     controller.NewEntryController(entryService),
		ChatController:      controller.NewChatController(chatService),
		HistoryController:   controller.NewHistoryController(historyService),
		DialogueController:  controller.NewDialogueController(dialogueService),
		AnalysisController:  controller.NewAnalysisController(analysisService),
		AnalyticsController: controller.NewAnalyticsController(analyticsService),
		QuestionController:  controller.NewQuestionController(questionService),
		SpeechController:    controller.NewSpeechController(speechService),
		VoiceController:     controller.NewVoiceController(voiceService),

		ConsumerService: consumerService,

		StreamHandler: streamHandler,
		WebSocketHub:  wsHub,
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaURL
	}
	return cfg.Ai.BaseURL
}
