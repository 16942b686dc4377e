package bootstrap

import (
	"context"
	"log"
	"strings"

	"healthcare-chatbot-be/internal/config"
	"healthcare-chatbot-be/internal/controller"
	"healthcare-chatbot-be/internal/pkg/logger"
	"healthcare-chatbot-be/internal/pkg/mailer"
	"healthcare-chatbot-be/internal/pkg/serverutils"
	"healthcare-chatbot-be/internal/pkg/token"
	"healthcare-chatbot-be/internal/repository/memory"
	"healthcare-chatbot-be/internal/repository/unitofwork"
	"healthcare-chatbot-be/internal/service"
	"healthcare-chatbot-be/pkg/events"
	"healthcare-chatbot-be/pkg/llm/factory"
	"healthcare-chatbot-be/pkg/speech"
	"healthcare-chatbot-be/pkg/triage"

	pktNats "healthcare-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	ChatbotController     controller.IChatbotController
	DoctorController      controller.IDoctorController
	AppointmentController controller.IAppointmentController
	VoiceController       controller.IVoiceController
	HealthController      controller.IHealthController

	// Middleware
	AuthMiddleware fiber.Handler
	RateLimiter    *serverutils.RateLimiter

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	c.Logger = sysLogger

	var emailService mailer.IEmailService
	if cfg.SMTP.Enabled() {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Printf("[INFO] SMTP not configured, appointment e-mails will only be logged")
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Providers
	llmProvider, err := factory.NewLLMProvider(context.Background(), factory.Config{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OpenAIKey:     cfg.Keys.OpenAI,
		GeminiKey:     cfg.Keys.GoogleGemini,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	speechProvider := speech.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.TranscriptionModel, cfg.Ai.SpeechModel)
	doctorRepo := memory.NewDoctorRepository(memory.DefaultDoctors())

	// 4. Infrastructure
	eventPublisher := c.connectNats(cfg.App.NatsURL)
	rdb := c.connectRedis(cfg.App.RedisURL)

	c.RateLimiter = serverutils.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.Window, rdb)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.AppointmentTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.AppointmentTopic, emailService, sysLogger)

	authService := service.NewAuthService(uowFactory, tokens, eventPublisher, sysLogger)
	chatbotService := service.NewChatbotService(
		uowFactory,
		llmProvider,
		triage.NewKeywordClassifier(),
		eventPublisher,
		sysLogger,
		llmLogger,
	)
	doctorService := service.NewDoctorService(doctorRepo)
	appointmentService := service.NewAppointmentService(uowFactory, doctorRepo, publisherService, eventPublisher, sysLogger)
	voiceService := service.NewVoiceService(speechProvider, sysLogger)

	// 6. Controllers
	c.AuthMiddleware = serverutils.JwtMiddleware(controller.NewTokenAuthenticator(authService))
	c.AuthController = controller.NewAuthController(authService)
	c.ChatbotController = controller.NewChatbotController(chatbotService)
	c.DoctorController = controller.NewDoctorController(doctorService)
	c.AppointmentController = controller.NewAppointmentController(appointmentService)
	c.VoiceController = controller.NewVoiceController(voiceService)
	c.HealthController = controller.NewHealthController()

	return c
}

// connectNats returns nil when no URL is set, the server cannot be reached, or the EVENTS
// stream cannot be ensured; services skip audit events in that case.
func (c *Container) connectNats(url string) events.Publisher {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	natsPub, err := pktNats.NewPublisher(url)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		return nil
	}
	c.closers = append(c.closers, natsPub.Close)
	return natsPub
}

// connectRedis returns nil unless the server answers a ping; the rate limiter then keeps
// its buckets in process.
func (c *Container) connectRedis(url string) *redis.Client {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		return nil
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return rdb
}

// Close releases broker connections and flushes logs.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
