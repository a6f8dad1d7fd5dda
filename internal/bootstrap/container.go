package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-billing-be/internal/config"
	"ai-billing-be/internal/controller"
	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/internal/pkg/mailer"
	"ai-billing-be/internal/repository/unitofwork"
	"ai-billing-be/internal/service"
	"ai-billing-be/pkg/assistant"
	"ai-billing-be/pkg/assistant/state"
	"ai-billing-be/pkg/assistant/store"
	"ai-billing-be/pkg/assistant/tool"
	"ai-billing-be/pkg/llm/factory"
	pktNats "ai-billing-be/pkg/nats"
	"ai-billing-be/pkg/payment"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const outboxTopicName = "OUTBOX_DELIVERY"

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	BoletoController    controller.IBoletoController
	ContactController   controller.IContactController
	OutboxController    controller.IOutboxController
	IdentityController  controller.IIdentityController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

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

	// 3. Conversation Store
	conversationStore := store.NewRedisStore(
		rdb,
		time.Duration(cfg.Assistant.StateTTLSeconds)*time.Second,
		time.Duration(cfg.Assistant.ConfirmationTTLSeconds)*time.Second,
	)

	// 4. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Payment Provider
	paymentProvider := payment.NewStubProvider()

	// 6. Services
	publisherService := service.NewPublisherService(outboxTopicName, pubSub)
	contactService := service.NewContactService(uowFactory)
	billingService := service.NewBillingService(uowFactory, paymentProvider, publisherService, natsPub, sysLogger)
	messagingService := service.NewMessagingService(uowFactory, publisherService, natsPub)
	identityService := service.NewIdentityService(uowFactory, cfg.Auth)

	consumerService := service.NewConsumerService(
		pubSub,
		outboxTopicName,
		uowFactory,
		emailService,
		natsPub,
	)

	// 7. Assistant Pipeline
	registry := tool.NewRegistry().
		Register(state.IntentCreateBoleto, tool.NewCreateBoletoTool(billingService, contactService)).
		Register(state.IntentCancelBoleto, tool.NewCancelBoletoTool(billingService)).
		Register(state.IntentCheckStatus, tool.NewBoletoStatusTool(billingService)).
		Register(state.IntentSendMessage, tool.NewQueueMessageTool(messagingService, contactService)).
		Register(state.IntentListBoletos, tool.NewListBoletosTool(billingService))

	pipeline := assistant.NewPipeline(llmProvider, registry, sysLogger)
	assistantService := service.NewAssistantService(pipeline, conversationStore, sysLogger)

	// 8. Audit Trail
	auditService := service.NewAuditService(natsSub, sysLogger)
	auditService.Start()

	// 9. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		BoletoController:    controller.NewBoletoController(billingService),
		ContactController:   controller.NewContactController(contactService),
		OutboxController:    controller.NewOutboxController(messagingService),
		IdentityController:  controller.NewIdentityController(identityService),
		ConsumerService:     consumerService,
	}
}
