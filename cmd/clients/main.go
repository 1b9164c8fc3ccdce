package main

import (
	"os"

	"github.com/julienschmidt/httprouter"

	attachmenthandler "lumiere/internal/attachments/handler"
	attachmentservice "lumiere/internal/attachments/service"
	authhandler "lumiere/internal/auth/handler"
	authservice "lumiere/internal/auth/service"
	clienthandler "lumiere/internal/clients/handler"
	"lumiere/internal/clients/repository"
	clientservice "lumiere/internal/clients/service"
	"lumiere/internal/clients/validator"
	reservationhandler "lumiere/internal/reservations/handler"
	reservationservice "lumiere/internal/reservations/service"
	"lumiere/pkg/app"
	"lumiere/pkg/config"
	"lumiere/pkg/contracts"
	"lumiere/pkg/kafka"
	kafka_config "lumiere/pkg/kafka/config"
)

const ServiceName = "clients"

// apiHandler mounts every protected route group on one router.
type apiHandler struct {
	handlers []contracts.Handler
}

func (a *apiHandler) RegisterRoutes(router *httprouter.Router) {
	for _, h := range a.handlers {
		h.RegisterRoutes(router)
	}
}

func main() {
	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Clients service")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	producer := initProducer(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Warn("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	api, authHandler := initHandlers(cfg, producer)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, api, authHandler)
	serverApp.Run()
}

// initProducer wires the event stream when KAFKA_ENABLED is set.
// Without it the service runs with events disabled.
func initProducer(cfg *config.Config) *kafka.Producer {
	if os.Getenv(kafka_config.EnvKafkaEnabled) != "true" {
		cfg.Log.Info("Kafka disabled, events will not be published")
		return nil
	}

	producer, err := kafka.NewProducer(kafka_config.Load(), kafka.TopicDossierEvents, kafka.TopicDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	cfg.Log.Info("Kafka producer initialized", "topic", kafka.TopicDossierEvents)
	return producer
}

func initHandlers(cfg *config.Config, producer *kafka.Producer) (contracts.Handler, contracts.Handler) {
	clientValidator := validator.NewClientValidator(cfg.Log)
	clientRepo := repository.NewMongoClientRepository(cfg)
	lockRepo := repository.NewDayLockRepository(cfg)

	// The nil interface dance matters: a nil *kafka.Producer stored in a
	// non-nil interface would dodge the service's nil check.
	var events clientservice.EventPublisher
	var reservationEvents reservationservice.EventPublisher
	if producer != nil {
		events = producer
		reservationEvents = producer
	}

	attachmentService := attachmentservice.NewAttachmentService(cfg)
	clientService := clientservice.NewClientService(clientRepo, clientValidator, cfg, events, attachmentService)
	reservationService := reservationservice.NewReservationService(clientRepo, lockRepo, clientValidator, cfg, reservationEvents)
	authService := authservice.NewAuthService(cfg)

	api := &apiHandler{handlers: []contracts.Handler{
		clienthandler.NewClientHandler(clientService, cfg.Log),
		reservationhandler.NewReservationHandler(reservationService, cfg.Log),
		attachmenthandler.NewAttachmentHandler(attachmentService, cfg.Log),
	}}

	cfg.Log.Info("Clients service initialized", "database", cfg.MongoDatabaseName)
	return api, authhandler.NewAuthHandler(authService, cfg.Log)
}
