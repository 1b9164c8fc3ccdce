package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"lumiere/pkg/kafka"
	kafka_config "lumiere/pkg/kafka/config"
	"lumiere/pkg/kafka/middleware"
	"lumiere/pkg/logger"
)

const groupID = "lumiere-auditor"

// The auditor tails the dossier event stream and writes an audit line
// per event. It is the consuming end of the events the clients service
// produces.
func main() {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.FormatJSON,
		Service: "auditor",
	})

	consumer, err := kafka.NewConsumer(
		kafka_config.Load(),
		kafka.TopicDossierEvents,
		groupID,
		kafka.TopicDLQ,
		auditHandler(log),
	)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(middleware.LoggingConsumerMiddleware())
	consumer.Use(middleware.MetricsConsumerMiddleware())

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		sig := <-shutdown
		log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	log.Info("Starting auditor", "topic", kafka.TopicDossierEvents, "group_id", groupID)
	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}
	log.Info("Auditor stopped")
}

func auditHandler(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		eventType := msg.Headers[kafka.HeaderEventType]

		switch eventType {
		case kafka.EventClientCreated, kafka.EventClientUpdated, kafka.EventClientDeleted:
			var event kafka.ClientEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return err
			}
			log.Info("Client event",
				"event_type", eventType,
				"client_id", event.ClientID,
				"first_name", event.FirstName,
				"last_name", event.LastName,
			)

		case kafka.EventReservationAdmitted, kafka.EventReservationRemoved, kafka.EventReservationReplaced:
			var event kafka.ReservationEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return err
			}
			log.Info("Reservation event",
				"event_type", eventType,
				"client_id", event.ClientID,
				"reservation_id", event.ReservationID,
				"start", event.Start,
				"end", event.End,
				"count", event.Count,
			)

		default:
			log.Warn("Unknown event type", "event_type", eventType, "key", msg.Key)
		}

		return nil
	}
}
