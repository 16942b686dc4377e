package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"healthcare-chatbot-be/internal/config"
	"healthcare-chatbot-be/internal/pkg/logger"
	"healthcare-chatbot-be/pkg/events"
	pktNats "healthcare-chatbot-be/pkg/nats"
)

func main() {
	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	auditLogger := logger.NewZapLogger(getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"), cfg.App.Environment == "production")
	defer auditLogger.Sync()

	// The publisher side owns the stream definition; connecting it once makes sure the stream exists.
	pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	pub.Close()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sub.Subscribe(ctx, pktNats.SubjectPrefix+">", "audit-log", func(ctx context.Context, event events.Event) error {
		auditLogger.Info("AUDIT", event.EventType(), map[string]interface{}{
			"occurred_at": event.Timestamp(),
			"payload":     event.Payload(),
		})
		if event.EventType() == events.TypeTriageEmergency {
			auditLogger.Warn("AUDIT", "Emergency triage recorded", event.Payload())
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	log.Println("✅ Audit consumer running, waiting for events...")
	<-ctx.Done()
	log.Println("Audit consumer stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
