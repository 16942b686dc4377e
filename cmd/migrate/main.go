package main

import (
	"log"

	"healthcare-chatbot-be/internal/config"
	"healthcare-chatbot-be/internal/model"
	"healthcare-chatbot-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("[FATAL] DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("[FATAL] connect database: %v", err)
	}

	// gen_random_uuid() lives in pgcrypto before Postgres 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[WARN] pgcrypto extension: %v", err)
	}

	// Parents before children so foreign keys resolve.
	tables := []struct {
		name  string
		model any
	}{
		{"users", &model.User{}},
		{"chat_sessions", &model.ChatSession{}},
		{"chat_messages", &model.ChatMessage{}},
		{"appointments", &model.Appointment{}},
	}

	for _, t := range tables {
		if err := db.AutoMigrate(t.model); err != nil {
			log.Fatalf("[FATAL] migrate %s: %v", t.name, err)
		}
		log.Printf("[INFO] migrated %s", t.name)
	}

	log.Printf("[INFO] schema ready (%d tables)", len(tables))
}
