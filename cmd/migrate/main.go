package main

import (
	"log"

	"staystrong-chat-be/internal/config"
	"staystrong-chat-be/internal/model"
	"staystrong-chat-be/pkg/database"
)

// Creates the pgvector extension and the knowledge_snippets table used when INDEX_SOURCE=postgres.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running migration for knowledge_snippets...")
	if err := database.Migrate(db, &model.KnowledgeSnippet{}); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}
	log.Println("✅ Migration complete")
}
