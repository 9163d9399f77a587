// Command seed-knowledge creates the Weaviate content class and loads the
// built-in baseline teaching material. Run once against a fresh deployment;
// re-running adds duplicate baseline entries.
//
// Reads KNOWLEDGE_HOST, KNOWLEDGE_SCHEME and KNOWLEDGE_CLASS_NAME from the
// environment, with the same defaults as the server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/quizforge/quizmod-backend/internal/adapter/knowledge"
	"github.com/quizforge/quizmod-backend/internal/config"
)

func main() {
	cfg := config.KnowledgeConfig{
		Host:      envOr("KNOWLEDGE_HOST", "localhost:8081"),
		Scheme:    envOr("KNOWLEDGE_SCHEME", "http"),
		ClassName: envOr("KNOWLEDGE_CLASS_NAME", "EducationalContent"),
		Timeout:   30 * time.Second,
		TopK:      3,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := knowledge.New(cfg, logger)
	if err != nil {
		log.Fatalf("create knowledge store: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	if err := store.SeedBaseline(ctx); err != nil {
		log.Fatalf("seed baseline: %v", err)
	}

	logger.Info("knowledge base seeded", slog.String("class", cfg.ClassName))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
