package main

import (
	"context"
	"log"

	"prolens/profile-analyzer/internal/config"
	"prolens/profile-analyzer/internal/repositories"
	"prolens/profile-analyzer/internal/services"
)

// Rebuilds the Qdrant similarity index from the profiles table. Run after
// changing the embedding model or wiping the collection.
func main() {
	log.Println("🚀 Starting profile reindex...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	profileRepo := repositories.NewProfileRepository(db)

	embeddingService, err := services.NewEmbeddingService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding service: %v", err)
	}

	indexService, err := services.NewProfileIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := indexService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	indexer := services.NewProfileIndexer(embeddingService, indexService)

	profiles, err := profileRepo.FindAll()
	if err != nil {
		log.Fatalf("❌ Failed to list profiles: %v", err)
	}

	ctx := context.Background()

	indexed := 0
	skipped := 0
	for _, profile := range profiles {
		if profile.Summary == "" {
			skipped++
			continue
		}

		if err := indexer.IndexProfile(ctx, profile.UserID, profile.Summary); err != nil {
			log.Printf("⚠️  Failed to index profile %s: %v\n", profile.UserID, err)
			skipped++
			continue
		}

		indexed++
		log.Printf("✅ Indexed profile %s\n", profile.UserID)
	}

	log.Printf("🎉 Reindex complete: %d indexed, %d skipped\n", indexed, skipped)
}
