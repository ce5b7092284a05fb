package main

import (
	"context"
	"log"
	"os"
	"strings"

	"ndu/talent-platform/internal/config"
	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
	"ndu/talent-platform/internal/services"
)

// Rebuilds the semantic index from the database. Run after changing the
// embedding model or wiping the Qdrant collection.
func main() {
	log.Println("🚀 Starting student reindex...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	studentRepo := repositories.NewStudentRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	achievementRepo := repositories.NewAchievementRepository(db)
	certificateRepo := repositories.NewCertificateRepository(db)

	aggregator := services.NewAggregatorService(
		studentRepo,
		projectRepo,
		achievementRepo,
		certificateRepo,
	)
	matcher := services.NewMatcherService(
		aggregator,
		geminiService,
		qdrantService,
		services.NewPDFExtractor(),
	)

	ctx := context.Background()

	// Only approved students are discoverable, so only they get indexed
	students, err := studentRepo.FindAll(repositories.StudentFilter{
		Status: string(models.StudentStatusApproved),
	})
	if err != nil {
		log.Fatalf("❌ Failed to list students: %v", err)
	}

	log.Printf("📄 Found %d approved students", len(students))

	successCount := 0
	failCount := 0

	for i, student := range students {
		if err := matcher.IndexStudent(ctx, student.ID); err != nil {
			log.Printf("   ❌ Failed to index %s %s (%s): %v",
				student.FirstName, student.LastName, student.ID, err)
			failCount++
			continue
		}

		successCount++
		if (i+1)%10 == 0 || i == len(students)-1 {
			log.Printf("   📊 Progress: %d/%d students indexed", i+1, len(students))
		}
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Reindex Summary:")
	log.Printf("   ✅ Successful: %d students", successCount)
	log.Printf("   ❌ Failed: %d students", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some students failed to index. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All students indexed successfully!")
}
