package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"ndu/talent-platform/internal/config"
	"ndu/talent-platform/internal/handlers"
	"ndu/talent-platform/internal/repositories"
	"ndu/talent-platform/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	studentRepo := repositories.NewStudentRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	achievementRepo := repositories.NewAchievementRepository(db)
	certificateRepo := repositories.NewCertificateRepository(db)
	orgRepo := repositories.NewOrganizationRepository(db)
	invitationRepo := repositories.NewInvitationRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	referenceRepo := repositories.NewReferenceRepository(db)
	newsRepo := repositories.NewNewsRepository(db)
	jobRepo := repositories.NewScoreJobRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDirs(); err != nil {
		log.Fatalf("❌ Failed to create upload directories: %v", err)
	}

	pdfExtractor := services.NewPDFExtractor()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize the scoring pipeline
	aggregator := services.NewAggregatorService(
		studentRepo,
		projectRepo,
		achievementRepo,
		certificateRepo,
	)
	cohortService := services.NewCohortService(
		studentRepo,
		aggregator,
		cfg.Scoring.CohortFanOut,
		cfg.Scoring.CohortLimit,
	)
	scorer := services.NewScorerService(
		studentRepo,
		cohortService,
		geminiService,
		cfg.Scoring.RetryMaxAttempts,
	)
	storyService := services.NewStoryService(
		studentRepo,
		geminiService,
		cfg.Scoring.RetryMaxAttempts,
	)
	recommender := services.NewRecommenderService(
		aggregator,
		geminiService,
		cfg.Scoring.RetryMaxAttempts,
	)
	matcher := services.NewMatcherService(
		aggregator,
		geminiService,
		qdrantService,
		pdfExtractor,
	)
	log.Println("✅ Scoring pipeline initialized")

	// Initialize worker
	worker := services.NewWorker(
		jobRepo,
		scorer,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	studentHandler := handlers.NewStudentHandler(studentRepo, aggregator, matcher)
	profileHandler := handlers.NewProfileHandler(
		studentRepo,
		projectRepo,
		achievementRepo,
		certificateRepo,
		worker,
	)
	scoreHandler := handlers.NewScoreHandler(scorer, worker, jobRepo)
	aiHandler := handlers.NewAIHandler(storyService, recommender)
	orgHandler := handlers.NewOrganizationHandler(orgRepo, studentRepo)
	projectHandler := handlers.NewProjectHandler(projectRepo, orgRepo, matcher)
	applicationHandler := handlers.NewApplicationHandler(
		applicationRepo,
		invitationRepo,
		projectRepo,
		studentRepo,
	)
	referenceHandler := handlers.NewReferenceHandler(referenceRepo)
	newsHandler := handlers.NewNewsHandler(newsRepo)
	uploadHandler := handlers.NewUploadHandler(storageService, cfg.Storage.MaxFileSize)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "NDU Talent Platform API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Actor-Id, X-Actor-Role",
	}))

	app.Use(handlers.ActorMiddleware())

	// Static uploads
	app.Static("/uploads", cfg.Storage.UploadPath)

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Students
	api.Get("/students", studentHandler.HandleList)
	api.Post("/students", studentHandler.HandleCreate)
	api.Get("/students/rankings", studentHandler.HandleRankings)
	api.Get("/students/:id", studentHandler.HandleGet)
	api.Patch("/students/:id", studentHandler.HandleUpdate)
	api.Delete("/students/:id", studentHandler.HandleDelete)
	api.Get("/students/:id/snapshot", studentHandler.HandleGetSnapshot)
	api.Post("/students/:id/reindex", studentHandler.HandleReindex)
	api.Patch("/students/:id/status", studentHandler.HandleUpdateStatus)

	// Student profile collections
	api.Get("/students/:id/projects", profileHandler.HandleListProjects)
	api.Post("/students/:id/projects", profileHandler.HandleCreateProject)
	api.Delete("/students/:id/projects/:projectId", profileHandler.HandleDeleteProject)
	api.Get("/students/:id/achievements", profileHandler.HandleListAchievements)
	api.Post("/students/:id/achievements", profileHandler.HandleCreateAchievement)
	api.Delete("/students/:id/achievements/:achievementId", profileHandler.HandleDeleteAchievement)
	api.Get("/students/:id/certificates", profileHandler.HandleListCertificates)
	api.Post("/students/:id/certificates", profileHandler.HandleCreateCertificate)
	api.Delete("/students/:id/certificates/:certificateId", profileHandler.HandleDeleteCertificate)

	// Scoring
	api.Post("/students/:id/score", scoreHandler.HandleRecompute)
	api.Post("/students/:id/score/jobs", scoreHandler.HandleEnqueue)
	api.Get("/score-jobs/:id", scoreHandler.HandleGetJob)

	// Generative features
	api.Get("/stories/top", aiHandler.HandleTopStories)
	api.Get("/students/:id/recommendations", aiHandler.HandleRecommendations)

	// Organizations
	api.Get("/organizations", orgHandler.HandleList)
	api.Post("/organizations", orgHandler.HandleCreate)
	api.Get("/organizations/:id", orgHandler.HandleGet)
	api.Patch("/organizations/:id", orgHandler.HandleUpdate)
	api.Delete("/organizations/:id", orgHandler.HandleDelete)
	api.Patch("/organizations/:id/status", orgHandler.HandleUpdateStatus)
	api.Post("/organizations/:id/members/:studentId", orgHandler.HandleAddMember)
	api.Delete("/organizations/:id/members/:studentId", orgHandler.HandleRemoveMember)

	// Projects and openings
	api.Get("/projects/openings", projectHandler.HandleListOpenings)
	api.Get("/projects/:id", projectHandler.HandleGet)
	api.Post("/organizations/:id/projects", projectHandler.HandleCreate)
	api.Patch("/projects/:id", projectHandler.HandleUpdate)
	api.Delete("/projects/:id", projectHandler.HandleDelete)
	api.Post("/projects/:id/matches", projectHandler.HandleMatches)

	// Applications and invitations
	api.Post("/projects/:id/applications", applicationHandler.HandleApply)
	api.Get("/projects/:id/applications", applicationHandler.HandleListProjectApplications)
	api.Patch("/applications/:id", applicationHandler.HandleRespondApplication)
	api.Post("/projects/:id/invitations/:studentId", applicationHandler.HandleInvite)
	api.Get("/students/:id/invitations", applicationHandler.HandleListStudentInvitations)
	api.Patch("/invitations/:id", applicationHandler.HandleRespondInvitation)

	// Reference data
	api.Get("/faculties", referenceHandler.HandleListFaculties)
	api.Post("/faculties", referenceHandler.HandleCreateFaculty)
	api.Delete("/faculties/:id", referenceHandler.HandleDeleteFaculty)
	api.Get("/categories", referenceHandler.HandleListCategories)
	api.Post("/categories", referenceHandler.HandleCreateCategory)
	api.Delete("/categories/:id", referenceHandler.HandleDeleteCategory)

	// News
	api.Get("/news", newsHandler.HandleList)
	api.Post("/news", newsHandler.HandleCreate)
	api.Get("/news/:slug", newsHandler.HandleGetBySlug)
	api.Patch("/news/:id", newsHandler.HandleUpdate)
	api.Delete("/news/:id", newsHandler.HandleDelete)

	// Uploads
	api.Post("/upload/:type", uploadHandler.HandleUpload)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "NDU Talent Platform API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/students",
				"GET /api/v1/students/rankings",
				"POST /api/v1/students/:id/score/jobs",
				"GET /api/v1/stories/top",
				"GET /api/v1/students/:id/recommendations",
				"GET /api/v1/projects/openings",
				"POST /api/v1/projects/:id/matches",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
