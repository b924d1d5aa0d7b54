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

	"hradmin/recruitment-api/internal/config"
	"hradmin/recruitment-api/internal/handlers"
	"hradmin/recruitment-api/internal/middleware"
	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
	"hradmin/recruitment-api/internal/services"
	"hradmin/recruitment-api/internal/session"
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
	userRepo := repositories.NewUserRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	staffPlanRepo := repositories.NewStaffPlanRepository(db)
	faqRepo := repositories.NewFAQRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	surveyQuestionRepo := repositories.NewSurveyQuestionRepository(db)
	surveyRepo := repositories.NewSurveyResponseRepository(db)
	notifRepo := repositories.NewNotificationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	resumeParser := services.NewResumeParserService()
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	log.Println("✅ Services initialized successfully")

	// Initialize notification dispatcher
	dispatcher := services.NewDispatcher(notifRepo, services.LogSender{}, cfg.Worker.Concurrency)
	ctx := context.Background()
	dispatcher.Start(ctx)
	log.Println("✅ Dispatcher started successfully")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, tokenService)
	candidateHandler := handlers.NewCandidateHandler(
		candidateRepo,
		taskRepo,
		storageService,
		resumeParser,
		cfg.Storage.MaxFileSize,
	)
	taskHandler := handlers.NewTaskHandler(taskRepo, candidateRepo)
	mentorHandler := handlers.NewMentorHandler(userRepo)
	linePlanHandler := handlers.NewPlanHandler(planRepo, userRepo, models.PlanLine)
	adminPlanHandler := handlers.NewPlanHandler(planRepo, userRepo, models.PlanAdmin)
	staffPlanHandler := handlers.NewStaffPlanHandler(staffPlanRepo, userRepo, candidateRepo)
	faqHandler := handlers.NewFAQHandler(faqRepo)
	questionHandler := handlers.NewQuestionHandler(questionRepo)
	surveyQuestionHandler := handlers.NewSurveyQuestionHandler(surveyQuestionRepo)
	surveyHandler := handlers.NewSurveyHandler(surveyRepo, candidateRepo, notifRepo, dispatcher)
	notificationHandler := handlers.NewNotificationHandler(candidateRepo, notifRepo, dispatcher)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Recruitment Admin API",
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
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Shell routes mirror the session gate: a token on the login path
	// bounces to the landing page, no token elsewhere bounces to login.
	app.Get("/", gateHandler)
	app.Get(session.LoginPath, gateHandler)

	// Public
	app.Post("/api/login", authHandler.HandleLogin)

	// Everything below requires a session
	auth := middleware.Protected(tokenService)

	app.Get("/api/session", auth, authHandler.HandleSession)

	// Candidates
	app.Get("/candidates", auth, candidateHandler.HandleList)
	app.Get("/candidates/:id", auth, candidateHandler.HandleGet)
	app.Post("/candidates/:id/resume", auth, candidateHandler.HandleUploadResume)
	app.Post("/updateAdminStatus", auth, candidateHandler.HandleUpdateAdminStatus)
	app.Get("/candidateTasks/:id", auth, candidateHandler.HandleCandidateTasks)
	app.Get("/api/candidates/trainees", auth, candidateHandler.HandleTrainees)
	app.Static("/resumes", cfg.Storage.UploadPath)

	// Tasks and assignments
	app.Get("/tasks", auth, taskHandler.HandleList)
	app.Post("/tasks", auth, taskHandler.HandleCreate)
	app.Put("/tasks/:id", auth, taskHandler.HandleUpdate)
	app.Delete("/tasks/:id", auth, taskHandler.HandleDelete)
	app.Post("/assign-task", auth, taskHandler.HandleAssign)
	app.Get("/assigned-tasks", auth, taskHandler.HandleAssignedRows)
	app.Patch("/assigned-tasks/:id/status", auth, taskHandler.HandleUpdateAssignmentStatus)

	// Mentors
	manageUsers := middleware.Require(func(caps models.Capabilities) bool { return caps.CanManageUsers })
	app.Get("/mentors", auth, manageUsers, mentorHandler.HandleList)
	app.Post("/mentors", auth, manageUsers, mentorHandler.HandleCreate)
	app.Put("/mentors/:id", auth, manageUsers, mentorHandler.HandleUpdate)
	app.Delete("/mentors/:id", auth, manageUsers, mentorHandler.HandleDelete)

	// Adaptation plans. The admin variant routes go first so that the
	// literal "admin" segment is not captured by ":id".
	editPlans := middleware.Require(func(caps models.Capabilities) bool { return caps.CanEditPlans })
	app.Get("/adaptation-plan/admin", auth, adminPlanHandler.HandleList)
	app.Post("/adaptation-plan/admin", auth, editPlans, adminPlanHandler.HandleCreate)
	app.Put("/adaptation-plan/admin/:id", auth, editPlans, adminPlanHandler.HandleUpdate)
	app.Delete("/adaptation-plan/admin/:id", auth, editPlans, adminPlanHandler.HandleDelete)
	app.Get("/adaptation-plan", auth, linePlanHandler.HandleList)
	app.Post("/adaptation-plan", auth, editPlans, linePlanHandler.HandleCreate)
	app.Put("/adaptation-plan/:id", auth, editPlans, linePlanHandler.HandleUpdate)
	app.Delete("/adaptation-plan/:id", auth, editPlans, linePlanHandler.HandleDelete)

	manageStaffPlans := middleware.Require(func(caps models.Capabilities) bool { return caps.CanManageStaffPlans })
	app.Get("/api/staff-adaptation-plans", auth, staffPlanHandler.HandleList)
	app.Post("/api/staff-adaptation-plans", auth, manageStaffPlans, staffPlanHandler.HandleCreate)
	app.Put("/api/staff-adaptation-plans/:id", auth, manageStaffPlans, staffPlanHandler.HandleUpdate)
	app.Delete("/api/staff-adaptation-plans/:id", auth, manageStaffPlans, staffPlanHandler.HandleDelete)

	// Content
	manageContent := middleware.Require(func(caps models.Capabilities) bool { return caps.CanManageContent })
	app.Get("/api/faqs", auth, faqHandler.HandleList)
	app.Post("/api/faqs", auth, manageContent, faqHandler.HandleCreate)
	app.Put("/api/faqs/:id", auth, manageContent, faqHandler.HandleUpdate)
	app.Delete("/api/faqs/:id", auth, manageContent, faqHandler.HandleDelete)

	app.Get("/api/questions", auth, questionHandler.HandleList)
	app.Post("/api/questions", auth, manageContent, questionHandler.HandleCreate)
	app.Put("/api/questions/:id", auth, manageContent, questionHandler.HandleUpdate)
	app.Delete("/api/questions/:id", auth, manageContent, questionHandler.HandleDelete)

	app.Get("/surveyQuestions", auth, surveyQuestionHandler.HandleList)
	app.Post("/surveyQuestions", auth, manageContent, surveyQuestionHandler.HandleCreate)
	app.Put("/surveyQuestions/:id", auth, manageContent, surveyQuestionHandler.HandleUpdate)
	app.Delete("/surveyQuestions/:id", auth, manageContent, surveyQuestionHandler.HandleDelete)

	// Surveys and notifications
	sendNotifications := middleware.Require(func(caps models.Capabilities) bool { return caps.CanSendNotifications })
	app.Get("/surveyResponses", auth, surveyHandler.HandleListResponses)
	app.Get("/surveyResponses/report", auth, surveyHandler.HandleReport)
	app.Post("/survey", auth, sendNotifications, surveyHandler.HandleSendSurvey)
	app.Post("/api/notifications/send", auth, sendNotifications, notificationHandler.HandleSend)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		dispatcher.Stop()
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

// gateHandler applies the navigation gate to the shell routes. Token
// presence alone decides; validity is checked by the API routes.
func gateHandler(c *fiber.Ctx) error {
	hasToken := c.Get(fiber.HeaderAuthorization) != "" || c.Cookies("token") != ""

	switch session.Decide(hasToken, c.Path()) {
	case session.GateToLanding:
		return c.Redirect(session.LandingPath, fiber.StatusFound)
	case session.GateToLogin:
		return c.Redirect(session.LoginPath, fiber.StatusFound)
	default:
		return c.JSON(fiber.Map{"path": c.Path()})
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
