package main

import (
	"log"
	"os"
	"time"

	"southside/database"
	"southside/handlers"
	"southside/handlers/admin"
	"southside/middleware"
	"southside/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database
	database.InitDB()

	// Initialize handlers and services
	handlers.InitApplicationHandlers()
	admin.InitApplicationHandlers()
	services.InitHub()

	services.InitDiscordStatsService()
	if discordStats := services.GetDiscordStatsService(); discordStats != nil {
		discordStats.Start()
		defer discordStats.Stop()
	}

	services.InitCleanupService()
	if cleanup := services.GetCleanupService(); cleanup != nil {
		cleanup.Start()
		defer cleanup.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.FiberRateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.FiberAuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)

	// Public content routes
	api.Get("/team", handlers.GetTeamRoster)
	api.Get("/jerseys", handlers.GetJerseys)
	api.Get("/media", handlers.ListMedia)
	api.Get("/media/:id", handlers.GetMedia)
	api.Get("/forms", handlers.ListForms)
	api.Get("/forms/:id", handlers.GetForm)
	api.Get("/discord-stats", handlers.GetDiscordStats)

	// User routes (require authentication)
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)
	userGroup.Put("/me", handlers.UpdateCurrentUser)

	// Profile routes
	profileGroup := api.Group("/profile")
	profileGroup.Use(middleware.AuthMiddleware)
	profileGroup.Get("/", handlers.GetProfile)
	profileGroup.Put("/", handlers.UpdateProfile)

	// Application routes
	applicationGroup := api.Group("/application")
	applicationGroup.Use(middleware.AuthMiddleware)
	applicationGroup.Post("/submit", middleware.FiberSubmitRateLimitMiddleware(), handlers.SubmitApplication)
	applicationGroup.Get("/status", handlers.GetApplicationStatus)

	// Forum routes (reads are public, writes require auth)
	api.Post("/forms", middleware.AuthMiddleware, handlers.CreateForm)
	api.Post("/forms/:id/replies", middleware.AuthMiddleware, handlers.CreateFormReply)
	api.Delete("/forms/:id", middleware.AuthMiddleware, handlers.DeleteForm)
	api.Delete("/forms/:id/replies/:replyId", middleware.AuthMiddleware, handlers.DeleteFormReply)

	// Media CDN signatures
	api.Post("/cloudinary/signature", middleware.AuthMiddleware, handlers.SignUpload)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Get("/check", middleware.AuthMiddleware, admin.Check)

	// Everything else behind the single admin gate
	adminProtected := adminGroup.Group("")
	adminProtected.Use(middleware.AdminAuthMiddleware)

	adminProtected.Get("/applications", admin.GetApplications)
	adminProtected.Get("/applications/:id", admin.GetApplication)
	adminProtected.Put("/applications/:id", admin.UpdateApplication)

	adminProtected.Get("/users", admin.GetUsers)
	adminProtected.Get("/users/:id", admin.GetUser)
	adminProtected.Post("/users/:id/ban", admin.BanUser)
	adminProtected.Delete("/users/:id", admin.DeleteUser)

	adminProtected.Post("/team", admin.CreateTeamMember)
	adminProtected.Put("/team/:id", admin.UpdateTeamMember)
	adminProtected.Delete("/team/:id", admin.DeleteTeamMember)

	adminProtected.Post("/jerseys", admin.CreateJersey)
	adminProtected.Put("/jerseys/:id", admin.UpdateJersey)
	adminProtected.Delete("/jerseys/:id", admin.DeleteJersey)

	adminProtected.Post("/media", admin.CreateMedia)
	adminProtected.Put("/media/:id", admin.UpdateMedia)
	adminProtected.Delete("/media/:id", admin.DeleteMedia)

	// Realtime row-change feed
	app.Get("/ws", middleware.WebSocketAuthMiddleware, handlers.RealtimeUpgrade, handlers.RealtimeHandler)

	// Health check endpoint
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	// Start HTTP server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 Realtime feed available at ws://localhost:%s/ws", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
		if os.Getenv("ADMIN_EMAILS") == "" {
			log.Println("WARNING: ADMIN_EMAILS not set; no admin panel access")
		}
	}
}

// Helper functions

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
