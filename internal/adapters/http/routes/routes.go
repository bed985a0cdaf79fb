package routes

import (
	"log"

	"civicfix/internal/adapters/http/handlers"
	"civicfix/internal/adapters/http/middleware"
	"civicfix/internal/adapters/persistence/repositories"
	"civicfix/internal/adapters/storage"
	"civicfix/internal/config"
	"civicfix/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	complaintRepo := repositories.NewComplaintRepository(db)

	// OTP store: Redis when configured, in-memory otherwise
	var otpStore services.OTPStore
	if cfg.Redis.Addr != "" {
		otpStore = storage.NewRedisOTPStore(cfg.Redis)
		log.Printf("✅ OTP store: redis [%s]", cfg.Redis.Addr)
	} else {
		otpStore = services.NewMemoryOTPStore()
		log.Println("✅ OTP store: in-memory")
	}

	// Media store
	mediaStore, err := storage.NewCloudinaryStore(cfg.Cloudinary)
	if err != nil {
		log.Fatalf("❌ Failed to init media store: %v", err)
	}

	// Initialize services
	otpService := services.NewOTPService(otpStore)
	authService := services.NewAuthService(userRepo, adminRepo, otpService, cfg)
	userService := services.NewUserService(userRepo)
	complaintService := services.NewComplaintService(complaintRepo)
	dashboardService := services.NewDashboardService(complaintRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	complaintHandler := handlers.NewComplaintHandler(complaintService, mediaStore)
	adminHandler := handlers.NewAdminHandler(authService, complaintService, mediaStore)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public, stricter rate limit)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/send-otp", middleware.AuthRateLimiter(), authHandler.SendOTP)
	auth.Post("/verify-otp", middleware.AuthRateLimiter(), authHandler.VerifyOTP)
	auth.Post("/forgot-password", middleware.AuthRateLimiter(), authHandler.ForgotPassword)
	auth.Post("/reset-password", middleware.AuthRateLimiter(), authHandler.ResetPassword)
	auth.Get("/me", middleware.AuthMiddleware(authService), authHandler.Me)

	// User profile routes
	users := api.Group("/users")
	users.Use(middleware.AuthMiddleware(authService))
	users.Get("/profile", userHandler.GetProfile)
	users.Put("/profile", userHandler.UpdateProfile)

	// Complaint routes (citizen-facing)
	complaints := api.Group("/complaints")
	complaints.Use(middleware.AuthMiddleware(authService))
	complaints.Post("/", complaintHandler.Create)
	complaints.Get("/my-complaints", complaintHandler.ListOwn)
	complaints.Get("/stats/summary", complaintHandler.Stats)
	complaints.Get("/:id", complaintHandler.GetByID)
	complaints.Post("/:id/feedback", complaintHandler.SubmitFeedback)

	// Admin routes
	admin := api.Group("/admin")
	admin.Post("/register", middleware.AuthRateLimiter(), adminHandler.Register)
	admin.Use(middleware.AuthMiddleware(authService), middleware.AdminOnly())
	admin.Get("/complaints", adminHandler.ListComplaints)
	admin.Get("/complaints/:id", adminHandler.GetComplaint)
	admin.Put("/complaints/:id/status", adminHandler.UpdateStatus)
	admin.Post("/complaints/:id/resolution-proof", adminHandler.UploadEvidence)
	admin.Get("/dashboard/stats", dashboardHandler.Stats)
	admin.Get("/me", adminHandler.Me)
}
