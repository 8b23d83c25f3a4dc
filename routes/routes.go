package routes

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vadkul/vadkul-backend/config"
	"github.com/vadkul/vadkul-backend/database"
	"github.com/vadkul/vadkul-backend/internal/admin"
	"github.com/vadkul/vadkul-backend/internal/auditlog"
	"github.com/vadkul/vadkul-backend/internal/auth"
	"github.com/vadkul/vadkul-backend/internal/chat"
	"github.com/vadkul/vadkul-backend/internal/event"
	"github.com/vadkul/vadkul-backend/internal/notification"
	"github.com/vadkul/vadkul-backend/internal/profile"
	"github.com/vadkul/vadkul-backend/internal/reports"
	"github.com/vadkul/vadkul-backend/internal/verification"
	"github.com/vadkul/vadkul-backend/middleware"

	_ "github.com/vadkul/vadkul-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires every module under /api/v1.
func Setup(r *gin.Engine, cfg *config.Config) {
	if err := os.MkdirAll(filepath.Join(cfg.UploadDir, "profiles"), 0755); err != nil {
		fmt.Printf("Warning: could not create uploads directory: %v\n", err)
	}
	if err := os.MkdirAll(filepath.Join(cfg.UploadDir, "verification"), 0755); err != nil {
		fmt.Printf("Warning: could not create uploads directory: %v\n", err)
	}

	// Uploaded photos are public by URL
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Profiles (needed by auth for signup hook) ==========
	profileRepo := profile.NewRepository(database.DB)
	profileSvc := profile.NewService(profileRepo, auditSvc)
	profileHandler := profile.NewHandler(profileSvc, cfg.UploadDir, cfg.BaseURL)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, profileSvc, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)

		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
		authGroup.POST("/change-password", middleware.AuthMiddleware(cfg, authSvc), authHandler.ChangePassword)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
	}

	// ========== Events & Discovery ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, authRepo, profileSvc, auditSvc)
	eventHandler := event.NewHandler(eventSvc)

	// Discovery is browsable without an account
	api.GET("/events/discover", eventHandler.Discover)
	api.GET("/events", eventHandler.ListEvents)
	api.GET("/events/:id", eventHandler.GetEventByID)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.GET("/mine", eventHandler.ListMyEvents)
		eventRoutes.PUT("/:id", eventHandler.UpdateEvent)
		eventRoutes.POST("/:id/join", eventHandler.JoinEvent)
		eventRoutes.POST("/:id/leave", eventHandler.LeaveEvent)
	}

	// ========== Profiles, Ratings & Leaderboard ==========
	profileRoutes := protected.Group("/profiles")
	{
		profileRoutes.GET("/me", profileHandler.GetMyProfile)
		profileRoutes.PUT("/me", profileHandler.UpdateMyProfile)
		profileRoutes.POST("/me/photo", profileHandler.UploadPhoto)
		profileRoutes.GET("/:id", profileHandler.GetProfile)
		profileRoutes.POST("/:id/rate", profileHandler.RateUser)
		profileRoutes.GET("/:id/reviews", profileHandler.ListReviews)
	}
	api.GET("/leaderboard", profileHandler.Leaderboard)

	// ========== Chat ==========
	chatRepo := chat.NewRepository(database.DB)
	chatSvc := chat.NewService(chatRepo, authRepo, profileSvc, auditSvc)
	chatHandler := chat.NewHandler(chatSvc)

	chatRoutes := protected.Group("/chat")
	{
		chatRoutes.POST("/rooms", chatHandler.OpenDirectRoom)
		chatRoutes.POST("/events/:event_id/room", chatHandler.OpenEventRoom)
		chatRoutes.GET("/rooms", chatHandler.ListRooms)
		chatRoutes.GET("/rooms/:key/messages", chatHandler.ListMessages)
		chatRoutes.POST("/rooms/:key/messages", chatHandler.SendMessage)
		chatRoutes.GET("/rooms/:key/stream", chatHandler.StreamMessages)
	}

	// ========== Notifications ==========
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo)
	notifHandler := notification.NewHandler(notifSvc, cfg)

	notifRoutes := protected.Group("/notifications")
	{
		notifRoutes.GET("", notifHandler.List)
		notifRoutes.GET("/unread-count", notifHandler.UnreadCount)
		notifRoutes.PATCH("/:id/read", notifHandler.MarkAsRead)
		notifRoutes.PATCH("/read-all", notifHandler.MarkAllAsRead)
		notifRoutes.GET("/stream", notifHandler.Stream)

		notifRoutes.POST("/fcm/register", notifHandler.RegisterFCMToken)
		notifRoutes.DELETE("/fcm/unregister", notifHandler.UnregisterFCMToken)
	}

	// Token-based SSE stream for EventSource clients that cannot set headers
	api.GET("/notifications/stream-token", notifHandler.StreamWithToken)

	// ========== Verification ==========
	verifRepo := verification.NewRepository(database.DB)
	verifSvc := verification.NewService(verifRepo, profileSvc, notifSvc, auditSvc)
	verifHandler := verification.NewHandler(verifSvc, cfg.UploadDir, cfg.BaseURL)

	protected.POST("/verification", verifHandler.Submit)
	protected.GET("/verification/me", verifHandler.Status)

	// ========== Admin ==========
	adminRepo := admin.NewRepository(database.DB)
	adminSvc := admin.NewService(adminRepo, eventRepo, notifRepo, chatRepo, verifRepo, auditSvc)
	adminHandler := admin.NewHandler(adminSvc)

	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(middleware.RBACMiddleware(auth.RoleAdmin))
	{
		adminRoutes.GET("/stats", adminHandler.GetStats)
		adminRoutes.GET("/users", adminHandler.ListUsers)
		adminRoutes.PATCH("/users/:id/status", adminHandler.SetUserStatus)
		adminRoutes.DELETE("/events", adminHandler.BulkDeleteEvents)

		adminRoutes.GET("/verification/pending", verifHandler.PendingQueue)
		adminRoutes.POST("/verification/:id/review", verifHandler.Review)

		// Reports
		reportsRepo := reports.NewReportRepository(database.DB)
		reportsExporter := reports.NewReportExporter()
		reportsSvc := reports.NewReportService(reportsRepo, reportsExporter, auditSvc)
		reportsHandler := reports.NewHandler(reportsSvc)

		adminRoutes.GET("/reports", reportsHandler.GetReport)
		adminRoutes.GET("/reports/export", reportsHandler.ExportReport)
	}

	// ========== Audit Logs (Admin Only) ==========
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware(auth.RoleAdmin))
	{
		auditRoutes.GET("", auditHandler.GetAuditLogs)
		auditRoutes.GET("/stats", auditHandler.GetAuditLogStats)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
