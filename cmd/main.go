package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vadkul/vadkul-backend/config"
	"github.com/vadkul/vadkul-backend/database"
	"github.com/vadkul/vadkul-backend/internal/auditlog"
	"github.com/vadkul/vadkul-backend/internal/auth"
	"github.com/vadkul/vadkul-backend/internal/chat"
	"github.com/vadkul/vadkul-backend/internal/event"
	"github.com/vadkul/vadkul-backend/internal/notification"
	"github.com/vadkul/vadkul-backend/internal/profile"
	"github.com/vadkul/vadkul-backend/internal/verification"
	"github.com/vadkul/vadkul-backend/routes"
	"github.com/vadkul/vadkul-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka (optional, activity fan-out is skipped without brokers)
	utils.InitializeKafka()

	// Init Firebase
	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications will be disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized successfully")
	} else {
		log.Println("⚠️ Firebase initialized but FCM client unavailable")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&profile.UserProfile{},
		&profile.Review{},
		&event.Event{},
		&chat.ChatRoom{},
		&chat.ChatMessage{},
		&notification.Notification{},
		&notification.FCMDeviceToken{},
		&verification.VerificationRequest{},
		&auditlog.AuditLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed roles & admin account, tables exist after migration
	if err := auth.SeedUserRoles(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed roles: %v", err))
	}
	if err := auth.SeedAdminUser(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed admin: %v", err))
	}

	// Kafka consumer turns join/leave/chat activity into notifications
	notifRepo := notification.NewRepository(db)
	notifSvc := notification.NewService(notifRepo)
	notification.StartKafkaConsumer(context.Background(), notifSvc)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	if utils.IsFCMEnabled() {
		fmt.Println("✅ Firebase Cloud Messaging enabled")
	} else {
		fmt.Println("ℹ️ Firebase Cloud Messaging disabled")
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
