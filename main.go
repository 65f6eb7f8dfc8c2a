package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/foodbridge/donation-app/config"
	"github.com/foodbridge/donation-app/middlewares"
	"github.com/foodbridge/donation-app/models"
	"github.com/foodbridge/donation-app/router"
	"github.com/foodbridge/donation-app/services"
	"github.com/foodbridge/donation-app/store"
	"github.com/foodbridge/donation-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// The donation collection is process-memory only; only user
	// accounts live in the database.
	notifs := store.NewNotificationCenter(envInt("NOTIF_RETENTION", 0))
	st := store.New(notifs)

	warningWindow := time.Duration(envInt("EXPIRY_WARNING_MINUTES", 30)) * time.Minute
	monitor := services.NewExpiryMonitor(st, warningWindow)
	monitor.Start()
	defer monitor.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, st)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		utils.ErrorLogger.Printf("Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}
