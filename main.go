package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shadow-ranch-system/handlers"
	"shadow-ranch-system/middleware"
	"shadow-ranch-system/models"
	"shadow-ranch-system/services"
	"shadow-ranch-system/utils"
	"shadow-ranch-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // code submissions are small
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token, X-Wallet-Address, X-Wallet-Connected",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.UserProgress{},
		&models.UserProfile{},
		&models.AchievementBadge{},
		&models.MintReceipt{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	contentService := services.NewContentService()
	validator := services.NewAnswerValidator(contentService)
	progressService := services.NewProgressService(db)
	profileService := services.NewProfileService(db, contentService)

	var uploader services.MetadataUploader
	if os.Getenv("METADATA_UPLOADER") == "r2" {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		uploader = services.NewR2MetadataUploader()
		log.Println("✅ Metadata uploads backed by R2")
	} else {
		uploader = services.NewMockUploader(1500 * time.Millisecond)
		log.Println("⚠️  Metadata uploads simulated (set METADATA_UPLOADER=r2 for real storage)")
	}

	programClient := services.NewSimulatedProgramClient(800 * time.Millisecond)

	rewardService := services.NewRewardService(db, contentService, validator, progressService, profileService, uploader, programClient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mirror mints confirmed out-of-band back into our receipts table
	if os.Getenv("CHAIN_INDEXER_URL") != "" {
		chainSyncClient := workers.NewChainSyncClient(db)
		go workers.PollMints(ctx, chainSyncClient, 30*time.Second)
		log.Println("✅ Mint receipt polling running (every 30s)")
	}

	rewardService.StartMintRetryScheduler()

	// ✅ Setup routes — enforced Gateway auth + consistent /s/ prefix
	handlers.SetupContentRoutes(app, contentService)
	handlers.SetupSubmissionRoutes(app, rewardService, programClient)
	handlers.SetupProgressRoutes(app, progressService, profileService, rewardService)
	handlers.SetupProfileRoutes(app, profileService)

	// Badge art and static lesson assets
	app.Use("/badges", filesystem.New(filesystem.Config{
		Root:   http.Dir("./public/badges"),
		MaxAge: 3600,
	}))
	app.Static("/assets", "./public/assets")

	if err := os.MkdirAll("./public/badges", os.ModePerm); err != nil {
		log.Fatal("failed to ensure badges public dir:", err)
	}

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Mint retry scheduler running (every 1m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
