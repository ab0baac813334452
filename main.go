package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ignaciovargasDEV/prode-2026/handlers"
	"github.com/ignaciovargasDEV/prode-2026/models"
	"github.com/ignaciovargasDEV/prode-2026/services"
	"github.com/ignaciovargasDEV/prode-2026/utils"
	"github.com/ignaciovargasDEV/prode-2026/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB — JSON bodies plus crest/avatar uploads
	})

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
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
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
		&models.Team{},
		&models.User{},
		&models.UserSession{},
		&models.Match{},
		&models.Prediction{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	r2Enabled, err := utils.InitR2()
	if err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	if !r2Enabled {
		log.Println("⚠️  R2 not configured — crest/avatar uploads disabled")
	}

	// Optional Redis-backed ranking cache; without REDIS_ADDR every ranking
	// read recomputes from Postgres.
	rankingCache, err := services.NewRankingCache(os.Getenv("REDIS_ADDR"))
	if err != nil {
		log.Fatal("failed to connect to redis:", err)
	}

	authService := services.NewAuthService(db)
	teamService := services.NewTeamService(db)
	matchService := services.NewMatchService(db, rankingCache)
	predictionService := services.NewPredictionService(db)
	rankingService := services.NewRankingService(db, rankingCache)
	userService := services.NewUserService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authService.StartSessionCleanupScheduler()

	if rankingCache != nil {
		warmer := workers.NewRankingWarmer(rankingService)
		go workers.PollRanking(ctx, warmer, 5*time.Minute)
	}

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"message":   "Prode API is running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupUserRoutes(app, userService, authService)
	handlers.SetupTeamRoutes(app, teamService, authService)
	handlers.SetupMatchRoutes(app, matchService, authService)
	handlers.SetupPredictionRoutes(app, predictionService, authService)
	handlers.SetupRankingRoutes(app, rankingService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Session cleanup scheduler running (hourly)")
	if rankingCache != nil {
		log.Println("✅ Ranking cache warmer running (every 5m)")
	}
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
