// Manually refresh industry insights.
//
// The application already runs this on a ticker (insights.refresh_interval_minutes).
// Use the script after a bulk user import or when the AI provider changed.
//
// Usage: go run scripts/refresh_insights.go

package main

import (
	"career_coach_backend/internal/app"
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/repository"
	"career_coach_backend/internal/service"
	"career_coach_backend/pkg/database"
	"career_coach_backend/pkg/logger"
	"context"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	industry := service.NewIndustryService(
		repository.NewIndustryInsightRepository(db),
		service.NewAIService(cfg.AI),
		rdb,
		cfg.InsightTTL(),
	)

	log.Println("Refreshing industry insights...")
	app.RefreshInsights(context.Background(), repository.NewUserRepository(db), industry)
	log.Println("Done")
}
