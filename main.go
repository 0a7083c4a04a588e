// @title Career Coach API
// @version 1.0
// @description Interview practice, remediation and career tooling backend.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"career_coach_backend/internal/app"
	"career_coach_backend/internal/config"
	"career_coach_backend/pkg/logger"
	"flag"
	"fmt"
	"log"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	printStartUpBanner(cfg.Server.Mode)

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		application.Close()
		return
	}

	application.Run()
}

func printStartUpBanner(mode string) {
	figure.NewFigure("CAREER COACH", "", true).Print()

	fmt.Println("======================================================")
	fmt.Printf("Career Coach API (v%s, %s mode)\n\n", version, mode)
}
