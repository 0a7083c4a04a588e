package app

import (
	"career_coach_backend/internal/catalog"
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/controller"
	"career_coach_backend/internal/repository"
	"career_coach_backend/internal/service"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/configwatcher"
	"career_coach_backend/pkg/database"
	"career_coach_backend/pkg/lock"
	"career_coach_backend/pkg/logger"
	"career_coach_backend/pkg/monitoring"
	"career_coach_backend/pkg/security"
	"career_coach_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Catalog  *catalog.Holder
	services *services

	tracer *sdktrace.TracerProvider
	cancel context.CancelFunc
}

type repositories struct {
	user        *repository.UserRepository
	assessment  *repository.AssessmentRepository
	todo        *repository.TodoRepository
	history     *repository.QuizHistoryRepository
	insight     *repository.IndustryInsightRepository
	resume      *repository.ResumeRepository
	coverLetter *repository.CoverLetterRepository
	dashboard   *repository.DashboardRepository
}

type services struct {
	ai          *service.AIService
	storage     service.StorageProvider
	auth        *service.AuthService
	user        *service.UserService
	industry    *service.IndustryService
	interview   *service.InterviewService
	dashboard   *service.DashboardService
	resume      *service.ResumeService
	coverLetter *service.CoverLetterService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	interview   *controller.InterviewController
	dashboard   *controller.DashboardController
	resume      *controller.ResumeController
	coverLetter *controller.CoverLetterController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		assessment:  repository.NewAssessmentRepository(db),
		todo:        repository.NewTodoRepository(db),
		history:     repository.NewQuizHistoryRepository(db),
		insight:     repository.NewIndustryInsightRepository(db),
		resume:      repository.NewResumeRepository(db),
		coverLetter: repository.NewCoverLetterRepository(db),
		dashboard:   repository.NewDashboardRepository(db),
	}
}

// quizLocker serialises quiz generation per (user, role); redis makes the lock hold across instances.
func quizLocker(rdb *redis.Client, timeout time.Duration) lock.Locker {
	if rdb != nil {
		return lock.NewRedis(rdb, timeout)
	}
	return lock.NewLocal()
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.storage = service.NewStorageProvider(&cfg.Storage)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.industry = service.NewIndustryService(repos.insight, s.ai, rdb, cfg.InsightTTL())
	s.user = service.NewUserService(repos.user, s.industry)

	lockTimeout := time.Duration(cfg.Quiz.LockTimeoutSeconds) * time.Second
	s.interview = service.NewInterviewService(
		repos.user,
		repos.history,
		repos.assessment,
		repos.todo,
		service.NewQuestionGenerator(s.ai, a.Catalog, cfg.Quiz.QuestionsPerQuiz, cfg.Quiz.PriorQuestionLimit),
		a.Catalog,
		service.NewGrader(cfg.Quiz.RecommendationThreshold),
		service.NewRemediationPlanner(cfg.Quiz.GenericTodoThreshold),
		quizLocker(rdb, lockTimeout),
		lockTimeout,
	)

	s.dashboard = service.NewDashboardService(repos.user, repos.dashboard, s.industry)
	s.resume = service.NewResumeService(repos.resume, repos.user, s.ai, s.storage)
	s.coverLetter = service.NewCoverLetterService(repos.coverLetter, repos.user, s.ai)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		interview:   controller.NewInterviewController(s.interview),
		dashboard:   controller.NewDashboardController(s.dashboard),
		resume:      controller.NewResumeController(s.resume),
		coverLetter: controller.NewCoverLetterController(s.coverLetter),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks keeps industry insights fresh and hot-reloads the role catalog.
func (a *App) startBackgroundTasks(ctx context.Context, repos *repositories, s *services) {
	interval := time.Duration(a.Config.Insights.RefreshIntervalMinutes) * time.Minute
	if interval > 0 {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					RefreshInsights(ctx, repos.user, s.industry)
				}
			}
		}()
	}

	if path := a.Config.Quiz.CatalogPath; path != "" {
		go func() {
			if err := configwatcher.WatchFile(ctx, path, a.Catalog.Reload); err != nil {
				logger.Log.Error("Role catalog watcher stopped", zap.String("path", path), zap.Error(err))
			}
		}()
	}
}

// RefreshInsights regenerates stale insights and creates missing ones for industries users have chosen.
func RefreshInsights(ctx context.Context, users *repository.UserRepository, industry *service.IndustryService) {
	refreshed, err := industry.RefreshStale(ctx)
	if err != nil {
		logger.Log.Error("Insight refresh failed", zap.Error(err))
	}

	warmed := 0
	if industries, err := users.DistinctIndustries(); err != nil {
		logger.Log.Error("Failed to list user industries", zap.Error(err))
	} else {
		warmed = industry.WarmMissing(ctx, industries)
	}

	logger.Log.Info("Insight refresh finished", zap.Int("refreshed", refreshed), zap.Int("created", warmed))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	app, err := build(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to start application", zap.Error(err))
		log.Fatalf("Failed to start application: %v", err)
	}
	return app
}

func build(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	app := &App{Config: cfg, DB: db}
	if cfg.MigrateOnly {
		return app, nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}
	app.Redis = rdb

	roles, err := catalog.Load(cfg.Quiz.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load role catalog: %w", err)
	}
	app.Catalog = catalog.NewHolder(roles)
	logger.Log.Info("Role catalog loaded", zap.Strings("roles", roles.RoleIDs()))

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("career-coach", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel
	app.startBackgroundTasks(ctx, repos, services)

	return app, nil
}

// Close stops background work and releases connections.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// AI calls can be slow; give in-flight requests time to finish
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close()

	logger.Log.Info("Server exiting")
}
