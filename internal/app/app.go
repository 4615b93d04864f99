package app

import (
	"academy_backend/internal/config"
	"academy_backend/internal/controller"
	"academy_backend/internal/repository"
	"academy_backend/internal/service"
	"academy_backend/pkg/database"
	"academy_backend/pkg/logger"
	"academy_backend/pkg/monitoring"
	"academy_backend/pkg/security"
	"academy_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	curriculum *repository.CurriculumRepository
	question   *repository.QuestionRepository
	assessment *repository.AssessmentRepository
	attempt    *repository.AttemptRepository
	weakArea   *repository.WeakAreaRepository
	transcript *repository.TranscriptRepository
	progress   *repository.ProgressRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	progression *service.ProgressionService
	assessment  *service.AssessmentService
	weakArea    *service.WeakAreaService
	transcript  *service.TranscriptService
	curriculum  *service.CurriculumService
}

type controllers struct {
	auth        *controller.AuthController
	curriculum  *controller.CurriculumController
	assessment  *controller.AssessmentController
	progression *controller.ProgressionController
	weakArea    *controller.WeakAreaController
	transcript  *controller.TranscriptController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig propagates hot-reloaded settings. Connection-level settings
// (database, redis, server port) still need a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.JWT = cfg.JWT
	a.Config.CORS = cfg.CORS
	a.Config.RateLimit = cfg.RateLimit
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		curriculum: repository.NewCurriculumRepository(db),
		question:   repository.NewQuestionRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		weakArea:   repository.NewWeakAreaRepository(db),
		transcript: repository.NewTranscriptRepository(db),
		progress:   repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)

	s.progression = service.NewProgressionService(
		repos.curriculum,
		repos.assessment,
		repos.attempt,
		repos.weakArea,
		repos.progress,
		repos.user,
		repos.transcript,
	)

	s.assessment = service.NewAssessmentService(
		repos.assessment,
		repos.question,
		repos.attempt,
		repos.curriculum,
	)

	s.weakArea = service.NewWeakAreaService(repos.weakArea)
	s.transcript = service.NewTranscriptService(repos.transcript)

	s.curriculum = service.NewCurriculumService(
		repos.curriculum,
		repos.question,
		repos.assessment,
		repos.progress,
		s.progression,
		s.storage,
		rdb,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		curriculum:  controller.NewCurriculumController(s.curriculum),
		assessment:  controller.NewAssessmentController(s.assessment),
		progression: controller.NewProgressionController(s.progression),
		weakArea:    controller.NewWeakAreaController(s.weakArea),
		transcript:  controller.NewTranscriptController(s.transcript),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("academy-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
