package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"roleplay_coach_backend/internal/config"
	"roleplay_coach_backend/internal/controller"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/pkg/database"
	"roleplay_coach_backend/pkg/logger"
	"roleplay_coach_backend/pkg/monitoring"
	"roleplay_coach_backend/pkg/security"
	"roleplay_coach_backend/pkg/tracing"
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
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	scenario  *repository.ScenarioRepository
	behavior  *repository.BehaviorRepository
	knowledge *repository.KnowledgeRepository
	session   *repository.SessionRepository
	stats     *repository.StatsRepository
	// achievement holds both definitions and per-user progress rows.
	achievement *repository.AchievementRepository
	challenge   *repository.ChallengeRepository
	team        *repository.TeamRepository
	file        *repository.FileRepository
}

type services struct {
	ai           *service.AIService
	auth         *service.AuthService
	user         *service.UserService
	scenario     *service.ScenarioService
	knowledge    *service.KnowledgeService
	conversation *service.ConversationService
	evaluation   *service.EvaluationService
	extraction   *service.ExtractionService
	tts          *service.TTSService
	session      *service.SessionService
	stats        *service.StatsService
	achievement  *service.AchievementService
	challenge    *service.ChallengeService
	team         *service.TeamService
	storage      *service.StorageService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	scenario     *controller.ScenarioController
	behavior     *controller.BehaviorController
	knowledge    *controller.KnowledgeController
	conversation *controller.ConversationController
	evaluation   *controller.EvaluationController
	extraction   *controller.ExtractionController
	tts          *controller.TTSController
	session      *controller.SessionController
	stats        *controller.StatsController
	achievement  *controller.AchievementController
	challenge    *controller.ChallengeController
	team         *controller.TeamController
	upload       *controller.UploadController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig installs a reloaded configuration and notifies subscribers.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		scenario:    repository.NewScenarioRepository(db),
		behavior:    repository.NewBehaviorRepository(db),
		knowledge:   repository.NewKnowledgeRepository(db),
		session:     repository.NewSessionRepository(db),
		stats:       repository.NewStatsRepository(db),
		achievement: repository.NewAchievementRepository(db),
		challenge:   repository.NewChallengeRepository(db),
		team:        repository.NewTeamRepository(db),
		file:        repository.NewFileRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.stats, cfg)
	s.user = service.NewUserService(repos.user, repos.stats)
	s.scenario = service.NewScenarioService(repos.scenario, repos.behavior)
	s.knowledge = service.NewKnowledgeService(repos.knowledge, rdb)
	s.conversation = service.NewConversationService(s.ai, repos.behavior, repos.scenario)
	s.evaluation = service.NewEvaluationService(s.ai)
	s.extraction = service.NewExtractionService(s.ai, cfg.Extraction)
	s.tts = service.NewTTSService(cfg.TTS)
	s.stats = service.NewStatsService(repos.stats, repos.user, rdb)
	s.achievement = service.NewAchievementService(repos.achievement, s.stats)
	s.challenge = service.NewChallengeService(repos.challenge, s.stats, s.achievement)
	s.team = service.NewTeamService(repos.team)
	s.session = service.NewSessionService(repos.session, repos.scenario, s.evaluation, s.stats, s.achievement)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth, s.user),
		user:         controller.NewUserController(s.user, s.stats),
		scenario:     controller.NewScenarioController(s.scenario),
		behavior:     controller.NewBehaviorController(s.scenario),
		knowledge:    controller.NewKnowledgeController(s.knowledge),
		conversation: controller.NewConversationController(s.conversation, s.session),
		evaluation:   controller.NewEvaluationController(s.evaluation),
		extraction:   controller.NewExtractionController(s.extraction),
		tts:          controller.NewTTSController(s.tts),
		session:      controller.NewSessionController(s.session),
		stats:        controller.NewStatsController(s.stats),
		achievement:  controller.NewAchievementController(s.achievement),
		challenge:    controller.NewChallengeController(s.challenge),
		team:         controller.NewTeamController(s.team),
		upload:       controller.NewUploadController(s.storage, repos.file),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

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
	controllers := app.initControllers(services, repos, db, rdb)

	// Upstream credentials can be rotated via the config file without a
	// restart; everything else requires one.
	app.RegisterConfigCallback(func(c *config.Config) {
		services.ai.UpdateConfig(c.AI)
		services.tts.UpdateConfig(c.TTS)
	})

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("roleplay-coach", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
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
