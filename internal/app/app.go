package app

import (
	"context"
	"errors"
	"first20_backend/internal/config"
	"first20_backend/internal/controller"
	"first20_backend/internal/repository"
	"first20_backend/internal/service"
	"first20_backend/pkg/configwatcher"
	"first20_backend/pkg/database"
	"first20_backend/pkg/logger"
	"first20_backend/pkg/monitoring"
	"first20_backend/pkg/security"
	"first20_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	cors            *security.CORSPolicy
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	skill      *repository.SkillRepository
	plan       *repository.PlanRepository
	session    *repository.SessionRepository
	reflection *repository.ReflectionRepository
	badge      *repository.BadgeRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	skill     *service.SkillService
	plan      *service.PlanService
	session   *service.SessionService
	badge     *service.BadgeService
	dashboard *service.DashboardService
	calendar  *service.CalendarService
}

type controllers struct {
	auth      *controller.AuthController
	skill     *controller.SkillController
	plan      *controller.PlanController
	session   *controller.SessionController
	dashboard *controller.DashboardController
	badge     *controller.BadgeController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		skill:      repository.NewSkillRepository(db),
		plan:       repository.NewPlanRepository(db),
		session:    repository.NewSessionRepository(db),
		reflection: repository.NewReflectionRepository(db),
		badge:      repository.NewBadgeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.badge = service.NewBadgeService(repos.badge, repos.session)
	s.skill = service.NewSkillService(repos.skill, repos.session)
	s.plan = service.NewPlanService(repos.plan, repos.skill, repos.session)
	s.session = service.NewSessionService(repos.session, repos.skill, repos.reflection, s.badge)
	s.dashboard = service.NewDashboardService(repos.skill, repos.plan, repos.session, repos.badge)
	s.calendar = service.NewCalendarService(repos.skill, repos.plan, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		skill:     controller.NewSkillController(s.skill, s.plan, s.calendar),
		plan:      controller.NewPlanController(s.plan),
		session:   controller.NewSessionController(s.session),
		dashboard: controller.NewDashboardController(s.dashboard),
		badge:     controller.NewBadgeController(s.badge),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.cors))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// Build 在已打开的数据库上组装路由并写入徽章目录
func Build(cfg *config.Config, db *gorm.DB) (*App, error) {
	app := &App{
		Config: cfg,
		DB:     db,
		cors:   security.NewCORSPolicy(cfg.CORS.AllowedOrigins),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	if err := services.badge.SeedCatalog(context.Background()); err != nil {
		return nil, err
	}

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.cors.SetOrigins(newCfg.CORS.AllowedOrigins)
		logger.ApplyMode(newCfg.Server.Mode)
	})

	return app, nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	// release 模式默认不自动迁移，需要 -migrate
	migrate := cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	app, err := Build(cfg, db)
	if err != nil {
		logger.Log.Fatal("Failed to build application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) watchConfig(ctx context.Context) {
	if !a.Config.Server.WatchConfig || a.Config.ConfigDir == "" {
		return
	}
	err := configwatcher.Watch(ctx, a.Config.ConfigDir, func(newCfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(newCfg)
		}
	})
	if err != nil {
		logger.Log.Warn("Config hot reload disabled", zap.Error(err))
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.watchConfig(ctx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
