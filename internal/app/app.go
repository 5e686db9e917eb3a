package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/groupmirror/core/internal/config"
	"github.com/groupmirror/core/internal/database"
	"github.com/groupmirror/core/internal/middleware"
	"github.com/groupmirror/core/internal/modules/article"
	"github.com/groupmirror/core/internal/modules/comment"
	"github.com/groupmirror/core/internal/modules/facebook"
	"github.com/groupmirror/core/internal/modules/importer"
	"github.com/groupmirror/core/internal/modules/media"
	"github.com/groupmirror/core/internal/modules/settings"
	pkgcron "github.com/groupmirror/core/internal/pkg/cron"
	"github.com/groupmirror/core/internal/pkg/jwt"
	pkgredis "github.com/groupmirror/core/internal/pkg/redis"
	"github.com/groupmirror/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → DB → Redis → pipeline → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	jwt.SetSecret(cfg.JWTSecret)

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	// Pipeline collaborators.
	settingsSvc := settings.NewService(db)
	articleSvc := article.NewService(db)
	commentSvc := comment.NewService(db)
	mediaStore := media.NewStore(db, cfg.Paths.Static)
	importSvc := importer.NewService(
		facebook.NewClient(),
		articleSvc,
		commentSvc,
		media.NewValidator(),
		mediaStore,
		media.CleanURL,
		settingsSvc,
		logger,
	)
	tracker := taskqueue.NewTracker(rc)

	ctx, cancel := context.WithCancel(context.Background())
	sched := pkgcron.New()
	registerImportJob(sched, settingsSvc, importSvc, tracker, logger)
	go sched.Start(ctx)

	app := &App{cfg: cfg, router: router, db: db, logger: logger, cancel: cancel, sched: sched}
	app.registerRoutes(settingsSvc, articleSvc, mediaStore, importSvc, tracker)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }

func corsConfig(cfg *config.AppConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	}
	return corsCfg
}
