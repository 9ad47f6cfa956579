// Package app wires configuration, storage, the vision provider and the
// HTTP surface into one runnable application.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/promptfinder/core/internal/config"
	"github.com/promptfinder/core/internal/database"
	"github.com/promptfinder/core/internal/middleware"
	"github.com/promptfinder/core/internal/modules/content/related"
	"github.com/promptfinder/core/internal/modules/content/taxonomy"
	"github.com/promptfinder/core/internal/modules/processing/enrichment"
	"github.com/promptfinder/core/internal/modules/processing/vision"
	"github.com/promptfinder/core/internal/modules/storage/media"
	pkgcron "github.com/promptfinder/core/internal/pkg/cron"
	"github.com/promptfinder/core/internal/pkg/imagefetch"
	pkgredis "github.com/promptfinder/core/internal/pkg/redis"
	"github.com/promptfinder/core/internal/pkg/taskqueue"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	rc     *pkgredis.Client
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler

	taxonomySvc *taxonomy.Service
	enrichSvc   *enrichment.Service
	relatedSvc  *related.Service
	taskSvc     *taskqueue.Service
}

// New initializes the application: config → DB → Redis → services → routes.
func New(logger *zap.Logger, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	taxonomySvc := taxonomy.NewService(db, logger)
	if err := taxonomySvc.Seed(context.Background()); err != nil {
		return nil, fmt.Errorf("taxonomy seed: %w", err)
	}

	visionClient, err := vision.NewClient(cfg.Vision)
	if err != nil {
		return nil, fmt.Errorf("vision: %w", err)
	}

	fetcher := imagefetch.New(cfg.Fetcher)
	taskSvc := taskqueue.NewService(rc)
	mediaSvc := media.NewService(db, logger, cfg.Media)

	var renamer enrichment.MediaRenamer
	if mediaSvc.Enabled() {
		renamer = mediaSvc
	}
	enrichSvc := enrichment.NewService(db, rc, logger, cfg, taxonomySvc, visionClient, fetcher, taskSvc, renamer)
	relatedSvc := related.NewService(db, logger, cfg)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	ctx, cancel := context.WithCancel(context.Background())
	sched := pkgcron.New()
	registerCronJobs(sched, db, enrichSvc, cfg, logger)
	go sched.Start(ctx)

	app := &App{
		cfg:         cfg,
		router:      router,
		db:          db,
		rc:          rc,
		logger:      logger,
		cancel:      cancel,
		sched:       sched,
		taxonomySvc: taxonomySvc,
		enrichSvc:   enrichSvc,
		relatedSvc:  relatedSvc,
		taskSvc:     taskSvc,
	}
	app.registerRoutes()
	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background goroutines.
func (a *App) Shutdown() { a.cancel() }
