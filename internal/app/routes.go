package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/promptfinder/core/internal/middleware"
	"github.com/promptfinder/core/internal/models"
	"github.com/promptfinder/core/internal/modules/content/related"
	"github.com/promptfinder/core/internal/modules/content/taxonomy"
	"github.com/promptfinder/core/internal/modules/processing/enrichment"
	"github.com/promptfinder/core/internal/modules/tasks/crontask"
	"github.com/promptfinder/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	a.router.NoRoute(response.NotFound)

	api := a.router.Group("/api/v1")
	api.Use(middleware.RateLimit(a.rc.Raw()))
	api.Use(middleware.Idempotence(a.rc.Raw()))
	api.Use(middleware.HTTPCache(a.rc.Raw(), middleware.HTTPCacheOptions{
		TTL:       time.Minute,
		SkipPaths: []string{"/api/v1/health*"},
	}))

	api.GET("/health", a.health)

	authMW := middleware.RequireAPIKey(a.cfg.APIKey)
	api.GET("/health/vision", authMW, a.visionHealth)

	taxonomy.NewHandler(a.taxonomySvc).RegisterRoutes(api, authMW)
	enrichment.NewHandler(a.enrichSvc).RegisterRoutes(api, authMW)
	related.NewHandler(a.relatedSvc).RegisterRoutes(api)
	crontask.NewHandler(a.sched, a.taskSvc).RegisterRoutes(api, authMW)

	api.GET("/items/slug/:slug", a.resolveSlug)
}

func (a *App) health(c *gin.Context) {
	response.OK(c, gin.H{"status": "ok", "env": a.cfg.Env})
}

// visionHealth verifies provider credentials with a minimal live call.
func (a *App) visionHealth(c *gin.Context) {
	if err := a.enrichSvc.TestConnection(c.Request.Context()); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"status": "ok"})
}

// resolveSlug looks an item up by slug. Slugs rewritten by enrichment are
// resolved through the redirect table and answered with a permanent
// redirect to the canonical URL.
func (a *App) resolveSlug(c *gin.Context) {
	slug := c.Param("slug")

	var item models.ItemModel
	err := a.db.WithContext(c.Request.Context()).
		First(&item, "slug = ? AND status = ?", slug, models.StatusPublished).Error
	if err == nil {
		response.OK(c, item)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.InternalError(c, err)
		return
	}

	var redirect models.SlugRedirectModel
	err = a.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		First(&redirect, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	err = a.db.WithContext(c.Request.Context()).
		First(&item, "id = ? AND status = ?", redirect.ItemID, models.StatusPublished).Error
	if err != nil {
		response.NotFound(c)
		return
	}
	c.Redirect(http.StatusMovedPermanently, "/api/v1/items/slug/"+item.Slug)
}
