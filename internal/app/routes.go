package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupmirror/core/internal/middleware"
	"github.com/groupmirror/core/internal/modules/article"
	"github.com/groupmirror/core/internal/modules/auth"
	"github.com/groupmirror/core/internal/modules/importer"
	"github.com/groupmirror/core/internal/modules/media"
	"github.com/groupmirror/core/internal/modules/settings"
	"github.com/groupmirror/core/internal/pkg/taskqueue"
)

func (a *App) registerRoutes(
	settingsSvc *settings.Service,
	articleSvc *article.Service,
	mediaStore *media.Store,
	importSvc *importer.Service,
	tracker *taskqueue.Tracker,
) {
	api := a.router.Group("/api/v1")
	authMW := middleware.Auth()

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	auth.NewHandler(a.cfg.AdminPassword).RegisterRoutes(api)

	settingsHandler := settings.NewHandler(settingsSvc)
	settingsHandler.OnUpdate = func(updated settings.ImportSettings) {
		rescheduleImport(a.sched, settingsSvc, importSvc, tracker, a.logger, updated.IntervalMinutes)
	}
	settingsHandler.RegisterRoutes(api, authMW)

	article.NewHandler(articleSvc).RegisterRoutes(api, authMW)

	runNow := func(ctx context.Context) (*importer.Stats, error) {
		return runImport(ctx, settingsSvc, importSvc)
	}
	importer.NewHandler(tracker, a.sched, runNow, a.logger).RegisterRoutes(api, authMW)

	// Stored files live at /objects/..., matching the FileURL persisted on
	// each FileReference row, so they sit outside the /api/v1 prefix.
	mediaStore.RegisterRoutes(a.router.Group(""), authMW)
}
