package importer

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/groupmirror/core/internal/pkg/cron"
	"github.com/groupmirror/core/internal/pkg/response"
	"github.com/groupmirror/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
)

// RunFunc builds the current config and executes one import pass. The app
// supplies it so manual triggers and cron ticks share the same code path.
type RunFunc func(ctx context.Context) (*Stats, error)

// Handler exposes manual triggering and run/job visibility.
type Handler struct {
	tracker *taskqueue.Tracker
	sched   *cron.Scheduler
	runNow  RunFunc
	logger  *zap.Logger
}

func NewHandler(tracker *taskqueue.Tracker, sched *cron.Scheduler, runNow RunFunc, logger *zap.Logger) *Handler {
	return &Handler{
		tracker: tracker,
		sched:   sched,
		runNow:  runNow,
		logger:  logger.Named("ImportHandler"),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/import", authMW)
	g.POST("/run", h.triggerRun)
	g.GET("/runs", h.listRuns)
	g.GET("/runs/:id", h.getRun)
	g.GET("/jobs", h.listJobs)
}

// triggerRun starts a background import outside the schedule. The tracker
// holds a redis slot per manual run, so a second trigger while one is in
// flight gets a 409 instead of a doubled import.
func (h *Handler) triggerRun(c *gin.Context) {
	run, err := h.tracker.Begin(c.Request.Context(), "manual")
	if err != nil {
		if err == taskqueue.ErrRunInProgress {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	go func() {
		ctx := context.Background()
		stats, runErr := h.runNow(ctx)
		if err := h.tracker.Finish(ctx, run.ID, stats, runErr); err != nil {
			h.logger.Warn("failed to record run outcome", zap.String("run_id", run.ID), zap.Error(err))
		}
	}()

	response.Accepted(c, run)
}

func (h *Handler) getRun(c *gin.Context) {
	run, err := h.tracker.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if run == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, run)
}

func (h *Handler) listRuns(c *gin.Context) {
	runs, err := h.tracker.Recent(c.Request.Context(), 20)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, runs)
}

func (h *Handler) listJobs(c *gin.Context) {
	response.OK(c, h.sched.List())
}
