package app

import (
	"context"
	"time"

	"github.com/groupmirror/core/internal/modules/importer"
	"github.com/groupmirror/core/internal/modules/settings"
	pkgcron "github.com/groupmirror/core/internal/pkg/cron"
	"github.com/groupmirror/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
)

const importJobName = "import_group_feed"

// runImport snapshots the stored settings into an immutable per-run config
// and executes one pass. Settings are re-read here, at the start of every
// tick, never captured at registration time.
func runImport(ctx context.Context, settingsSvc *settings.Service, importSvc *importer.Service) (*importer.Stats, error) {
	st, err := settingsSvc.Get()
	if err != nil {
		return nil, err
	}
	cfg := importer.ImportConfig{
		APIToken:        st.APIToken,
		GroupID:         st.GroupID,
		Enabled:         st.Enabled,
		ImportComments:  st.ImportComments,
		IntervalMinutes: st.IntervalMinutes,
		PostLimit:       st.PostLimit,
	}
	return importSvc.Run(ctx, cfg)
}

// registerImportJob schedules the recurring import at the stored interval.
func registerImportJob(
	sched *pkgcron.Scheduler,
	settingsSvc *settings.Service,
	importSvc *importer.Service,
	tracker *taskqueue.Tracker,
	logger *zap.Logger,
) {
	cronLogger := logger.Named("CronService")

	interval := time.Duration(settings.DefaultImportSettings().IntervalMinutes) * time.Minute
	if st, err := settingsSvc.Get(); err == nil {
		interval = time.Duration(st.IntervalMinutes) * time.Minute
	} else {
		cronLogger.Warn("could not load import settings, using default interval", zap.Error(err))
	}

	sched.Register(importJob(settingsSvc, importSvc, tracker, cronLogger, interval))
}

// importJob builds the job definition; Reschedule re-registers the same
// function under the same name when the operator changes the interval.
func importJob(
	settingsSvc *settings.Service,
	importSvc *importer.Service,
	tracker *taskqueue.Tracker,
	cronLogger *zap.Logger,
	interval time.Duration,
) pkgcron.Job {
	return pkgcron.Job{
		Name:        importJobName,
		Description: "mirror new group feed posts as draft articles",
		Interval:    interval,
		Fn: func(ctx context.Context) error {
			run, trackErr := tracker.Begin(ctx, "cron")
			if trackErr != nil {
				cronLogger.Warn("run tracking unavailable", zap.Error(trackErr))
			}

			stats, err := runImport(ctx, settingsSvc, importSvc)

			if run != nil {
				if finishErr := tracker.Finish(ctx, run.ID, stats, err); finishErr != nil {
					cronLogger.Warn("failed to record run outcome", zap.Error(finishErr))
				}
			}
			return err
		},
	}
}

// rescheduleImport swaps the import job for one at the new interval. The
// scheduler replaces in place, so there is never a second live loop.
func rescheduleImport(
	sched *pkgcron.Scheduler,
	settingsSvc *settings.Service,
	importSvc *importer.Service,
	tracker *taskqueue.Tracker,
	logger *zap.Logger,
	intervalMinutes int,
) {
	newInterval := time.Duration(intervalMinutes) * time.Minute
	if current, ok := sched.Interval(importJobName); ok && current == newInterval {
		return
	}
	sched.Reschedule(importJob(settingsSvc, importSvc, tracker, logger.Named("CronService"), newInterval))
}
