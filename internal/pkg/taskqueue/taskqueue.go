package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redisc "github.com/groupmirror/core/internal/pkg/redis"
	"github.com/redis/go-redis/v9"
)

// RunStatus is the lifecycle state of a tracked import run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// ErrRunInProgress is returned when a manual run is requested while
// another one holds the dedup slot.
var ErrRunInProgress = errors.New("an import run is already in progress")

// Run is one tracked import invocation stored in Redis.
type Run struct {
	ID         string          `json:"id"`
	Status     RunStatus       `json:"status"`
	Trigger    string          `json:"trigger"` // "manual" | "cron"
	Stats      json.RawMessage `json:"stats,omitempty"`
	Error      string          `json:"error,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

const (
	keyPrefix = "gm:run:"
	keyIndex  = "gm:runs:index" // sorted set: score=started_at, member=run_id
	keyActive = "gm:runs:active"
	runTTL    = 7 * 24 * time.Hour
)

// Tracker records import runs in Redis so the admin API can poll their
// status. The active-slot key doubles as a soft guard against a second
// manual trigger racing a run that is still in flight.
type Tracker struct {
	rc *redisc.Client
}

func NewTracker(rc *redisc.Client) *Tracker {
	return &Tracker{rc: rc}
}

func (t *Tracker) runKey(id string) string { return keyPrefix + id }

// Begin registers a new run. For manual triggers the active slot must be
// free; cron runs bypass it (the scheduler already serializes its ticks).
func (t *Tracker) Begin(ctx context.Context, trigger string) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Status:    RunRunning,
		Trigger:   trigger,
		StartedAt: time.Now(),
	}

	if trigger == "manual" {
		ok, err := t.rc.Raw().SetNX(ctx, keyActive, run.ID, 10*time.Minute).Result()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRunInProgress
		}
	}

	data, err := json.Marshal(run)
	if err != nil {
		return nil, err
	}

	pipe := t.rc.Raw().TxPipeline()
	pipe.Set(ctx, t.runKey(run.ID), data, runTTL)
	pipe.ZAdd(ctx, keyIndex, redis.Z{
		Score:  float64(run.StartedAt.UnixMilli()),
		Member: run.ID,
	})
	_, err = pipe.Exec(ctx)
	return run, err
}

// Finish records the outcome of a run and frees the active slot.
func (t *Tracker) Finish(ctx context.Context, id string, stats interface{}, runErr error) error {
	run, err := t.Get(ctx, id)
	if err != nil || run == nil {
		return errors.New("run not found")
	}

	now := time.Now()
	run.FinishedAt = &now
	if runErr != nil {
		run.Status = RunFailed
		run.Error = runErr.Error()
	} else {
		run.Status = RunCompleted
	}
	if stats != nil {
		run.Stats, _ = json.Marshal(stats)
	}

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	pipe := t.rc.Raw().TxPipeline()
	pipe.Set(ctx, t.runKey(id), data, runTTL)
	if run.Trigger == "manual" {
		pipe.Del(ctx, keyActive)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Get retrieves a run by ID. Returns (nil, nil) when unknown.
func (t *Tracker) Get(ctx context.Context, id string) (*Run, error) {
	data, err := t.rc.Raw().Get(ctx, t.runKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var run Run
	return &run, json.Unmarshal(data, &run)
}

// Recent returns the latest runs, newest first.
func (t *Tracker) Recent(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	ids, err := t.rc.Raw().ZRevRange(ctx, keyIndex, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	runs := make([]*Run, 0, len(ids))
	for _, id := range ids {
		run, err := t.Get(ctx, id)
		if err != nil || run == nil {
			continue
		}
		runs = append(runs, run)
	}
	return runs, nil
}
