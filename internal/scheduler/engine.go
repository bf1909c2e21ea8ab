package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/inkwell-cms/inkwell/internal/models"
)

// Engine periodically discovers due schedule entries and applies their content
// transitions. It owns the repeating timer and the in-memory index lifetime:
// the index is rebuilt from the store on every Start.
//
// Each tick runs to completion before the next one may fire; a tick still in
// progress when the timer fires again causes that firing to be skipped, so a
// tick never runs concurrently with itself.
type Engine struct {
	store  Store
	index  *Index
	cron   *cron.Cron
	logger zerolog.Logger

	mu      sync.Mutex
	running bool

	statsMu sync.Mutex
	stats   Stats
}

// Stats is a snapshot of engine counters accumulated since process start.
type Stats struct {
	Ticks            uint64
	Published        uint64
	Unpublished      uint64
	OrphansRemoved   uint64
	RedundantDropped uint64
	Failures         uint64
}

// Stats returns a copy of the engine's counters.
func (e *Engine) Stats() Stats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return e.stats
}

func (e *Engine) count(update func(*Stats)) {
	e.statsMu.Lock()
	update(&e.stats)
	e.statsMu.Unlock()
}

// NewEngine creates a new scheduler Engine. The engine ticks once a minute
// while started.
func NewEngine(store Store, index *Index, logger zerolog.Logger) *Engine {
	e := &Engine{
		store:  store,
		index:  index,
		logger: logger.With().Str("component", "scheduler_engine").Logger(),
	}

	e.cron = cron.New(cron.WithChain(
		cron.Recover(cronLogger{e.logger}),
		cron.SkipIfStillRunning(cronLogger{e.logger}),
	))
	// Registered once here so repeated Start/Stop cycles reuse the same entry.
	_, _ = e.cron.AddFunc("* * * * *", e.tick)

	return e
}

// Start rebuilds the index from the store and begins the repeating timer.
// Calling Start on a running engine is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		e.logger.Debug().Msg("engine already running")
		return nil
	}

	entries, err := e.store.GetAllSchedules(ctx)
	if err != nil {
		// The index is only a cache; ticks query the store directly, so the
		// engine still starts and the index fills in as schedules mutate.
		e.logger.Error().Err(err).Msg("failed to load schedules into index")
		entries = nil
	}
	loaded := e.index.Reset(entries)

	e.cron.Start()
	e.running = true

	e.logger.Info().
		Int("loaded_schedules", loaded).
		Msg("scheduler engine started")

	return nil
}

// Stop halts the timer. A tick already in flight is allowed to finish; the
// returned context completes when it has. The index is not cleared, since a
// subsequent Start reloads it from the store regardless. Calling Stop on a
// stopped engine is a no-op.
func (e *Engine) Stop() context.Context {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}

	e.running = false
	e.logger.Info().Msg("stopping scheduler engine")
	return e.cron.Stop()
}

// RunNow executes one tick immediately. Intended for tests and operational
// tooling; the timer keeps its own cadence.
func (e *Engine) RunNow() {
	e.tick()
}

func (e *Engine) tick() {
	e.runTick(context.Background(), time.Now().UTC())
}

// runTick scans for due entries per action and processes each independently.
// All failures are terminal at this boundary: a failed due-entry query or a
// failed entry leaves its schedule rows in place to be retried next tick.
func (e *Engine) runTick(ctx context.Context, now time.Time) {
	e.count(func(s *Stats) { s.Ticks++ })

	for _, action := range models.ScheduleActions() {
		due, err := e.store.GetDueSchedules(ctx, action, now)
		if err != nil {
			e.count(func(s *Stats) { s.Failures++ })
			e.logger.Error().
				Err(err).
				Str("action", string(action)).
				Msg("due schedule query failed")
			continue
		}

		for _, d := range due {
			if err := e.processEntry(ctx, d, now); err != nil {
				e.count(func(s *Stats) { s.Failures++ })
				e.logger.Error().
					Err(err).
					Str("schedule_id", d.Entry.ID.String()).
					Str("content_id", d.Entry.ContentID.String()).
					Str("action", string(d.Entry.Action)).
					Msg("failed to process due schedule")
			}
		}
	}
}

// processEntry applies one due schedule entry: transition the content, persist
// it, delete the consumed entry, update the index, in that order. A crash
// between steps leaves at worst a redundant entry pointing at already-correct
// content, resolved as a no-op on the next tick.
func (e *Engine) processEntry(ctx context.Context, due *models.DueSchedule, now time.Time) error {
	entry := due.Entry
	logger := e.logger.With().
		Str("schedule_id", entry.ID.String()).
		Str("content_id", entry.ContentID.String()).
		Str("action", string(entry.Action)).
		Logger()

	// Orphaned entry: the content was deleted after scheduling.
	if due.Content == nil {
		if err := e.store.DeleteSchedule(ctx, entry.ID); err != nil {
			return fmt.Errorf("delete orphaned schedule: %w", err)
		}
		e.index.Remove(entry.Action, entry.ContentID)
		e.count(func(s *Stats) { s.OrphansRemoved++ })
		logger.Info().Msg("removed orphaned schedule")
		return nil
	}

	content := due.Content

	// Content already in the target status: the entry is redundant, drop it
	// without touching the content.
	if content.Status == entry.Action.TargetStatus() {
		if err := e.store.DeleteSchedule(ctx, entry.ID); err != nil {
			return fmt.Errorf("delete redundant schedule: %w", err)
		}
		e.index.Remove(entry.Action, entry.ContentID)
		e.count(func(s *Stats) { s.RedundantDropped++ })
		logger.Info().
			Str("status", string(content.Status)).
			Msg("content already in target status, schedule dropped")
		return nil
	}

	switch entry.Action {
	case models.ActionPublish:
		content.Publish(now)
	case models.ActionUnpublish:
		content.Unpublish(now)
	}
	content.AddRevision(now, fmt.Sprintf("automatic %s by scheduler", entry.Action), nil)

	if err := e.store.UpdateContent(ctx, content); err != nil {
		return fmt.Errorf("persist content transition: %w", err)
	}
	if err := e.store.DeleteSchedule(ctx, entry.ID); err != nil {
		return fmt.Errorf("delete consumed schedule: %w", err)
	}
	e.index.Remove(entry.Action, entry.ContentID)
	e.count(func(s *Stats) {
		if entry.Action == models.ActionPublish {
			s.Published++
		} else {
			s.Unpublished++
		}
	})

	logger.Info().
		Str("status", string(content.Status)).
		Time("scheduled_at", entry.ScheduledAt).
		Msg("scheduled transition applied")

	return nil
}

// cronLogger adapts zerolog to the cron.Logger interface.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
