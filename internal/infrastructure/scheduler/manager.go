// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/logger"
)

const jobTimeout = 5 * time.Minute

// DigestJob mails the attention-required list and reports how many tickets it held.
type DigestJob interface {
	SendDigest(ctx context.Context) (int, error)
}

// CleanupJob removes expired rows and reports how many it touched.
type CleanupJob interface {
	Execute(ctx context.Context) (int64, error)
}

// Manager owns a single cron instance in the business timezone. Jobs never
// overlap with themselves and a panicking job does not take the process down.
type Manager struct {
	cron   *cron.Cron
	logger logger.Interface

	mu      sync.Mutex
	started bool
}

func NewManager(log logger.Interface) *Manager {
	cl := cronLogger{log: log}
	return &Manager{
		cron: cron.New(
			cron.WithLocation(biztime.Location()),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
			cron.WithLogger(cl),
		),
		logger: log,
	}
}

// RegisterAttentionDigest schedules job with a standard 5-field spec or a
// descriptor such as "@every 1h".
func (m *Manager) RegisterAttentionDigest(spec string, job DigestJob) error {
	if _, err := m.cron.AddFunc(spec, func() { m.runDigest(job) }); err != nil {
		return err
	}
	m.logger.Infow("registered attention digest job", "schedule", spec)
	return nil
}

func (m *Manager) RegisterResetCodeCleanup(spec string, job CleanupJob) error {
	if _, err := m.cron.AddFunc(spec, func() { m.runCleanup(job) }); err != nil {
		return err
	}
	m.logger.Infow("registered reset code cleanup job", "schedule", spec)
	return nil
}

func (m *Manager) runDigest(job DigestJob) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := biztime.NowUTC()
	count, err := job.SendDigest(ctx)
	if err != nil {
		m.logger.Errorw("attention digest failed", "error", err, "duration", time.Since(start))
		return
	}
	m.logger.Debugw("attention digest finished", "tickets", count, "duration", time.Since(start))
}

func (m *Manager) runCleanup(job CleanupJob) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("reset code cleanup failed", "error", err)
		return
	}
	if removed > 0 {
		m.logger.Infow("expired reset codes cleared", "count", removed)
	}
}

func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.cron.Start()
	m.started = true
	m.logger.Infow("scheduler started", "job_count", len(m.cron.Entries()))
}

// Stop waits for running jobs until ctx expires.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return
	}
	m.started = false

	done := m.cron.Stop()
	select {
	case <-done.Done():
		m.logger.Infow("scheduler stopped")
	case <-ctx.Done():
		m.logger.Warnw("scheduler stop timed out, abandoning running jobs")
	}
}

func (m *Manager) IsStarted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// cronLogger routes cron's own messages into the application logger.
type cronLogger struct {
	log logger.Interface
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
