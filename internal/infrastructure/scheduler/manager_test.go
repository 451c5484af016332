package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/shared/logger"
)

type fakeDigest struct {
	calls int
	count int
	err   error
}

func (f *fakeDigest) SendDigest(context.Context) (int, error) {
	f.calls++
	return f.count, f.err
}

type fakeCleanup struct {
	calls   int
	removed int64
	err     error
}

func (f *fakeCleanup) Execute(context.Context) (int64, error) {
	f.calls++
	return f.removed, f.err
}

func TestManager_RegisterRejectsBadSpec(t *testing.T) {
	m := NewManager(logger.NewNopLogger())

	err := m.RegisterAttentionDigest("not a schedule", &fakeDigest{})
	assert.Error(t, err)

	err = m.RegisterResetCodeCleanup("61 * * * *", &fakeCleanup{})
	assert.Error(t, err)
}

func TestManager_RegisterAcceptsDescriptors(t *testing.T) {
	m := NewManager(logger.NewNopLogger())

	require.NoError(t, m.RegisterAttentionDigest("@every 1h", &fakeDigest{}))
	require.NoError(t, m.RegisterResetCodeCleanup("@daily", &fakeCleanup{}))
	assert.Len(t, m.cron.Entries(), 2)
}

func TestManager_RunJobs(t *testing.T) {
	m := NewManager(logger.NewNopLogger())

	digest := &fakeDigest{count: 3}
	m.runDigest(digest)
	assert.Equal(t, 1, digest.calls)

	failing := &fakeDigest{err: errors.New("smtp down")}
	m.runDigest(failing)
	assert.Equal(t, 1, failing.calls)

	cleanup := &fakeCleanup{removed: 2}
	m.runCleanup(cleanup)
	assert.Equal(t, 1, cleanup.calls)
}

func TestManager_StartStop(t *testing.T) {
	m := NewManager(logger.NewNopLogger())
	require.NoError(t, m.RegisterResetCodeCleanup("@daily", &fakeCleanup{}))

	m.Start()
	m.Start()
	assert.True(t, m.IsStarted())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.Stop(ctx)
	assert.False(t, m.IsStarted())

	// Stopping twice is a no-op.
	m.Stop(ctx)
}
