package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *MemoryStore, *time.Time) {
	t.Helper()

	store := NewMemoryStore()
	m := NewManager(store, DefaultConfig())

	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	return m, store, &now
}

func TestManager_LoginCreatesRecord(t *testing.T) {
	m, store, _ := newTestManager(t)

	m.Login("fh-1", "Example Hall")

	id, ok := store.Get(KeyFuneralHomeID)
	require.True(t, ok)
	assert.Equal(t, "fh-1", id)

	rec, ok := m.readRecord()
	require.True(t, ok)
	assert.Equal(t, "Example Hall", rec.FuneralHomeName)
	assert.Equal(t, rec.LoginTime, rec.LastActivity)

	assert.Equal(t, StateActive, m.Check())
}

func TestManager_ExpiresAfterTimeout(t *testing.T) {
	m, store, now := newTestManager(t)

	m.Login("fh-1", "Example Hall")

	expired := false
	m.OnExpired(func() { expired = true })

	*now = now.Add(125 * time.Minute)

	assert.Equal(t, StateExpired, m.Check())
	assert.True(t, expired)

	_, ok := store.Get(KeyFuneralHomeID)
	assert.False(t, ok, "identity markers must be cleared on expiry")
	_, ok = store.Get(KeyData)
	assert.False(t, ok, "timer record must be cleared on expiry")
}

func TestManager_WarningBoundary(t *testing.T) {
	m, _, now := newTestManager(t)

	m.Login("fh-1", "Example Hall")

	var warned int
	m.OnWarning(func(minutes int) { warned = minutes })

	// 116 minutes elapsed, 4 minutes remaining.
	*now = now.Add(116 * time.Minute)
	assert.Equal(t, StateWarning, m.Check())
	assert.Equal(t, 4, warned)
	assert.Equal(t, 4, m.RemainingMinutes())

	// 119 minutes elapsed, 1 minute remaining.
	*now = now.Add(3 * time.Minute)
	assert.Equal(t, StateWarning, m.Check())
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, m.RemainingMinutes())
}

func TestManager_NoWarningOutsideWindow(t *testing.T) {
	m, _, now := newTestManager(t)

	m.Login("fh-1", "Example Hall")

	*now = now.Add(114 * time.Minute)
	assert.Equal(t, StateActive, m.Check())
}

func TestManager_ActivityResetsClock(t *testing.T) {
	m, _, now := newTestManager(t)

	m.Login("fh-1", "Example Hall")

	*now = now.Add(116 * time.Minute)
	require.Equal(t, StateWarning, m.Check())

	m.Extend()
	assert.Equal(t, StateActive, m.State(), "extend exits the warning state")

	*now = now.Add(time.Hour)
	assert.Equal(t, StateActive, m.Check(), "clock restarts from the extend")

	*now = now.Add(2*time.Hour + time.Minute)
	assert.Equal(t, StateExpired, m.Check())
}

func TestManager_SynthesizesMissingRecord(t *testing.T) {
	m, store, _ := newTestManager(t)

	// Session stored by an older client: identity markers only.
	store.Set(KeyFuneralHomeID, "fh-legacy")
	store.Set(KeyFuneralHomeName, "Legacy Hall")

	assert.Equal(t, StateActive, m.Check())

	rec, ok := m.readRecord()
	require.True(t, ok)
	assert.Equal(t, "fh-legacy", rec.FuneralHomeID)
}

func TestManager_UnauthenticatedWithoutIdentity(t *testing.T) {
	m, _, _ := newTestManager(t)

	assert.Equal(t, StateUnauthenticated, m.Check())
}

func TestManager_LogoutClearsEverything(t *testing.T) {
	m, store, _ := newTestManager(t)

	m.Login("fh-1", "Example Hall")
	m.Logout()

	assert.Equal(t, StateUnauthenticated, m.State())
	for _, key := range []string{KeyFuneralHomeID, KeyFuneralHomeName, KeyData} {
		_, ok := store.Get(key)
		assert.False(t, ok, key)
	}
}

func TestManager_RunStops(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, Config{
		Timeout:       2 * time.Hour,
		WarningBefore: 5 * time.Minute,
		CheckInterval: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	m.Run(ctx)
	m.Stop()

	// Second stop is a no-op.
	m.Stop()
}

func TestCeilMinutes(t *testing.T) {
	assert.Equal(t, 1, ceilMinutes(time.Second))
	assert.Equal(t, 1, ceilMinutes(time.Minute))
	assert.Equal(t, 4, ceilMinutes(3*time.Minute+time.Millisecond))
	assert.Equal(t, 5, ceilMinutes(5*time.Minute))
}
