package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Storage keys for the browser-local key space.
const (
	KeyFuneralHomeID   = "funeral_home_id"
	KeyFuneralHomeName = "funeral_home_name"
	KeyData            = "session_data"
)

// Store abstracts the browser sessionStorage the controller persists into.
type Store interface {
	Get(key string) (string, bool)
	Set(key string, value string)
	Delete(key string)
}

type State int

const (
	StateUnauthenticated State = iota
	StateActive
	StateWarning
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateWarning:
		return "warning"
	case StateExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Record is the timer record kept alongside the identity markers.
// Timestamps are unix milliseconds.
type Record struct {
	FuneralHomeID   string `json:"funeral_home_id"`
	FuneralHomeName string `json:"funeral_home_name"`
	LoginTime       int64  `json:"login_time"`
	LastActivity    int64  `json:"last_activity"`
}

type Config struct {
	Timeout       time.Duration
	WarningBefore time.Duration
	CheckInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout:       2 * time.Hour,
		WarningBefore: 5 * time.Minute,
		CheckInterval: time.Minute,
	}
}

// Manager enforces a rolling inactivity timeout on an authenticated session
// and warns before forced logout. It is a UX/hygiene guard only; access
// control enforcement lives in the token layer.
type Manager struct {
	mu    sync.Mutex
	cfg   Config
	store Store
	now   func() time.Time

	state     State
	remaining time.Duration

	onWarning func(remainingMinutes int)
	onExpired func()

	stop chan struct{}
	done chan struct{}
}

func NewManager(store Store, cfg Config) *Manager {
	if cfg.Timeout == 0 {
		cfg = DefaultConfig()
	}

	return &Manager{
		cfg:   cfg,
		store: store,
		now:   time.Now,
		state: StateUnauthenticated,
	}
}

// OnWarning registers the callback fired when the session enters the
// warning window. Remaining time is reported in whole minutes, rounded up.
func (m *Manager) OnWarning(fn func(remainingMinutes int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onWarning = fn
}

// OnExpired registers the callback fired once when the session expires.
func (m *Manager) OnExpired(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpired = fn
}

// Login creates the session: identity markers plus a fresh timer record.
func (m *Manager) Login(funeralHomeID string, funeralHomeName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UnixMilli()
	m.writeRecord(Record{
		FuneralHomeID:   funeralHomeID,
		FuneralHomeName: funeralHomeName,
		LoginTime:       now,
		LastActivity:    now,
	})
	m.store.Set(KeyFuneralHomeID, funeralHomeID)
	m.store.Set(KeyFuneralHomeName, funeralHomeName)
	m.state = StateActive
}

// Logout clears all session state. Valid from any state.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clear()
	m.state = StateUnauthenticated
}

// Touch records a tracked user interaction (click, keypress, scroll),
// resetting the activity clock and clearing any warning.
func (m *Manager) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.readRecord()
	if !ok {
		return
	}

	rec.LastActivity = m.now().UnixMilli()
	m.writeRecord(*rec)

	if m.state == StateWarning {
		m.state = StateActive
	}
}

// Extend is the explicit "keep me signed in" action from the warning prompt.
func (m *Manager) Extend() {
	m.Touch()
}

// Check evaluates the session against the timeout and performs the state
// transition. Expiry clears all stored session state.
func (m *Manager) Check() State {
	m.mu.Lock()

	id, okID := m.store.Get(KeyFuneralHomeID)
	name, okName := m.store.Get(KeyFuneralHomeName)
	if !okID || !okName {
		m.state = StateUnauthenticated
		m.mu.Unlock()
		return StateUnauthenticated
	}

	rec, ok := m.readRecord()
	if !ok {
		// Identity markers without a timer record mean a session stored by
		// an older client; synthesize a fresh record instead of expiring.
		now := m.now().UnixMilli()
		fresh := Record{
			FuneralHomeID:   id,
			FuneralHomeName: name,
			LoginTime:       now,
			LastActivity:    now,
		}
		m.writeRecord(fresh)
		rec = &fresh
	}

	elapsed := m.now().Sub(time.UnixMilli(rec.LastActivity))
	remaining := m.cfg.Timeout - elapsed
	m.remaining = remaining

	switch {
	case remaining <= 0:
		m.clear()
		m.state = StateExpired
		fn := m.onExpired
		m.mu.Unlock()
		if fn != nil {
			fn()
		}
		return StateExpired
	case remaining <= m.cfg.WarningBefore:
		m.state = StateWarning
		minutes := ceilMinutes(remaining)
		fn := m.onWarning
		m.mu.Unlock()
		if fn != nil {
			fn(minutes)
		}
		return StateWarning
	default:
		m.state = StateActive
		m.mu.Unlock()
		return StateActive
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// RemainingMinutes reports the time left before expiry in whole minutes,
// rounded up, as of the last Check.
func (m *Manager) RemainingMinutes() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.remaining <= 0 {
		return 0
	}

	return ceilMinutes(m.remaining)
}

// Run drives periodic checks until the context is cancelled or Stop is
// called. The ticker is released on teardown.
func (m *Manager) Run(ctx context.Context) {
	m.mu.Lock()
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	stop, done := m.stop, m.done
	m.mu.Unlock()

	ticker := time.NewTicker(m.cfg.CheckInterval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		m.Check()

		for {
			select {
			case <-ticker.C:
				m.Check()
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()
}

// Stop detaches the periodic check started by Run.
func (m *Manager) Stop() {
	m.mu.Lock()
	stop, done := m.stop, m.done
	m.stop, m.done = nil, nil
	m.mu.Unlock()

	if stop == nil {
		return
	}

	close(stop)
	<-done
}

func (m *Manager) readRecord() (*Record, bool) {
	raw, ok := m.store.Get(KeyData)
	if !ok {
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, false
	}

	return &rec, true
}

func (m *Manager) writeRecord(rec Record) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	m.store.Set(KeyData, string(raw))
}

func (m *Manager) clear() {
	m.store.Delete(KeyFuneralHomeID)
	m.store.Delete(KeyFuneralHomeName)
	m.store.Delete(KeyData)
}

func ceilMinutes(d time.Duration) int {
	minutes := int(d / time.Minute)
	if d%time.Minute != 0 {
		minutes++
	}
	return minutes
}
