package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	mu      sync.Mutex
	started bool
	ticks   []int
	warned  bool
	bank    bool
	expired bool
	cancel  bool
}

func (r *recordingBroadcaster) TimerStarted(tableID, playerID string, totalSeconds int, bankAvailable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = true
}

func (r *recordingBroadcaster) TimerTick(tableID, playerID string, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, remaining)
}

func (r *recordingBroadcaster) TimerWarning(tableID, playerID string, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warned = true
}

func (r *recordingBroadcaster) TimeBankActivated(tableID, playerID string, bankRemaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bank = true
}

func (r *recordingBroadcaster) TimerExpired(tableID, playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expired = true
}

func (r *recordingBroadcaster) TimerCancelled(tableID, playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancel = true
}

type recordingFolder struct {
	mu       sync.Mutex
	called   bool
	consumed int
}

func (f *recordingFolder) ForceTimeoutFold(tableID string, timeBankConsumed int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called = true
	f.consumed = timeBankConsumed
	return nil
}

func TestTimerExpiresAndForcesFold(t *testing.T) {
	mock := quartz.NewMock(t)
	b := &recordingBroadcaster{}
	f := &recordingFolder{}
	sched := New(QuartzClock{Clock: mock}, b, f)

	sched.StartTimer("t1", "p1", 2, false, 0)

	mock.Advance(1 * time.Second).MustWait(t.Context())
	mock.Advance(1 * time.Second).MustWait(t.Context())

	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.called
	}, time.Second, 10*time.Millisecond)

	assert.True(t, b.expired)
}

func TestTimeBankActivatesBeforeExpiry(t *testing.T) {
	mock := quartz.NewMock(t)
	b := &recordingBroadcaster{}
	f := &recordingFolder{}
	sched := New(QuartzClock{Clock: mock}, b, f)

	sched.StartTimer("t1", "p1", 1, true, 1)

	mock.Advance(1 * time.Second).MustWait(t.Context())
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.bank
	}, time.Second, 10*time.Millisecond)

	mock.Advance(1 * time.Second).MustWait(t.Context())
	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.called
	}, time.Second, 10*time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, 1, f.consumed)
}

func TestCancelTimerIsIdempotent(t *testing.T) {
	mock := quartz.NewMock(t)
	b := &recordingBroadcaster{}
	sched := New(QuartzClock{Clock: mock}, b, nil)

	sched.StartTimer("t1", "p1", 30, false, 0)
	first := sched.CancelTimer("t1", "p1")
	second := sched.CancelTimer("t1", "p1")

	assert.Equal(t, 0, first)
	assert.Equal(t, 0, second)
	assert.True(t, b.cancel)
}

func TestStartTimerSupersedesPrevious(t *testing.T) {
	mock := quartz.NewMock(t)
	b := &recordingBroadcaster{}
	sched := New(QuartzClock{Clock: mock}, b, nil)

	sched.StartTimer("t1", "p1", 30, false, 0)
	sched.StartTimer("t1", "p2", 30, false, 0)

	_, ok := sched.activeSession("t1")
	require.True(t, ok)
	sess, _ := sched.activeSession("t1")
	assert.Equal(t, "p2", sess.playerID)
}
