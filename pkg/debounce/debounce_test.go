package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTriggerCoalescesBursts(t *testing.T) {
	var calls atomic.Int32
	d := New(30*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	require.True(t, d.Pending())

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
}

func TestTriggerRestartsWindow(t *testing.T) {
	var fired atomic.Int64
	start := time.Now()
	d := New(50*time.Millisecond, func() { fired.Store(int64(time.Since(start))) })

	d.Trigger()
	time.Sleep(30 * time.Millisecond)
	d.Trigger()

	require.Eventually(t, func() bool { return fired.Load() != 0 }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, time.Duration(fired.Load()), 80*time.Millisecond)
}

func TestStopCancelsPendingCall(t *testing.T) {
	var calls atomic.Int32
	d := New(20*time.Millisecond, func() { calls.Add(1) })

	assert.False(t, d.Stop())
	d.Trigger()
	assert.True(t, d.Stop())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Pending())
}

func TestFlushRunsImmediately(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Hour, func() { calls.Add(1) })

	assert.False(t, d.Flush())
	d.Trigger()
	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
	assert.False(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
}
