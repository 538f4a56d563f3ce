package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_FiresInDueOrder(t *testing.T) {
	m := NewManual()
	var fired []string

	m.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	m.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	m.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "b") })
	assert.Equal(t, 3, m.Pending())

	m.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, fired)

	m.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Zero(t, m.Pending())
}

func TestManual_Stop(t *testing.T) {
	m := NewManual()
	var fired bool

	stop := m.AfterFunc(time.Millisecond, func() { fired = true })
	assert.True(t, stop())
	assert.False(t, stop(), "second stop reports nothing stopped")

	m.Advance(time.Second)
	assert.False(t, fired)
}

func TestManual_ChainedCallbacks(t *testing.T) {
	m := NewManual()
	var ticks int

	var tick func()
	tick = func() {
		ticks++
		if ticks < 5 {
			m.AfterFunc(10*time.Millisecond, tick)
		}
	}
	m.AfterFunc(10*time.Millisecond, tick)

	m.Advance(35 * time.Millisecond)
	assert.Equal(t, 3, ticks)

	m.Advance(time.Second)
	assert.Equal(t, 5, ticks)
}

func TestRealScheduler(t *testing.T) {
	done := make(chan struct{})
	NewScheduler().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "callback did not fire")
	}

	stop := NewScheduler().AfterFunc(time.Hour, func() {})
	assert.True(t, stop())
}
