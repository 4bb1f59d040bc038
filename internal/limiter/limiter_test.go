package limiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCounter struct {
	counts map[string]int64
	ttl    time.Duration
	err    error
}

func newMemCounter() *memCounter {
	return &memCounter{counts: make(map[string]int64), ttl: 42 * time.Second}
}

func (m *memCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memCounter) TTL(_ context.Context, _ string) (time.Duration, error) {
	return m.ttl, nil
}

func TestCheck_AllowsUpToLimit(t *testing.T) {
	counter := newMemCounter()
	l := NewLimiter(counter)
	fixed := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	for i := int64(1); i <= 10; i++ {
		res, err := l.Check(context.Background(), "10.0.0.1", ActionSubmit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 10-i, res.Remaining)
		assert.Equal(t, int64(10), res.Limit)
		assert.Equal(t, fixed.Add(42*time.Second).Unix(), res.ResetAt)
	}

	res, err := l.Check(context.Background(), "10.0.0.1", ActionSubmit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(0), res.Remaining)

	// other clients keep their own window
	res, err = l.Check(context.Background(), "10.0.0.2", ActionSubmit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestCheck_UnknownActionUsesDefault(t *testing.T) {
	l := NewLimiter(newMemCounter())

	res, err := l.Check(context.Background(), "c", "reports")
	require.NoError(t, err)
	assert.Equal(t, DefaultLimits[ActionDefault].Limit, res.Limit)
}

func TestCheck_MissingTTLFallsBackToWindow(t *testing.T) {
	counter := newMemCounter()
	counter.ttl = -1
	l := NewLimiter(counter)
	fixed := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	res, err := l.Check(context.Background(), "c", ActionExport)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(time.Minute).Unix(), res.ResetAt)
}

func TestCheck_CounterError(t *testing.T) {
	counter := newMemCounter()
	counter.err = errors.New("connection refused")
	l := NewLimiter(counter)

	_, err := l.Check(context.Background(), "c", ActionSearch)
	assert.ErrorContains(t, err, "connection refused")
}

func TestLimits_Sorted(t *testing.T) {
	limits := NewLimiter(newMemCounter()).Limits()
	require.Len(t, limits, len(DefaultLimits))
	assert.Equal(t, ActionDefault, limits[0].Action)
	assert.Equal(t, ActionSubmit, limits[len(limits)-1].Action)
	for _, li := range limits {
		assert.Equal(t, 60, li.WindowSeconds)
	}
}
