package chrono

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStandardSleep(t *testing.T) {
	clock := NewStandardTime()

	start := time.Now()
	err := clock.Sleep(context.Background(), 20*time.Millisecond)
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestStandardSleepCancelled(t *testing.T) {
	clock := NewStandardTime()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := clock.Sleep(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, time.Since(start), time.Second)
}

func TestFakeTime(t *testing.T) {
	now := time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC)
	clock := &FakeTime{Current: now}

	require.NoError(t, clock.Sleep(context.Background(), time.Second))
	require.Equal(t, []time.Duration{time.Second}, clock.Slept)
	require.Equal(t, now.Add(time.Second), clock.Now())
}
