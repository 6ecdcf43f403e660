package chrono

import (
	"context"
	"time"
)

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time.
	Now() time.Time
	// Sleep waits for the given duration or until ctx is done, whichever comes first.
	// It returns ctx.Err() if the wait was cut short.
	Sleep(ctx context.Context, d time.Duration) error
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

// NewStandardTime is the constructor of StandardTime.
func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (StandardTime) Now() time.Time {
	return time.Now()
}

func (StandardTime) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FakeTime is a TimeAPI with a fixed clock that records sleeps instead of waiting.
type FakeTime struct {
	Current time.Time
	Slept   []time.Duration
}

func (f *FakeTime) Now() time.Time {
	return f.Current
}

func (f *FakeTime) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.Slept = append(f.Slept, d)
	f.Current = f.Current.Add(d)
	return nil
}
