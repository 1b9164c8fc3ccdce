package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"lumiere/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.FormatText})
}

func TestPoller_DeliversSnapshots(t *testing.T) {
	var calls atomic.Int64
	fetch := func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	p := New(10*time.Millisecond, fetch, testLogger())

	var received atomic.Int64
	unsubscribe := p.Subscribe(context.Background(), func(snapshot int) {
		received.Add(1)
	})

	time.Sleep(55 * time.Millisecond)
	unsubscribe()

	got := received.Load()
	if got < 2 {
		t.Errorf("expected at least 2 deliveries, got %d", got)
	}
}

func TestPoller_FirstFetchIsImmediate(t *testing.T) {
	fetched := make(chan struct{}, 1)
	fetch := func(ctx context.Context) (struct{}, error) {
		select {
		case fetched <- struct{}{}:
		default:
		}
		return struct{}{}, nil
	}

	p := New(time.Hour, fetch, testLogger())
	unsubscribe := p.Subscribe(context.Background(), func(struct{}) {})
	defer unsubscribe()

	select {
	case <-fetched:
	case <-time.After(time.Second):
		t.Fatal("first fetch did not fire immediately")
	}
}

func TestPoller_FetchErrorsDoNotStopLoop(t *testing.T) {
	var calls atomic.Int64
	fetch := func(ctx context.Context) (int, error) {
		n := calls.Add(1)
		if n%2 == 1 {
			return 0, errors.New("transient")
		}
		return int(n), nil
	}

	p := New(10*time.Millisecond, fetch, testLogger())

	var received atomic.Int64
	unsubscribe := p.Subscribe(context.Background(), func(int) {
		received.Add(1)
	})

	time.Sleep(80 * time.Millisecond)
	unsubscribe()

	if received.Load() == 0 {
		t.Error("expected deliveries despite intermittent fetch errors")
	}
}

func TestPoller_UnsubscribeStopsDeliveries(t *testing.T) {
	fetch := func(ctx context.Context) (int, error) { return 1, nil }
	p := New(5*time.Millisecond, fetch, testLogger())

	var received atomic.Int64
	unsubscribe := p.Subscribe(context.Background(), func(int) {
		received.Add(1)
	})

	time.Sleep(20 * time.Millisecond)
	unsubscribe()
	after := received.Load()

	time.Sleep(30 * time.Millisecond)
	if received.Load() != after {
		t.Error("deliveries continued after unsubscribe")
	}

	// Second call must not panic or block.
	unsubscribe()
}
