package uniqueness

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func countingCheck(calls *int64, last *atomic.Value, result bool) CheckFunc {
	return func(ctx context.Context, value string) (bool, error) {
		atomic.AddInt64(calls, 1)
		last.Store(value)
		return result, nil
	}
}

func waitForState(t *testing.T, v *DebouncedValidator, want func(State) bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		return want(v.State())
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDebounceCoalescesKeystrokes(t *testing.T) {
	var calls int64
	var last atomic.Value

	v := NewDebouncedValidator(countingCheck(&calls, &last, false), Options{Debounce: 60 * time.Millisecond})
	defer v.Close()

	v.SetValue("1")
	time.Sleep(15 * time.Millisecond)
	v.SetValue("11.2")
	time.Sleep(15 * time.Millisecond)
	v.SetValue("11.222.333/0001-81")

	waitForState(t, v, func(s State) bool { return !s.IsChecking && s.Err == nil && atomic.LoadInt64(&calls) > 0 })

	require.Equal(t, int64(1), atomic.LoadInt64(&calls))
	require.Equal(t, "11.222.333/0001-81", last.Load())
	require.False(t, v.State().IsDuplicate)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	check := func(ctx context.Context, value string) (bool, error) {
		if value == "A" {
			<-release
			return true, nil // late duplicate verdict for an abandoned value
		}
		return false, nil
	}

	v := NewDebouncedValidator(check, Options{Debounce: 10 * time.Millisecond})
	defer v.Close()

	v.SetValue("A")
	waitForState(t, v, func(s State) bool { return s.IsChecking })

	v.SetValue("B")
	waitForState(t, v, func(s State) bool { return !s.IsChecking && !s.IsDuplicate })

	close(release)

	// the response for A must never overwrite B's verdict
	time.Sleep(50 * time.Millisecond)
	s := v.State()
	require.False(t, s.IsDuplicate)
	require.False(t, s.IsChecking)
	require.NoError(t, s.Err)
}

func TestRepeatedValueServedFromCache(t *testing.T) {
	var calls int64
	var last atomic.Value

	v := NewDebouncedValidator(countingCheck(&calls, &last, true), Options{Debounce: 10 * time.Millisecond})
	defer v.Close()

	v.SetValue("12345678901")
	waitForState(t, v, func(s State) bool { return s.IsDuplicate })
	require.Equal(t, int64(1), atomic.LoadInt64(&calls))

	v.SetValue("098")
	waitForState(t, v, func(s State) bool { return atomic.LoadInt64(&calls) == 2 })

	// retyping the first value answers from the per-instance cache
	v.SetValue("12345678901")
	waitForState(t, v, func(s State) bool { return s.IsDuplicate && !s.IsChecking })
	require.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestEmptyValueNeverTriggersLookup(t *testing.T) {
	var calls int64
	var last atomic.Value

	v := NewDebouncedValidator(countingCheck(&calls, &last, true), Options{Debounce: 10 * time.Millisecond})
	defer v.Close()

	v.SetValue("   ")
	time.Sleep(60 * time.Millisecond)

	require.Zero(t, atomic.LoadInt64(&calls))
	require.False(t, v.State().IsDuplicate)
}

func TestDisabledValidatorIsInert(t *testing.T) {
	var calls int64
	var last atomic.Value

	v := NewDebouncedValidator(countingCheck(&calls, &last, true), Options{
		Debounce: 10 * time.Millisecond,
		Disabled: true,
	})
	defer v.Close()

	v.SetValue("taken@example.com")
	time.Sleep(60 * time.Millisecond)

	require.Zero(t, atomic.LoadInt64(&calls))
}

func TestCloseCancelsPendingTimer(t *testing.T) {
	var calls int64
	var last atomic.Value

	v := NewDebouncedValidator(countingCheck(&calls, &last, true), Options{Debounce: 30 * time.Millisecond})

	v.SetValue("taken@example.com")
	v.Close()
	time.Sleep(80 * time.Millisecond)

	require.Zero(t, atomic.LoadInt64(&calls))
	v.SetValue("ignored after close")
	time.Sleep(50 * time.Millisecond)
	require.Zero(t, atomic.LoadInt64(&calls))
}

func TestOnChangeNotifiesTransitions(t *testing.T) {
	var mu sync.Mutex
	var transitions []State

	var calls int64
	var last atomic.Value
	v := NewDebouncedValidator(countingCheck(&calls, &last, true), Options{
		Debounce: 10 * time.Millisecond,
		OnChange: func(s State) {
			mu.Lock()
			transitions = append(transitions, s)
			mu.Unlock()
		},
	})
	defer v.Close()

	v.SetValue("taken@example.com")
	waitForState(t, v, func(s State) bool { return s.IsDuplicate && !s.IsChecking })

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, transitions, 2)
	require.True(t, transitions[0].IsChecking)
	require.False(t, transitions[0].IsDuplicate)
	require.True(t, transitions[1].IsDuplicate)
	require.False(t, transitions[1].IsChecking)
}

func TestLookupErrorSurfacesInState(t *testing.T) {
	check := func(ctx context.Context, value string) (bool, error) {
		return false, context.DeadlineExceeded
	}
	v := NewDebouncedValidator(check, Options{Debounce: 10 * time.Millisecond})
	defer v.Close()

	v.SetValue("anything")
	waitForState(t, v, func(s State) bool { return s.Err != nil })
	require.False(t, v.State().IsDuplicate)
}
