package uniqueness

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sigpat/sigpat/pkg/metrics"
)

// DefaultDebounce is the quiet period required before a lookup fires.
const DefaultDebounce = 500 * time.Millisecond

// CheckFunc resolves whether a value is already taken. The validator supplies
// the current debounced value; everything else is bound by the caller.
type CheckFunc func(ctx context.Context, value string) (bool, error)

// State is the validity snapshot exposed to forms. IsChecking is true only
// while a lookup for the current debounced value is outstanding.
type State struct {
	IsDuplicate bool
	IsChecking  bool
	Err         error
}

// Options tunes a DebouncedValidator.
type Options struct {
	// Debounce is the quiet period; DefaultDebounce when zero or negative.
	Debounce time.Duration
	// Disabled turns the validator into a no-op, e.g. when the field has no
	// uniqueness rule configured.
	Disabled bool
	// OnChange is invoked outside the validator lock on every state
	// transition so forms can gate their submit control.
	OnChange func(State)
}

// DebouncedValidator coalesces keystroke-rate value changes into at most one
// lookup per quiet period, memoizes results for its own lifetime and discards
// stale responses by value identity. One instance per form field; Close it
// when the owning form goes away.
type DebouncedValidator struct {
	mu      sync.Mutex
	check   CheckFunc
	opts    Options
	timer   *time.Timer
	current string
	cache   map[string]bool
	state   State
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool
}

// NewDebouncedValidator builds a validator around the supplied lookup.
func NewDebouncedValidator(check CheckFunc, opts Options) *DebouncedValidator {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &DebouncedValidator{
		check:  check,
		opts:   opts,
		cache:  make(map[string]bool),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetValue feeds the latest raw input value. Each call restarts the debounce
// timer; only the value standing after the quiet period is looked up.
func (v *DebouncedValidator) SetValue(value string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || v.opts.Disabled || v.check == nil {
		return
	}
	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.opts.Debounce, func() {
		v.commit(value)
	})
}

// State returns the current validity snapshot.
func (v *DebouncedValidator) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Close cancels the pending timer and any in-flight lookup and detaches the
// change callback. The validator ignores all input afterwards.
func (v *DebouncedValidator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	v.cancel()
	v.opts.OnChange = nil
	v.cache = nil
}

// commit runs when the debounce timer fires: the value becomes the current
// debounced value and is resolved from cache or via a lookup goroutine.
func (v *DebouncedValidator) commit(value string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.current = value

	if strings.TrimSpace(value) == "" {
		notify := v.setState(State{})
		v.mu.Unlock()
		notify()
		return
	}

	if dup, ok := v.cache[value]; ok {
		metrics.ValidationCacheHits.Inc()
		notify := v.setState(State{IsDuplicate: dup})
		v.mu.Unlock()
		notify()
		return
	}

	notify := v.setState(State{IsDuplicate: v.state.IsDuplicate, IsChecking: true})
	ctx := v.ctx
	v.mu.Unlock()
	notify()

	go func() {
		dup, err := v.check(ctx, value)

		v.mu.Lock()
		// A newer debounced value supersedes this response regardless of
		// arrival order.
		if v.closed || v.current != value {
			v.mu.Unlock()
			return
		}
		var done func()
		if err != nil {
			done = v.setState(State{Err: err})
		} else {
			v.cache[value] = dup
			done = v.setState(State{IsDuplicate: dup})
		}
		v.mu.Unlock()
		done()
	}()
}

// setState records the new state and returns the notification to run after
// the lock is released. Callbacks never run under the validator lock.
func (v *DebouncedValidator) setState(next State) func() {
	prev := v.state
	v.state = next
	cb := v.opts.OnChange
	if cb == nil || prev == next {
		return func() {}
	}
	return func() { cb(next) }
}
