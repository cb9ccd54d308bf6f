package attempt

import (
	"errors"
	"sync"
	"time"
)

// State is the countdown's position in its lifecycle. Expired and Submitted
// are terminal; no transition leaves them.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateExpired
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateExpired:
		return "expired"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

var ErrAlreadyStarted = errors.New("countdown already started")

// Countdown is the attempt timer state machine. It owns no tick source of its
// own: callers feed it ticks, and transitions are guarded so that a stray tick
// arriving after submission or expiry is a no-op.
type Countdown struct {
	mu        sync.Mutex
	state     State
	remaining time.Duration
}

func NewCountdown() *Countdown {
	return &Countdown{state: StateNotStarted}
}

// Start seeds the timer with the resolved quiz limit.
func (c *Countdown) Start(limit time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateNotStarted {
		return ErrAlreadyStarted
	}
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	c.remaining = limit
	c.state = StateRunning
	return nil
}

// Tick advances the countdown by one second and returns the resulting state.
// Exactly one tick observes the transition to Expired; ticks in any other
// state change nothing.
func (c *Countdown) Tick() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return c.state
	}
	c.remaining -= time.Second
	if c.remaining <= 0 {
		c.remaining = 0
		c.state = StateExpired
	}
	return c.state
}

// Submit moves a running countdown to Submitted. It reports whether this call
// performed the transition, so double-finishes and finish-after-expiry are
// detectable by the caller.
func (c *Countdown) Submit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return false
	}
	c.state = StateSubmitted
	return true
}

func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}
