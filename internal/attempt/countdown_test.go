package attempt

import (
	"testing"
	"time"
)

func TestCountdownExpires(t *testing.T) {
	c := NewCountdown()
	if err := c.Start(3 * time.Second); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := c.State(); got != StateRunning {
		t.Fatalf("state = %v, want running", got)
	}

	if got := c.Tick(); got != StateRunning {
		t.Fatalf("after 1 tick state = %v", got)
	}
	if got := c.Tick(); got != StateRunning {
		t.Fatalf("after 2 ticks state = %v", got)
	}
	if got := c.Tick(); got != StateExpired {
		t.Fatalf("after 3 ticks state = %v, want expired", got)
	}
	if c.Remaining() != 0 {
		t.Fatalf("remaining = %v, want 0", c.Remaining())
	}

	// Late ticks in a terminal state change nothing.
	if got := c.Tick(); got != StateExpired {
		t.Fatalf("late tick moved state to %v", got)
	}
}

func TestCountdownSubmitStopsTicks(t *testing.T) {
	c := NewCountdown()
	if err := c.Start(time.Minute); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !c.Submit() {
		t.Fatal("first submit should perform the transition")
	}
	if c.Submit() {
		t.Fatal("second submit must be a no-op")
	}
	remaining := c.Remaining()
	if got := c.Tick(); got != StateSubmitted {
		t.Fatalf("tick after submit -> %v, want submitted", got)
	}
	if c.Remaining() != remaining {
		t.Fatal("tick after submit must not advance the clock")
	}
}

func TestCountdownSubmitAfterExpiry(t *testing.T) {
	c := NewCountdown()
	if err := c.Start(time.Second); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := c.Tick(); got != StateExpired {
		t.Fatalf("state = %v, want expired", got)
	}
	if c.Submit() {
		t.Fatal("submit after expiry must not transition")
	}
}

func TestCountdownDoubleStart(t *testing.T) {
	c := NewCountdown()
	if err := c.Start(time.Minute); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Start(time.Minute); err != ErrAlreadyStarted {
		t.Fatalf("second start err = %v, want ErrAlreadyStarted", err)
	}
}

func TestCountdownNonPositiveLimitDefaults(t *testing.T) {
	c := NewCountdown()
	if err := c.Start(0); err != nil {
		t.Fatalf("start: %v", err)
	}
	if c.Remaining() != DefaultTimeLimit {
		t.Fatalf("remaining = %v, want %v", c.Remaining(), DefaultTimeLimit)
	}
}
