package attempt

import (
	"context"
	"time"

	"github.com/quizmaster/quizmaster/internal/grading"
)

// SubmitFunc delivers the attempt's answers for grading. A nil return means
// the submission was accepted and the buffer snapshot may be cleared.
type SubmitFunc func(answers []grading.Answer, timeTaken string) error

// Runner drives one attempt: it ticks the countdown once a second and fires
// the submission exactly once, either on expiry or on a manual finish.
// Submission is fire-and-forget from the timer's perspective; a failed submit
// leaves the snapshot in place so the attempt can be retried.
type Runner struct {
	countdown *Countdown
	buffer    *Buffer
	submit    SubmitFunc

	now       func() time.Time
	ticks     func(ctx context.Context) <-chan time.Time
	cancel    context.CancelFunc
	startedAt time.Time
}

type RunnerOption func(*Runner)

// WithRunnerClock is test-only for deterministic time_taken values.
func WithRunnerClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// WithTickSource replaces the one-second ticker, letting tests feed ticks
// manually.
func WithTickSource(ticks func(ctx context.Context) <-chan time.Time) RunnerOption {
	return func(r *Runner) { r.ticks = ticks }
}

func NewRunner(countdown *Countdown, buffer *Buffer, submit SubmitFunc, opts ...RunnerOption) *Runner {
	r := &Runner{
		countdown: countdown,
		buffer:    buffer,
		submit:    submit,
		now:       time.Now,
		ticks:     tickerSource,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func tickerSource(ctx context.Context) <-chan time.Time {
	t := time.NewTicker(time.Second)
	out := make(chan time.Time)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				close(out)
				return
			case now := <-t.C:
				select {
				case out <- now:
				case <-ctx.Done():
					close(out)
					return
				}
			}
		}
	}()
	return out
}

// Start seeds the countdown and begins ticking.
func (r *Runner) Start(ctx context.Context, limit time.Duration) error {
	if err := r.countdown.Start(limit); err != nil {
		return err
	}
	r.startedAt = r.now()
	ctx, r.cancel = context.WithCancel(ctx)
	go r.loop(ctx)
	return nil
}

func (r *Runner) loop(ctx context.Context) {
	// The tick source must be torn down in every terminal state, not just on a
	// manual finish; otherwise an expired attempt leaks the ticker goroutine.
	defer r.cancel()
	ticks := r.ticks(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			// Only the tick that crosses to Expired fires the submission;
			// ticks after a manual finish land in a terminal state and do
			// nothing.
			if r.countdown.Tick() == StateExpired {
				r.fire()
				return
			}
		}
	}
}

// Finish is the user-initiated submission. It stops the tick source first and
// reports false when the attempt already reached a terminal state.
func (r *Runner) Finish() bool {
	if !r.countdown.Submit() {
		return false
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.fire()
	return true
}

func (r *Runner) fire() {
	elapsed := r.now().Sub(r.startedAt)
	if err := r.submit(r.buffer.Answers(), FormatElapsed(elapsed)); err == nil {
		_ = r.buffer.Clear()
	}
}
