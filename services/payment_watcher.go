package services

import (
	"context"
	"time"

	"gummy-store/models"
)

const (
	WatchPending   = "pending"
	WatchCompleted = "completed"
	WatchExpired   = "expired"
)

// WatchEvent is one update of a PIX payment screen. Remaining is in seconds.
type WatchEvent struct {
	Status    string `json:"status"`
	Remaining int    `json:"remaining"`
}

type PixChecker interface {
	CheckPix(ctx context.Context, paymentID string) models.PixCheckResult
}

// PixWatcher drives the countdown and status polling for one PIX payment.
type PixWatcher struct {
	checker PixChecker
	tick    time.Duration
	poll    time.Duration
	now     func() time.Time
}

func NewPixWatcher(checker PixChecker, poll time.Duration) *PixWatcher {
	if poll <= 0 {
		poll = 5 * time.Second
	}
	return &PixWatcher{checker: checker, tick: time.Second, poll: poll, now: time.Now}
}

func (w *PixWatcher) remaining(expiresAt time.Time) int {
	if expiresAt.IsZero() {
		return 0
	}
	diff := int(expiresAt.Sub(w.now()) / time.Second)
	if diff < 0 {
		return 0
	}
	return diff
}

// Watch emits a pending event with the remaining time every tick and polls
// the provider every poll interval. It returns after emitting completed or
// expired, when emit fails, or when ctx is done. A zero expiresAt disables
// the countdown.
func (w *PixWatcher) Watch(ctx context.Context, paymentID string, expiresAt time.Time, emit func(WatchEvent) error) error {
	countdown := !expiresAt.IsZero()

	if countdown && w.remaining(expiresAt) == 0 {
		return emit(WatchEvent{Status: WatchExpired})
	}
	if err := emit(WatchEvent{Status: WatchPending, Remaining: w.remaining(expiresAt)}); err != nil {
		return err
	}
	if w.checker.CheckPix(ctx, paymentID).Completed {
		return emit(WatchEvent{Status: WatchCompleted, Remaining: w.remaining(expiresAt)})
	}

	var tickC <-chan time.Time
	if countdown {
		ticker := time.NewTicker(w.tick)
		defer ticker.Stop()
		tickC = ticker.C
	}
	poller := time.NewTicker(w.poll)
	defer poller.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-tickC:
			left := w.remaining(expiresAt)
			if left == 0 {
				return emit(WatchEvent{Status: WatchExpired})
			}
			if err := emit(WatchEvent{Status: WatchPending, Remaining: left}); err != nil {
				return err
			}

		case <-poller.C:
			if w.checker.CheckPix(ctx, paymentID).Completed {
				return emit(WatchEvent{Status: WatchCompleted, Remaining: w.remaining(expiresAt)})
			}
		}
	}
}
