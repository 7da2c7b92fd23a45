package tui

import (
	"time"

	"github.com/hay-kot/lectern/internal/core/notify"
)

const (
	toastTTL          = 4 * time.Second
	maxToasts         = 3
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 44
)

// toast is one visible notification. Identical notifications pushed back
// to back collapse into a single toast with repeats counting the extras.
type toast struct {
	notification notify.Notification
	remaining    time.Duration
	repeats      int
}

func ttlFor(level notify.Level) time.Duration {
	if level == notify.LevelError {
		return 2 * toastTTL
	}
	return toastTTL
}

// ToastController owns the stack of visible toasts and counts down their
// lifetimes. The Model drives it with toastTickMsg while any are visible.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push shows n. A repeat of the newest toast refreshes it instead of
// stacking a copy; otherwise the oldest toast beyond maxToasts is dropped.
func (c *ToastController) Push(n notify.Notification) {
	if last := len(c.toasts) - 1; last >= 0 {
		top := &c.toasts[last]
		if top.notification.Level == n.Level && top.notification.Message == n.Message {
			top.remaining = ttlFor(n.Level)
			top.repeats++
			return
		}
	}

	c.toasts = append(c.toasts, toast{notification: n, remaining: ttlFor(n.Level)})
	if over := len(c.toasts) - maxToasts; over > 0 {
		c.toasts = c.toasts[over:]
	}
}

// Tick advances every toast by d and drops the expired ones.
func (c *ToastController) Tick(d time.Duration) {
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if t.remaining -= d; t.remaining > 0 {
			kept = append(kept, t)
		}
	}
	c.toasts = kept
}

// Dismiss drops the newest toast.
func (c *ToastController) Dismiss() {
	if n := len(c.toasts); n > 0 {
		c.toasts = c.toasts[:n-1]
	}
}

func (c *ToastController) HasToasts() bool { return len(c.toasts) > 0 }

// Toasts returns the visible toasts, oldest first.
func (c *ToastController) Toasts() []toast { return c.toasts }

func (c *ToastController) Ticking() bool { return c.ticking }

func (c *ToastController) SetTicking(v bool) { c.ticking = v }
