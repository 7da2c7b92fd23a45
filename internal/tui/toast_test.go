package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/lectern/internal/core/notify"
	"github.com/hay-kot/lectern/internal/core/styles"
	"github.com/hay-kot/lectern/pkg/tuitest"
)

func TestToastController_Push(t *testing.T) {
	c := NewToastController()

	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "hello"})
	c.Push(notify.Notification{Level: notify.LevelError, Message: "boom"})

	require.Len(t, c.Toasts(), 2)
	assert.Equal(t, toastTTL, c.Toasts()[0].remaining)
	assert.Equal(t, 2*toastTTL, c.Toasts()[1].remaining, "errors linger")
}

func TestToastController_Push_coalesces_repeats(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Notification{Level: notify.LevelWarning, Message: "Read-only"})
	c.Tick(time.Second)
	c.Push(notify.Notification{Level: notify.LevelWarning, Message: "Read-only"})
	c.Push(notify.Notification{Level: notify.LevelWarning, Message: "Read-only"})

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, 2, c.Toasts()[0].repeats)
	assert.Equal(t, toastTTL, c.Toasts()[0].remaining, "a repeat restarts the countdown")
	assert.Contains(t, NewToastView(c).View(), "Read-only (x3)")

	c.Push(notify.Notification{Level: notify.LevelError, Message: "Read-only"})
	assert.Len(t, c.Toasts(), 2, "a different level is a new toast")
}

func TestToastController_Push_evicts_oldest_at_max(t *testing.T) {
	c := NewToastController()
	for i := range maxToasts + 2 {
		c.Push(notify.Notification{Level: notify.LevelInfo, Message: fmt.Sprint(i)})
	}

	assert.Len(t, c.Toasts(), maxToasts)
	assert.Equal(t, "2", c.Toasts()[0].notification.Message)
}

func TestToastController_Tick_removes_expired(t *testing.T) {
	c := NewToastController()
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "expires"})
	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "survives"})

	c.toasts[0].remaining = 50 * time.Millisecond
	c.Tick(100 * time.Millisecond)

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "survives", c.Toasts()[0].notification.Message)
	assert.Equal(t, toastTTL-100*time.Millisecond, c.Toasts()[0].remaining)
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController()
	c.Dismiss()
	assert.False(t, c.HasToasts())

	c.Push(notify.Notification{Message: "first"})
	c.Push(notify.Notification{Message: "second"})
	c.Dismiss()

	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, "first", c.Toasts()[0].notification.Message)
}

func TestToastView_renders_each_level(t *testing.T) {
	tests := []struct {
		level notify.Level
		icon  string
	}{
		{notify.LevelError, styles.IconNotifyError},
		{notify.LevelWarning, styles.IconNotifyWarning},
		{notify.LevelInfo, styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			c := NewToastController()
			c.Push(notify.Notification{Level: tt.level, Message: "test msg"})

			out := NewToastView(c).View()
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "test msg")
		})
	}
}

func TestToastView_Overlay(t *testing.T) {
	c := NewToastController()
	v := NewToastView(c)

	bg := strings.Repeat(strings.Repeat(".", 80)+"\n", 23) + strings.Repeat(".", 80)
	assert.Equal(t, bg, v.Overlay(bg, 80, 24), "no toasts leaves the background alone")

	c.Push(notify.Notification{Level: notify.LevelInfo, Message: "saved"})
	lines := strings.Split(tuitest.StripANSI(v.Overlay(bg, 80, 24)), "\n")

	require.Len(t, lines, 24)
	assert.Contains(t, lines[22], "saved", "toast sits in the bottom rows")
	assert.True(t, strings.HasPrefix(lines[0], "...."))
}
