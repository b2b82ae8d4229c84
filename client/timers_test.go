package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerRunsLastCallOnly(t *testing.T) {
	clock := newManualClock()
	d := NewDebouncer(clock, 300*time.Millisecond)

	var got []string
	d.Call(func() { got = append(got, "l") })
	clock.Advance(200 * time.Millisecond)
	d.Call(func() { got = append(got, "la") })
	clock.Advance(200 * time.Millisecond)
	d.Call(func() { got = append(got, "lamp") })
	clock.Advance(299 * time.Millisecond)
	assert.Empty(t, got)

	clock.Advance(time.Millisecond)
	assert.Equal(t, []string{"lamp"}, got)

	d.Call(func() { got = append(got, "cancelled") })
	d.Cancel()
	clock.Advance(time.Second)
	assert.Equal(t, []string{"lamp"}, got)
}

func TestNotifierExpiresAndStacks(t *testing.T) {
	clock := newManualClock()
	var shown []Notification
	var dismissed []string
	n := NewNotifier(clock, NotificationTTL,
		func(note Notification) { shown = append(shown, note) },
		func(id string) { dismissed = append(dismissed, id) },
	)

	first := n.Success("Saved")
	clock.Advance(2 * time.Second)
	second := n.Error("Broken")

	assert.Equal(t, "Success", first.Title)
	assert.Equal(t, "Error", second.Title)
	assert.Len(t, shown, 2)
	assert.Equal(t, []Notification{first, second}, n.Active())

	clock.Advance(3 * time.Second)
	assert.Equal(t, []string{first.ID}, dismissed)
	assert.Equal(t, []Notification{second}, n.Active())

	assert.True(t, n.Dismiss(second.ID))
	assert.False(t, n.Dismiss(second.ID))
	clock.Advance(NotificationTTL)
	assert.Equal(t, []string{first.ID, second.ID}, dismissed)
	assert.Empty(t, n.Active())
}
