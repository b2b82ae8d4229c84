package client

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// NotificationTTL is how long a notification stays before dismissing itself.
const NotificationTTL = 5 * time.Second

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

type Notification struct {
	ID        string
	Kind      NotificationKind
	Title     string
	Message   string
	CreatedAt time.Time
}

// Notifier keeps a stack of notifications, newest last, and expires each
// one after its TTL.
type Notifier struct {
	clock     Clock
	ttl       time.Duration
	onShow    func(Notification)
	onDismiss func(id string)

	mu     sync.Mutex
	active []Notification
	timers map[string]Timer
}

func NewNotifier(clock Clock, ttl time.Duration, onShow func(Notification), onDismiss func(id string)) *Notifier {
	return &Notifier{
		clock:     clock,
		ttl:       ttl,
		onShow:    onShow,
		onDismiss: onDismiss,
		timers:    map[string]Timer{},
	}
}

func (n *Notifier) Success(message string) Notification {
	return n.Push(NotifySuccess, message)
}

func (n *Notifier) Error(message string) Notification {
	return n.Push(NotifyError, message)
}

func (n *Notifier) Push(kind NotificationKind, message string) Notification {
	title := "Success"
	if kind == NotifyError {
		title = "Error"
	}
	note := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: n.clock.Now(),
	}

	n.mu.Lock()
	n.active = append(n.active, note)
	n.timers[note.ID] = n.clock.AfterFunc(n.ttl, func() {
		n.Dismiss(note.ID)
	})
	n.mu.Unlock()

	if n.onShow != nil {
		n.onShow(note)
	}
	return note
}

// Dismiss removes a notification early. It reports whether it was active.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	found := false
	for i, note := range n.active {
		if note.ID == id {
			n.active = append(n.active[:i], n.active[i+1:]...)
			found = true
			break
		}
	}
	if timer, ok := n.timers[id]; ok {
		timer.Stop()
		delete(n.timers, id)
	}
	n.mu.Unlock()

	if found && n.onDismiss != nil {
		n.onDismiss(id)
	}
	return found
}

func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.active...)
}
