package domain

import "time"

// DefaultNotificationTTL is how long a notification stays visible.
const DefaultNotificationTTL = 3 * time.Second

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is a transient status message shown after an operation.
type Notification struct {
	Message string           `json:"message"`
	Kind    NotificationKind `json:"kind"`
	ShownAt time.Time        `json:"shown_at"`
}

// Notifier keeps at most one notification; showing a new one replaces the old.
type Notifier struct {
	now          func() time.Time
	dismissAfter time.Duration
	current      *Notification
	shown        int
}

// NewNotifier creates a Notifier. A nil clock uses time.Now and a non-positive
// ttl uses DefaultNotificationTTL.
func NewNotifier(now func() time.Time, ttl time.Duration) *Notifier {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{now: now, dismissAfter: ttl}
}

func (n *Notifier) Show(message string, kind NotificationKind) {
	n.current = &Notification{Message: message, Kind: kind, ShownAt: n.now()}
	n.shown++
}

// Current returns the visible notification, or nil once it has been auto-dismissed.
func (n *Notifier) Current() *Notification {
	if n.current == nil {
		return nil
	}
	if n.now().Sub(n.current.ShownAt) >= n.dismissAfter {
		n.current = nil
		return nil
	}
	c := *n.current
	return &c
}

// Dismiss hides the current notification early.
func (n *Notifier) Dismiss() { n.current = nil }

// Count reports how many notifications have been shown in total.
func (n *Notifier) Count() int { return n.shown }
