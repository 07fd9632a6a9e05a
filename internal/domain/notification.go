package domain

import "time"

// NotificationKind classifies transient user-facing messages.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyInfo    NotificationKind = "info"
	NotifyError   NotificationKind = "error"
)

// Notification is a short-lived user-facing message. Notifications are owned
// by the notify registry and evicted automatically after a fixed delay.
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"type"`
	CreatedAt time.Time        `json:"-"`
}
