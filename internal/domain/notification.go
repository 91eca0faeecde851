package domain

import "time"

// NotificationSeverity classifies a notification for display purposes.
type NotificationSeverity string

const (
	NotificationInfo    NotificationSeverity = "Info"
	NotificationSuccess NotificationSeverity = "Success"
	NotificationWarning NotificationSeverity = "Warning"
	NotificationError   NotificationSeverity = "Error"
)

// Notification is a persisted in-app message for a registered user.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Severity  NotificationSeverity
	Link      string
	Read      bool
	CreatedAt time.Time
}
