package session

// NotificationKind classifies transient feedback.
type NotificationKind int

const (
	Info NotificationKind = iota
	Success
	Error
)

// Notification is a transient message for the user.
type Notification struct {
	Kind    NotificationKind
	Message string
}
