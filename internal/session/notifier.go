package session

import "github.com/rs/zerolog"

// Notification is a transient user-visible message, like a toast.
type Notification struct {
	Title   string
	Message string
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to a logger at warn level.
type LogNotifier struct {
	Log zerolog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	l.Log.Warn().Str("title", n.Title).Msg(n.Message)
}
