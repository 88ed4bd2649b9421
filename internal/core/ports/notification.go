package ports

import "context"

// Alias is the mailbox an outbound email is sent from.
type Alias string

const (
	AliasTeam    Alias = "team"
	AliasSupport Alias = "support"
)

// Notification is a single outbound email.
type Notification struct {
	From    Alias
	To      string
	Subject string
	Body    string
	HTML    bool
}

// NotificationSink accepts notifications for best-effort delivery. Notify
// never blocks on delivery and never reports delivery failures.
type NotificationSink interface {
	Notify(n Notification)
}

// Mailer performs the actual email delivery.
type Mailer interface {
	Send(ctx context.Context, n Notification) error
}
