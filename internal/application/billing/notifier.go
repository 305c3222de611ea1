package billing

import "context"

// Notification is an email the service asks a collaborator to send after an
// invoice-related event.
type Notification struct {
	FromAlias bool
	To        string
	Subject   string
	Body      string
}

// Notifier is the boundary to the email-sending collaborator. The transport
// behind it lives outside this service.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// NopNotifier discards notifications. Used when no email collaborator is
// configured.
type NopNotifier struct{}

// Send implements Notifier.
func (NopNotifier) Send(context.Context, Notification) error { return nil }
