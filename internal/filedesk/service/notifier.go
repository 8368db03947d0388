package service

import "context"

// Notifier delivers a plain-text message to a single recipient.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
