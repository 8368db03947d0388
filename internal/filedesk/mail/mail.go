// Package mail delivers password reset links.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends plain-text mail through a single SMTP relay.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *SMTPNotifier) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}

// Send dials per message. gomail has no context support, so ctx is only
// checked before dialing.
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.dialer.DialAndSend(n.message(to, subject, body)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LogNotifier writes messages to the log instead of sending them. It is
// used when no SMTP relay is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Send(ctx context.Context, to, subject, body string) error {
	n.Logger.InfoContext(ctx, "mail not sent, no SMTP relay configured",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body))
	return nil
}
