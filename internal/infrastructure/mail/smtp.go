package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/oladokun-o/engine/internal/core/ports"
)

type smtpSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer authenticates as the sending alias, so every alias gets its
// own dialer.
type SMTPMailer struct {
	domain  string
	senders map[ports.Alias]smtpSender
}

var _ ports.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(host string, port int, password, domain string) *SMTPMailer {
	m := &SMTPMailer{domain: domain, senders: make(map[ports.Alias]smtpSender)}
	for _, alias := range []ports.Alias{ports.AliasTeam, ports.AliasSupport} {
		m.senders[alias] = gomail.NewDialer(host, port, Address(alias, domain), password)
	}
	return m
}

func (s *SMTPMailer) Send(ctx context.Context, n ports.Notification) error {
	sender, ok := s.senders[n.From]
	if !ok {
		return fmt.Errorf("smtp: unknown alias %q", n.From)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", Address(n.From, s.domain))
	msg.SetHeader("To", n.To)
	msg.SetHeader("Subject", n.Subject)
	if n.HTML {
		msg.SetBody("text/html", n.Body)
	} else {
		msg.SetBody("text/plain", n.Body)
	}

	// gomail has no context support; give up waiting once ctx is done.
	errCh := make(chan error, 1)
	go func() { errCh <- sender.DialAndSend(msg) }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}
