// Package mailer delivers HTML email over SMTP.
package mailer

import (
	"context"

	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"
)

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dialer is the part of *gomail.Dialer the sender uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends every message from a fixed sender address.
type SMTPSender struct {
	dialer  Dialer
	from    string
	breaker *gobreaker.CircuitBreaker
}

// NewSMTPSender dials opts.Host for each message. breaker may be nil.
func NewSMTPSender(opts SMTPOptions, breaker *gobreaker.CircuitBreaker) *SMTPSender {
	return NewSender(gomail.NewDialer(opts.Host, opts.Port, opts.Username, opts.Password), opts.From, breaker)
}

// NewSender builds a sender over an arbitrary dialer.
func NewSender(dialer Dialer, from string, breaker *gobreaker.CircuitBreaker) *SMTPSender {
	return &SMTPSender{dialer: dialer, from: from, breaker: breaker}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if s.breaker == nil {
		return s.dialer.DialAndSend(m)
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.dialer.DialAndSend(m)
	})
	return err
}
