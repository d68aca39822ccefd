// Package mail delivers verification codes by email.
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/dtroode/airgo-accounts/internal/model"
)

var _ model.Mailer = (*SMTP)(nil)

// Options configure the SMTP relay.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	// CodeTTL is quoted in the message body.
	CodeTTL time.Duration
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP sends verification codes through an authenticated SMTP relay.
type SMTP struct {
	opts Options
	send sendFunc
}

func NewSMTP(opts Options) (*SMTP, error) {
	if opts.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if opts.Port == 0 {
		opts.Port = 587
	}
	if opts.From == "" {
		opts.From = opts.Username
	}
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = model.OTPDuration
	}

	s := &SMTP{opts: opts, send: smtp.SendMail}
	if opts.Port == 465 {
		s.send = s.sendImplicitTLS
	}
	return s, nil
}

// SendOTP mails code to the recipient. It gives up early when ctx is already done.
func (s *SMTP) SendOTP(ctx context.Context, to, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.opts.Username != "" {
		auth = smtp.PlainAuth("", s.opts.Username, s.opts.Password, s.opts.Host)
	}

	addr := net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
	msg := s.message(to, code)

	if err := s.send(addr, auth, s.opts.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func (s *SMTP) message(to, code string) []byte {
	from := s.opts.From
	if s.opts.FromName != "" {
		from = fmt.Sprintf("%q <%s>", s.opts.FromName, s.opts.From)
	}

	validity := formatDuration(s.opts.CodeTTL)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Your AirGo verification code\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Your verification code is: %s\r\n", code)
	fmt.Fprintf(&b, "It is valid for %s.\r\n", validity)
	return []byte(b.String())
}

// sendImplicitTLS is smtp.SendMail for relays that expect TLS from the first byte.
func (s *SMTP) sendImplicitTLS(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.opts.Host, MinVersion: tls.VersionTLS12})
	if err != nil {
		return err
	}

	c, err := smtp.NewClient(conn, s.opts.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if a != nil {
		if err := c.Auth(a); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func formatDuration(d time.Duration) string {
	if d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return fmt.Sprintf("%d seconds", int(d/time.Second))
}
