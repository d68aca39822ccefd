package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func TestNewSMTP_Defaults(t *testing.T) {
	_, err := NewSMTP(Options{})
	require.Error(t, err)

	s, err := NewSMTP(Options{Host: "smtp.example.com", Username: "bot@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 587, s.opts.Port)
	assert.Equal(t, "bot@example.com", s.opts.From)
}

func TestSMTP_SendOTP(t *testing.T) {
	s, err := NewSMTP(Options{
		Host:     "smtp.example.com",
		Port:     2525,
		Username: "bot@example.com",
		Password: "pw",
		FromName: "AirGo",
		CodeTTL:  time.Minute,
	})
	require.NoError(t, err)

	var got sentMail
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		got = sentMail{addr: addr, auth: a, from: from, to: to, msg: string(msg)}
		return nil
	}

	require.NoError(t, s.SendOTP(context.Background(), "user@example.com", "042042"))

	assert.Equal(t, "smtp.example.com:2525", got.addr)
	assert.NotNil(t, got.auth)
	assert.Equal(t, "bot@example.com", got.from)
	assert.Equal(t, []string{"user@example.com"}, got.to)
	assert.Contains(t, got.msg, "To: user@example.com\r\n")
	assert.Contains(t, got.msg, `From: "AirGo" <bot@example.com>`)
	assert.Contains(t, got.msg, "Your verification code is: 042042")
	assert.Contains(t, got.msg, "valid for 1 minute.")
	assert.True(t, strings.Contains(got.msg, "\r\n\r\n"), "headers end with a blank line")
}

func TestSMTP_SendOTP_Errors(t *testing.T) {
	s, err := NewSMTP(Options{Host: "smtp.example.com"})
	require.NoError(t, err)
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err = s.SendOTP(context.Background(), "user@example.com", "123456")
	assert.ErrorContains(t, err, "connection refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SendOTP(ctx, "user@example.com", "123456"), context.Canceled)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1 minute", formatDuration(time.Minute))
	assert.Equal(t, "5 minutes", formatDuration(5*time.Minute))
	assert.Equal(t, "90 seconds", formatDuration(90*time.Second))
}
