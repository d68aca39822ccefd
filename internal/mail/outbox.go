package mail

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/airgo-accounts/internal/model"
)

var _ model.Mailer = (*Outbox)(nil)

type outboxEntry struct {
	code      string
	expiresAt time.Time
}

// Outbox keeps the last code sent to each address instead of delivering it.
// It is meant for local development and must not be enabled in production.
type Outbox struct {
	mu   sync.RWMutex
	m    map[string]outboxEntry
	ttl  time.Duration
	nowF func() time.Time
}

func NewOutbox(ttl time.Duration) *Outbox {
	if ttl <= 0 {
		ttl = model.OTPDuration
	}
	return &Outbox{
		m:    make(map[string]outboxEntry),
		ttl:  ttl,
		nowF: time.Now,
	}
}

func (o *Outbox) SendOTP(_ context.Context, to, code string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.m[to] = outboxEntry{code: code, expiresAt: o.nowF().Add(o.ttl)}
	return nil
}

// Last returns the most recent code sent to email while it is still valid.
func (o *Outbox) Last(email string) (string, bool) {
	o.mu.RLock()
	e, ok := o.m[email]
	o.mu.RUnlock()
	if !ok {
		return "", false
	}
	if o.nowF().After(e.expiresAt) {
		o.mu.Lock()
		delete(o.m, email)
		o.mu.Unlock()
		return "", false
	}
	return e.code, true
}
