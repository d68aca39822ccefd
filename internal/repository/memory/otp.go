// Package memory provides in-process implementations of the model stores.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/airgo-accounts/internal/model"
)

var _ model.OTPStore = (*OTPStore)(nil)

// OTPStore keeps verification records in a map. Records do not survive a restart.
type OTPStore struct {
	mu      sync.RWMutex
	records map[string]model.OTPRecord
	nowF    func() time.Time
}

// NewOTPStore returns an empty in-memory OTP store.
func NewOTPStore() *OTPStore {
	return &OTPStore{
		records: make(map[string]model.OTPRecord),
		nowF:    time.Now,
	}
}

// Get returns the record for email, expired or not.
func (s *OTPStore) Get(_ context.Context, email string) (model.OTPRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[email]
	return rec, ok
}

// Put stores record for email, replacing any previous one.
func (s *OTPStore) Put(_ context.Context, email string, record model.OTPRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email] = record
}

// Delete removes the record for email.
func (s *OTPStore) Delete(_ context.Context, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
}

// Len returns the number of stored records.
func (s *OTPStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Sweep removes every record that is expired at now and returns how many were removed.
func (s *OTPStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for email, rec := range s.records {
		if rec.Expired(now) {
			delete(s.records, email)
			removed++
		}
	}
	return removed
}

// Run sweeps expired records every interval until ctx is cancelled.
func (s *OTPStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.nowF())
		}
	}
}
