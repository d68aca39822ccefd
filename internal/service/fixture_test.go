package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/airgo-accounts/internal/mocks"
	"github.com/dtroode/airgo-accounts/internal/password"
	"github.com/dtroode/airgo-accounts/internal/repository/memory"
	"github.com/dtroode/airgo-accounts/internal/testutil"
	"github.com/dtroode/airgo-accounts/internal/token"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// inbox records the last code mailed to each address.
type inbox struct {
	mu    sync.Mutex
	codes map[string]string
}

func (i *inbox) record(args mock.Arguments) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.codes[args.String(1)] = args.String(2)
}

func (i *inbox) last(email string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.codes[email]
}

// fixture wires the services over in-memory stores the way the server does.
type fixture struct {
	clock        *fakeClock
	accounts     *memory.AccountRepository
	otps         *memory.OTPStore
	ledger       *OTPLedger
	uniqueness   *Uniqueness
	registration *Registration
	session      *Session
	addresses    *Addresses
	profiles     *Accounts
	mailer       *mocks.Mailer
	inbox        *inbox
	tokens       *token.JWT
}

func newFixture(t *testing.T, opts ...SessionOption) *fixture {
	t.Helper()

	log := testutil.MakeNoopLogger()
	clock := newFakeClock()
	accounts := memory.NewAccountRepository()
	otps := memory.NewOTPStore()
	hasher := password.NewHasher(4)

	uniqueness := NewUniqueness(accounts, log)
	ledger := NewOTPLedger(otps, uniqueness, 0, log)
	ledger.now = clock.Now

	box := &inbox{codes: make(map[string]string)}
	mailer := mocks.NewMailer(t)
	mailer.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).
		Run(box.record).Return(nil).Maybe()

	tokens := token.NewJWT("test-secret", 0)

	return &fixture{
		clock:        clock,
		accounts:     accounts,
		otps:         otps,
		ledger:       ledger,
		uniqueness:   uniqueness,
		registration: NewRegistration(accounts, ledger, uniqueness, hasher, mailer, nil, log),
		session:      NewSession(accounts, hasher, tokens, log, opts...),
		addresses:    NewAddresses(accounts, log),
		profiles:     NewAccounts(accounts, nil, hasher, log),
		mailer:       mailer,
		inbox:        box,
		tokens:       tokens,
	}
}

func validParams(email string) RegisterParams {
	return RegisterParams{
		FullName:         "Ayesha Khan",
		GuardianName:     "Imran Khan",
		Email:            email,
		Password:         "secret1",
		NationalID:       "35202-1234567-1",
		PhoneCountryCode: "+92",
		Phone:            "3001234567",
		Country:          "Pakistan",
		City:             "Lahore",
		DateOfBirth:      "1999-04-01",
		EducationLevel:   "Bachelors",
	}
}

// verify runs the request and verify steps for email.
func (f *fixture) verify(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.registration.RequestCode(ctx, email))
	require.NoError(t, f.registration.VerifyCode(ctx, email, f.inbox.last(email)))
}
