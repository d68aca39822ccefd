package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mailer is a mock of model.Mailer.
type Mailer struct {
	mock.Mock
}

// NewMailer creates a Mailer mock and registers expectation checks on cleanup.
func NewMailer(t interface {
	mock.TestingT
	Cleanup(func())
}) *Mailer {
	m := &Mailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Mailer) SendOTP(ctx context.Context, to, code string) error {
	args := m.Called(ctx, to, code)
	return args.Error(0)
}
