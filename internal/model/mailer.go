package model

import "context"

// Mailer delivers verification codes to an email address.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}
