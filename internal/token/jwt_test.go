package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/airgo-accounts/internal/model"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 0)
	u := uuid.New()

	tok, expiresAt, err := j.Generate(u, 3)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(model.SessionDuration), expiresAt, time.Minute)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u, claims.Subject)
	assert.Equal(t, int64(3), claims.Epoch)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	issued := time.Now()
	j.now = func() time.Time { return issued }

	tok, _, err := j.Generate(uuid.New(), 0)
	require.NoError(t, err)

	j.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = j.Parse(tok)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, _, err := NewJWT("secret", 0).Generate(uuid.New(), 0)
	require.NoError(t, err)

	_, err = NewJWT("other", 0).Parse(tok)
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}

func TestJWT_Malformed(t *testing.T) {
	j := NewJWT("secret", 0)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"unsigned none algorithm", func() string {
			s, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   uuid.NewString(),
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}).SignedString(jwt.UnsafeAllowNoneSignatureType)
			return s
		}()},
		{"bad subject", func() string {
			s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "not-a-uuid",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}).SignedString([]byte("secret"))
			return s
		}()},
		{"missing expiry", func() string {
			s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
			}).SignedString([]byte("secret"))
			return s
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.Parse(tt.token)
			require.ErrorIs(t, err, model.ErrTokenMalformed)
		})
	}
}
