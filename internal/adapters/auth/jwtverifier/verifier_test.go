package jwtverifier

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_RoundTrip(t *testing.T) {
	v, err := New("s3cret", "daycare-log")
	require.NoError(t, err)

	tok, err := v.Sign("teacher-1", "ana@daycare.test", time.Hour, time.Now())
	require.NoError(t, err)

	c, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "teacher-1", c.UserID)
	assert.Equal(t, "ana@daycare.test", c.Email)
}

func TestVerify_Rejections(t *testing.T) {
	ctx := context.Background()
	v, err := New("s3cret", "daycare-log")
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := v.Verify(ctx, "  ")
		assert.ErrorIs(t, err, ErrTokenEmpty)
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := v.Sign("teacher-1", "", time.Minute, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		_, err = v.Verify(ctx, tok)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := New("other", "daycare-log")
		require.NoError(t, err)
		tok, err := other.Sign("teacher-1", "", time.Hour, time.Now())
		require.NoError(t, err)
		_, err = v.Verify(ctx, tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := New("s3cret", "someone-else")
		require.NoError(t, err)
		tok, err := other.Sign("teacher-1", "", time.Hour, time.Now())
		require.NoError(t, err)
		_, err = v.Verify(ctx, tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		tok, err := v.Sign("", "", time.Hour, time.Now())
		require.NoError(t, err)
		_, err = v.Verify(ctx, tok)
		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("alg none", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "teacher-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = v.Verify(ctx, tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New("", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
