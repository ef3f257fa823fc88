package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/kundali/pkg/errors"
)

func TestService_IssueAndValidate(t *testing.T) {
	svc := NewService(Config{Secret: "test-secret", Issuer: "kundali", TokenTTL: time.Hour}, newTestLogger())

	resp, err := svc.IssueToken("  astro@example.com ", 0)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "astro@example.com", resp.Subject)
	require.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, "astro@example.com", claims.Subject)
	require.NotEmpty(t, claims.TokenID)
	require.WithinDuration(t, resp.ExpiresAt, claims.ExpiresAt, time.Second)
}

func TestService_CustomTTL(t *testing.T) {
	svc := NewService(Config{Secret: "test-secret"}, newTestLogger())

	resp, err := svc.IssueToken("cli", 5*time.Minute)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(5*time.Minute), resp.ExpiresAt, time.Minute)
}

func TestService_RejectsBadTokens(t *testing.T) {
	svc := NewService(Config{Secret: "test-secret", Issuer: "kundali", TokenTTL: time.Hour}, newTestLogger())

	_, err := svc.ValidateToken(context.Background(), " ")
	require.True(t, apperrors.IsCode(err, "invalid_token"))

	_, err = svc.ValidateToken(context.Background(), "not.a.jwt")
	require.True(t, apperrors.IsCode(err, "invalid_token"))

	other := NewService(Config{Secret: "other-secret", Issuer: "kundali"}, newTestLogger())
	foreign, err := other.IssueToken("user", time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(context.Background(), foreign.Token)
	require.True(t, apperrors.IsCode(err, "invalid_token"))

	wrongIssuer := NewService(Config{Secret: "test-secret", Issuer: "someone-else"}, newTestLogger())
	token, err := wrongIssuer.IssueToken("user", time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(context.Background(), token.Token)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestService_RejectsExpiredToken(t *testing.T) {
	svc := NewService(Config{Secret: "test-secret", TokenTTL: time.Hour}, newTestLogger()).(*service)
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	resp, err := svc.IssueToken("user", time.Hour)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(context.Background(), resp.Token)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestService_RequiresExpiry(t *testing.T) {
	svc := NewService(Config{Secret: "test-secret"}, newTestLogger())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		TokenType:        tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user"},
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), signed)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestService_RejectsEmptySubject(t *testing.T) {
	svc := NewService(Config{Secret: "test-secret"}, newTestLogger())
	_, err := svc.IssueToken("", time.Hour)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}
