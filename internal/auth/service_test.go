package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bima/internal/audit"
	dErrors "bima/pkg/domain-errors"
	"bima/pkg/requestcontext"
)

const testSigningKey = "test-signing-key-for-unit-tests"

func newTestService(t *testing.T, opts ...Option) (*Service, *audit.MemoryStore) {
	t.Helper()

	creds := NewCredentials()
	require.NoError(t, creds.Add(User{ID: "agent-1", Username: "wanjiku", Name: "Wanjiku Kamau"}, "correct-horse"))

	trail := audit.NewMemoryStore()
	opts = append(opts, WithAuditPublisher(audit.NewPublisher(trail)))

	tokens := NewJWTService(testSigningKey, "bima", time.Hour)
	return NewService(creds, tokens, time.Hour, opts...), trail
}

func TestLogin(t *testing.T) {
	service, trail := newTestService(t)
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	session, err := service.Login(ctx, "wanjiku", "correct-horse")
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "agent-1", session.User.ID)
	assert.Equal(t, now.Add(time.Hour), session.ExpiresAt)

	t.Run("token round trips through validation", func(t *testing.T) {
		tokens := NewJWTService(testSigningKey, "bima", time.Hour)
		claims, err := tokens.ValidateToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "agent-1", claims.UserID)
		assert.Equal(t, "Wanjiku Kamau", claims.Name)
	})

	t.Run("login is audited", func(t *testing.T) {
		events, err := trail.ListByUser(ctx, "agent-1")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.ActionUserLoggedIn, events[0].Action)
	})
}

func TestLoginRejections(t *testing.T) {
	service, trail := newTestService(t)
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, "wanjiku", "wrong")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, err := service.Login(ctx, "nobody", "wrong")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("failed logins are not audited as logins", func(t *testing.T) {
		events, err := trail.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestLoginDelayRespectsCancellation(t *testing.T) {
	service, _ := newTestService(t, WithLoginDelay(5*time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Login(ctx, "wanjiku", "correct-horse")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestValidateTokenFailures(t *testing.T) {
	tokens := NewJWTService(testSigningKey, "bima", time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := tokens.ValidateToken("not-a-jwt")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		other := NewJWTService("some-other-key", "bima", time.Hour)
		token, err := other.GenerateToken("agent-1", "Wanjiku", time.Now())
		require.NoError(t, err)

		_, err = tokens.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived := NewJWTService(testSigningKey, "bima", time.Minute)
		token, err := shortLived.GenerateToken("agent-1", "Wanjiku", time.Now().Add(-time.Hour))
		require.NoError(t, err)

		_, err = tokens.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestRequireAuth(t *testing.T) {
	tokens := NewJWTService(testSigningKey, "bima", time.Hour)
	var gotUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = requestcontext.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := RequireAuth(tokens)(inner)

	t.Run("missing header is 401", func(t *testing.T) {
		rec := doRequest(t, protected, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is 401", func(t *testing.T) {
		rec := doRequest(t, protected, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes and sets user", func(t *testing.T) {
		token, err := tokens.GenerateToken("agent-1", "Wanjiku", time.Now())
		require.NoError(t, err)

		rec := doRequest(t, protected, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "agent-1", gotUserID)
	})
}
