package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bima/pkg/testutil"
)

func doRequest(t *testing.T, handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func newAuthRouter(t *testing.T) http.Handler {
	t.Helper()

	creds := NewCredentials()
	require.NoError(t, creds.Add(User{ID: "agent-1", Username: "wanjiku", Name: "Wanjiku Kamau"}, "correct-horse"))

	tokens := NewJWTService(testSigningKey, "bima", time.Hour)
	service := NewService(creds, tokens, time.Hour)
	handler := NewHandler(service, slog.Default())

	r := chi.NewRouter()
	handler.RegisterPublic(r)
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(tokens))
		handler.RegisterProtected(r)
	})
	return r
}

func TestLoginEndpoint(t *testing.T) {
	router := newAuthRouter(t)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
		map[string]string{"username": "wanjiku", "password": "correct-horse"}))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := testutil.UnmarshalResponse[LoginResponse](t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "agent-1", resp.UserID)
	assert.Equal(t, "Wanjiku Kamau", resp.Name)

	t.Run("token opens the protected group", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPost, "/auth/logout")
		req.Header.Set("Authorization", "Bearer "+resp.Token)
		rec := testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLoginEndpointRejections(t *testing.T) {
	router := newAuthRouter(t)

	t.Run("bad credentials", func(t *testing.T) {
		rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
			map[string]string{"username": "wanjiku", "password": "nope"}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
			map[string]string{"username": "wanjiku"}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("logout without a token", func(t *testing.T) {
		rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/auth/logout"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
