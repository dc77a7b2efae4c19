package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGoogleOAuth(serverURL string) *GoogleOAuth {
	g := NewGoogleOAuth("client-1", "secret-1", "http://localhost:8080/auth/google/callback")
	g.tokenInfoURL = serverURL + "/tokeninfo"
	g.tokenURL = serverURL + "/token"
	return g
}

func TestGoogleOAuth_VerifyIDToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.URL.Query().Get("id_token"))
		fmt.Fprint(w, `{"aud":"client-1","email":"jamie@example.com","email_verified":"true","name":"Jamie","picture":"https://example.com/p.jpg"}`)
	}))
	defer srv.Close()

	claims, err := testGoogleOAuth(srv.URL).VerifyIDToken(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "jamie@example.com", claims.Email)
	assert.True(t, claims.EmailVerified)
	assert.Equal(t, "Jamie", claims.Name)
}

func TestGoogleOAuth_VerifyIDToken_UnverifiedEmailString(t *testing.T) {
	t.Parallel()

	// Google reports email_verified as a string, not a bool.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"aud":"client-1","email":"jamie@example.com","email_verified":"false"}`)
	}))
	defer srv.Close()

	claims, err := testGoogleOAuth(srv.URL).VerifyIDToken(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.False(t, claims.EmailVerified)
}

func TestGoogleOAuth_VerifyIDToken_AudienceMismatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"aud":"someone-else","email":"jamie@example.com","email_verified":"true"}`)
	}))
	defer srv.Close()

	_, err := testGoogleOAuth(srv.URL).VerifyIDToken(context.Background(), "tok-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audience mismatch")
}

func TestGoogleOAuth_VerifyIDToken_Rejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := testGoogleOAuth(srv.URL).VerifyIDToken(context.Background(), "garbage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestGoogleOAuth_ExchangeCode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "code-1", r.PostForm.Get("code"))
		assert.Equal(t, "client-1", r.PostForm.Get("client_id"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		fmt.Fprint(w, `{"access_token":"at","id_token":"idt-1"}`)
	}))
	defer srv.Close()

	idToken, err := testGoogleOAuth(srv.URL).ExchangeCode(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "idt-1", idToken)
}

func TestGoogleOAuth_ExchangeCode_MissingIDToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"access_token":"at"}`)
	}))
	defer srv.Close()

	_, err := testGoogleOAuth(srv.URL).ExchangeCode(context.Background(), "code-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id_token")
}

func TestGoogleOAuth_AuthURL(t *testing.T) {
	t.Parallel()

	raw := NewGoogleOAuth("client-1", "secret-1", "http://localhost:8080/auth/google/callback").AuthURL("state-1")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", parsed.Host)
	q := parsed.Query()
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "select_account", q.Get("prompt"))
}
