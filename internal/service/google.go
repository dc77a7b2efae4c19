package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoogleClaims is the subset of the ID token payload the onboarding flow uses.
type GoogleClaims struct {
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleVerifier abstracts the Google OAuth endpoints so the onboarding flow
// can be exercised without network access.
type GoogleVerifier interface {
	// VerifyIDToken validates an ID token and returns its claims.
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleClaims, error)
	// ExchangeCode trades an authorization code for an ID token.
	ExchangeCode(ctx context.Context, code string) (string, error)
	// AuthURL builds the consent screen URL for the given state.
	AuthURL(state string) string
}

const (
	googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	googleTokenURL     = "https://oauth2.googleapis.com/token"
	googleAuthURL      = "https://accounts.google.com/o/oauth2/v2/auth"
)

// GoogleOAuth is the production GoogleVerifier backed by Google's endpoints.
type GoogleOAuth struct {
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client

	tokenInfoURL string
	tokenURL     string
}

// NewGoogleOAuth returns a GoogleVerifier for the given OAuth client.
func NewGoogleOAuth(clientID, clientSecret, redirectURI string) *GoogleOAuth {
	return &GoogleOAuth{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		tokenInfoURL: googleTokenInfoURL,
		tokenURL:     googleTokenURL,
	}
}

func (g *GoogleOAuth) VerifyIDToken(ctx context.Context, idToken string) (*GoogleClaims, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.tokenInfoURL+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google rejected id token (status %d)", resp.StatusCode)
	}

	var payload struct {
		Aud           string `json:"aud"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if g.clientID != "" && payload.Aud != g.clientID {
		return nil, fmt.Errorf("id token audience mismatch")
	}

	return &GoogleClaims{
		Email:         payload.Email,
		EmailVerified: payload.EmailVerified == "true",
		Name:          payload.Name,
		Picture:       payload.Picture,
	}, nil
}

func (g *GoogleOAuth) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {g.clientID},
		"client_secret": {g.clientSecret},
		"redirect_uri":  {g.redirectURI},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("google token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google token exchange rejected (status %d)", resp.StatusCode)
	}

	var payload struct {
		IDToken string `json:"id_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.IDToken == "" {
		return "", fmt.Errorf("token response is missing id_token")
	}
	return payload.IDToken, nil
}

func (g *GoogleOAuth) AuthURL(state string) string {
	q := url.Values{
		"client_id":     {g.clientID},
		"redirect_uri":  {g.redirectURI},
		"response_type": {"code"},
		"scope":         {"openid email profile"},
		"state":         {state},
		"access_type":   {"online"},
		"prompt":        {"select_account"},
	}
	return googleAuthURL + "?" + q.Encode()
}
