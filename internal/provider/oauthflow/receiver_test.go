package oauthflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

func newTestReceiver(open Opener) *Receiver {
	gin.SetMode(gin.TestMode)
	return NewReceiver(ReceiverConfig{Host: "127.0.0.1", Path: "/oauth/callback"}, open, zap.NewNop())
}

func TestHandler_Callbacks(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		want       callback
		wantErr    error
	}{
		{
			name:       "code",
			query:      "state=s1&code=abc",
			wantStatus: http.StatusOK,
			want:       callback{code: "abc"},
		},
		{
			name:       "google denial",
			query:      "state=s1&error=access_denied",
			wantStatus: http.StatusOK,
			want:       callback{cancelled: true},
		},
		{
			name:       "facebook denial",
			query:      "state=s1&error=access_denied&error_reason=user_denied",
			wantStatus: http.StatusOK,
			want:       callback{cancelled: true, reason: "user_denied"},
		},
		{
			name:       "state mismatch",
			query:      "state=other&code=abc",
			wantStatus: http.StatusBadRequest,
			wantErr:    ErrStateMismatch,
		},
		{
			name:       "missing code",
			query:      "state=s1",
			wantStatus: http.StatusBadRequest,
			wantErr:    ErrMissingCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make(chan callback, 1)
			h := newTestReceiver(nil).handler("s1", results)

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/oauth/callback?"+tt.query, nil))
			assert.Equal(t, tt.wantStatus, w.Code)

			got := <-results
			if tt.wantErr != nil {
				assert.ErrorIs(t, got.err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandler_ProviderError(t *testing.T) {
	results := make(chan callback, 1)
	h := newTestReceiver(nil).handler("s1", results)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/oauth/callback?state=s1&error=server_error&error_description=boom", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got := <-results
	var authErr *AuthorizationError
	require.ErrorAs(t, got.err, &authErr)
	assert.Equal(t, "server_error", authErr.Code)
	assert.Equal(t, "boom", authErr.Description)
}

func TestHandler_OnlyFirstCallbackDelivered(t *testing.T) {
	results := make(chan callback, 1)
	h := newTestReceiver(nil).handler("s1", results)

	for _, code := range []string{"first", "second"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/oauth/callback?state=s1&code="+code, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, "first", (<-results).code)
	assert.Empty(t, results)
}

// browser follows the authorization URL straight back to the redirect URI,
// appending extra to the query.
func browser(t *testing.T, extra url.Values) Opener {
	return func(_ context.Context, authURL string) error {
		u, err := url.Parse(authURL)
		require.NoError(t, err)
		q := u.Query()
		assert.Equal(t, "S256", q.Get("code_challenge_method"))
		assert.NotEmpty(t, q.Get("code_challenge"))

		back := url.Values{"state": {q.Get("state")}}
		for k, v := range extra {
			back[k] = v
		}
		go func() {
			resp, err := http.Get(q.Get("redirect_uri") + "?" + back.Encode())
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}
}

func tokenServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "abc", r.PostForm.Get("code"))
		assert.NotEmpty(t, r.PostForm.Get("code_verifier"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-1",
			"token_type":    "Bearer",
			"refresh_token": "rt-1",
			"expires_in":    3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: "client",
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://provider.example/auth",
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: []string{"profile"},
	}
}

func TestReceiver_Authorize(t *testing.T) {
	srv := tokenServer(t)
	r := newTestReceiver(browser(t, url.Values{"code": {"abc"}}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cfg := testConfig(srv.URL)
	grant, err := r.Authorize(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, grant.Token)
	assert.False(t, grant.Cancelled)
	assert.Equal(t, "at-1", grant.Token.AccessToken)
	assert.Equal(t, "rt-1", grant.Token.RefreshToken)
	assert.Empty(t, cfg.RedirectURL, "caller config must not be modified")
}

func TestReceiver_AuthorizeCancelled(t *testing.T) {
	r := newTestReceiver(browser(t, url.Values{"error": {"access_denied"}, "error_reason": {"user_denied"}}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	grant, err := r.Authorize(ctx, testConfig("http://127.0.0.1:1/token"))
	require.NoError(t, err)
	assert.True(t, grant.Cancelled)
	assert.Equal(t, "user_denied", grant.Reason)
	assert.Nil(t, grant.Token)
}

func TestReceiver_AuthorizeContextDone(t *testing.T) {
	r := newTestReceiver(func(context.Context, string) error { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := r.Authorize(ctx, testConfig("http://127.0.0.1:1/token"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReceiver_OpenerFails(t *testing.T) {
	r := newTestReceiver(func(context.Context, string) error { return assert.AnError })

	_, err := r.Authorize(context.Background(), testConfig("http://127.0.0.1:1/token"))
	assert.ErrorIs(t, err, assert.AnError)
}
