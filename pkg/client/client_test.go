package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	adminID  = uuid.MustParse("0192d6e0-0000-7000-8000-000000000001")
	farmerID = uuid.MustParse("0192d6e0-0000-7000-8000-000000000002")
)

type fakeServer struct {
	mu        sync.Mutex
	failStart bool
	failStop  bool
	auths     []string
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	record := func(r *http.Request) {
		f.mu.Lock()
		f.auths = append(f.auths, r.Header.Get("Authorization"))
		f.mu.Unlock()
	}

	mux.HandleFunc("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var in SignInInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "secret123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, AuthResponse{AccessToken: "admin-token", User: &User{ID: adminID, Email: in.Email}, Roles: []string{"admin"}})
	})
	mux.HandleFunc("/api/auth/signout", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/admin/impersonation/start", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if f.failStart {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":     "imp-token",
			"user":             User{ID: farmerID, Email: "farmer@example.com"},
			"roles":            []string{"farmer"},
			"is_impersonating": true,
			"target_user_id":   farmerID,
		})
	})
	mux.HandleFunc("/api/impersonation/stop", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if f.failStop {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		writeJSON(w, http.StatusOK, AuthResponse{AccessToken: "admin-token-2", User: &User{ID: adminID}, Roles: []string{"admin"}})
	})
	mux.HandleFunc("/api/routes/check", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, RouteDecision{Path: r.URL.Query().Get("path"), Outcome: "redirect", Redirect: "/dashboard"})
	})
	return mux
}

func newTestClient(t *testing.T, f *fakeServer, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL, append([]Option{WithHTTPClient(srv.Client())}, opts...)...)
}

func signIn(t *testing.T, c *Client) {
	t.Helper()
	_, err := c.SignIn(context.Background(), SignInInput{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
}

func TestSignInAndOut(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)

	var seen []State
	unsubscribe := c.Store().Subscribe(func(s State) { seen = append(seen, s) })

	_, err := c.SignIn(context.Background(), SignInInput{Email: "admin@example.com", Password: "wrong"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.False(t, c.Store().Snapshot().SignedIn())

	signIn(t, c)
	st := c.Store().Snapshot()
	assert.Equal(t, "admin-token", st.Token)
	assert.Equal(t, []string{"admin"}, st.Roles)

	require.NoError(t, c.SignOut(context.Background()))
	assert.False(t, c.Store().Snapshot().SignedIn())
	assert.Equal(t, []string{"Bearer admin-token"}, f.auths)

	require.Len(t, seen, 2)
	unsubscribe()
	signIn(t, c)
	assert.Len(t, seen, 2)
}

func TestImpersonationRoundTrip(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)
	signIn(t, c)

	require.NoError(t, c.StartImpersonation(context.Background(), farmerID))
	st := c.Store().Snapshot()
	assert.True(t, st.IsImpersonating)
	assert.Equal(t, farmerID, *st.ImpersonatedUserID)
	assert.Equal(t, "imp-token", st.Token)

	c.StopImpersonation(context.Background())
	st = c.Store().Snapshot()
	assert.False(t, st.IsImpersonating)
	assert.Nil(t, st.ImpersonatedUserID)
	assert.Equal(t, "admin-token-2", st.Token)
	assert.Equal(t, []string{"Bearer admin-token", "Bearer imp-token"}, f.auths)
}

func TestStartImpersonationFailureKeepsState(t *testing.T) {
	f := &fakeServer{failStart: true}
	c := newTestClient(t, f)
	signIn(t, c)
	before := c.Store().Snapshot()

	err := c.StartImpersonation(context.Background(), farmerID)
	require.Error(t, err)
	assert.Equal(t, before, c.Store().Snapshot())
}

func TestStopImpersonationFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := &fakeServer{}
	c := newTestClient(t, f, WithLogger(zap.New(core)))
	signIn(t, c)
	require.NoError(t, c.StartImpersonation(context.Background(), farmerID))

	f.failStop = true
	c.StopImpersonation(context.Background())

	assert.True(t, c.Store().Snapshot().IsImpersonating)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to stop impersonation", logs.All()[0].Message)
}

func TestCheckRoute(t *testing.T) {
	c := newTestClient(t, &fakeServer{})

	d, err := c.CheckRoute(context.Background(), "/admin")
	require.NoError(t, err)
	assert.Equal(t, "redirect", d.Outcome)
	assert.Equal(t, "/dashboard", d.Redirect)
	assert.Equal(t, "/admin", d.Path)
}
