package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL)
	require.NoError(t, err)
	return client, srv
}

func TestDoAttachesBearerAndCSRF(t *testing.T) {
	var csrfFetches atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		csrfFetches.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": "csrf-1"})
	})
	mux.HandleFunc("/api/pets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		assert.Equal(t, "csrf-1", r.Header.Get("x-csrf-token"))
		w.WriteHeader(http.StatusCreated)
	})

	client, _ := newTestClient(t, mux)
	client.SetAccessToken("access-1")

	require.NoError(t, client.Do(context.Background(), http.MethodPost, "/api/pets", map[string]string{"name": "Rex"}, nil))
	require.NoError(t, client.Do(context.Background(), http.MethodPost, "/api/pets", map[string]string{"name": "Mia"}, nil))

	// The token is cached after the first fetch.
	assert.Equal(t, int32(1), csrfFetches.Load())
}

func TestDoRetriesOnceWithFreshCSRFToken(t *testing.T) {
	var issued atomic.Int32
	var attempts atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		n := issued.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": map[int32]string{1: "stale", 2: "fresh"}[n]})
	})
	mux.HandleFunc("/api/pets", func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		if r.Header.Get("x-csrf-token") != "fresh" {
			writeError(w, http.StatusForbidden, "INVALID_CSRF", "CSRF token missing or invalid")
			return
		}
		w.WriteHeader(http.StatusCreated)
	})

	client, _ := newTestClient(t, mux)

	require.NoError(t, client.Do(context.Background(), http.MethodPost, "/api/pets", map[string]string{"name": "Rex"}, nil))
	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, int32(2), issued.Load())
}

func TestDoSecond403Propagates(t *testing.T) {
	var attempts atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": "always-rejected"})
	})
	mux.HandleFunc("/api/pets", func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		writeError(w, http.StatusForbidden, "INVALID_CSRF", "CSRF token missing or invalid")
	})

	client, _ := newTestClient(t, mux)

	err := client.Do(context.Background(), http.MethodPost, "/api/pets", map[string]string{"name": "Rex"}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "INVALID_CSRF", apiErr.Code)
	// One original attempt plus exactly one retry.
	assert.Equal(t, int32(2), attempts.Load())
}

func TestDoRefreshesOnceOn401(t *testing.T) {
	var refreshes atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": "csrf-1"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh-token"})
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"email": "a@x.com"}})
	})

	client, _ := newTestClient(t, mux)
	client.SetAccessToken("expired-token")

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, "fresh-token", client.AccessToken())
}

func TestDoFailedLoginDoesNotRefresh(t *testing.T) {
	var refreshes atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": "csrf-1"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh-token"})
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Login(context.Background(), "a@x.com", "wrong-password")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
	assert.Equal(t, int32(0), refreshes.Load())
}

func TestDoFailedRefreshForcesLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": "csrf-1"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "INVALID_SESSION", "Session expired")
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
	})

	client, _ := newTestClient(t, mux)
	client.SetAccessToken("expired-token")

	_, err := client.Me(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Empty(t, client.AccessToken())

	select {
	case <-client.ForcedLogout():
	default:
		t.Fatal("expected forced-logout broadcast")
	}
}

func TestDoConcurrent401sEachRetryOnce(t *testing.T) {
	var refreshes atomic.Int32
	var meCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf-token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"csrfToken": "csrf-1"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh-token"})
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"email": "a@x.com"}})
	})

	client, _ := newTestClient(t, mux)
	client.SetAccessToken("expired-token")

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Me(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	// Every request retried at most once: total attempts never exceed two
	// per request, and refreshes never exceed one per request.
	assert.LessOrEqual(t, meCalls.Load(), int32(2*workers))
	assert.LessOrEqual(t, refreshes.Load(), int32(workers))
	assert.GreaterOrEqual(t, refreshes.Load(), int32(1))
}
