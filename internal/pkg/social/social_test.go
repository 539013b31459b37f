package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleVerifier_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer provider-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"g-123","email":"a@x.com","given_name":"A","family_name":"B","picture":"http://img"}`))
	}))
	defer srv.Close()

	v := &GoogleVerifier{userInfoURL: srv.URL}
	profile, err := v.Verify(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Equal(t, "A", profile.FirstName)
	assert.Equal(t, "B", profile.LastName)
	assert.Equal(t, "g-123", profile.ProviderID)
}

func TestGoogleVerifier_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := &GoogleVerifier{userInfoURL: srv.URL}
	_, err := v.Verify(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestGoogleVerifier_MissingEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sub":"g-123"}`))
	}))
	defer srv.Close()

	v := &GoogleVerifier{userInfoURL: srv.URL}
	_, err := v.Verify(context.Background(), "provider-token")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestFacebookVerifier_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fb-token", r.URL.Query().Get("access_token"))
		_, _ = w.Write([]byte(`{"id":"f-9","email":"b@x.com","first_name":"B","last_name":"C","picture":{"data":{"url":"http://img"}}}`))
	}))
	defer srv.Close()

	v := &FacebookVerifier{graphURL: srv.URL, client: srv.Client()}
	profile, err := v.Verify(context.Background(), "fb-token")
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", profile.Email)
	assert.Equal(t, "f-9", profile.ProviderID)
	assert.Equal(t, "http://img", profile.Avatar)
}

func TestFacebookVerifier_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use: connection refused

	v := &FacebookVerifier{graphURL: srv.URL, client: http.DefaultClient}
	_, err := v.Verify(context.Background(), "fb-token")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}
