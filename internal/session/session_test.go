package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempSessionFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestStoreRoundTrip(t *testing.T) {
	path := tempSessionFile(t)
	store := NewStore(path)
	require.Nil(t, store.Current())

	sess := Session{Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Set(sess))

	// A fresh store picks the session up from disk.
	reopened := NewStore(path)
	current := reopened.Current()
	require.NotNil(t, current)
	assert.Equal(t, "tok-1", current.Token)

	token, ok := reopened.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
}

func TestStoreEvictsExpiredSession(t *testing.T) {
	path := tempSessionFile(t)
	store := NewStore(path)
	require.NoError(t, store.Set(Session{Token: "tok-2", ExpiresAt: time.Now().Add(10 * time.Millisecond)}))

	time.Sleep(20 * time.Millisecond)

	assert.Nil(t, store.Current())
	_, ok := store.Token()
	assert.False(t, ok)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "expired session file is removed")
}

func TestStoreIgnoresGarbageFile(t *testing.T) {
	path := tempSessionFile(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path)
	assert.Nil(t, store.Current())
}

func TestStoreClear(t *testing.T) {
	path := tempSessionFile(t)
	store := NewStore(path)
	require.NoError(t, store.Set(Session{Token: "tok-3", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, store.Clear())
	assert.Nil(t, store.Current())
	require.NoError(t, store.Clear(), "clearing twice is fine")
}

func TestLoginPersistsSession(t *testing.T) {
	expiresAt := time.Now().Add(8 * time.Hour).UTC().Truncate(time.Second)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/login", r.URL.Path)

		var body struct {
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "swordfish-42", body.Password, "password arrives trimmed")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":     "tok-login",
			"expiresAt": expiresAt.Format(time.RFC3339),
		})
	}))
	defer ts.Close()

	store := NewStore(tempSessionFile(t))
	client := NewClient(ts.URL, store, zerolog.Nop())

	sess, err := client.Login(context.Background(), "  swordfish-42  ")
	require.NoError(t, err)
	assert.Equal(t, "tok-login", sess.Token)

	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, "tok-login", current.Token)
}

func TestLoginRejectionIsAuthError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid admin credentials."}`))
	}))
	defer ts.Close()

	store := NewStore(tempSessionFile(t))
	client := NewClient(ts.URL, store, zerolog.Nop())

	_, err := client.Login(context.Background(), "wrong-password")
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Invalid admin credentials.", ae.Detail)
	assert.Nil(t, store.Current(), "no partial session on rejection")
}

func TestLogoutBestEffort(t *testing.T) {
	sawLogout := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogout = true
		require.Equal(t, "/admin/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok-out", r.Header.Get("Authorization"))
		// Backend misbehaves; logout is best-effort anyway.
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	store := NewStore(tempSessionFile(t))
	require.NoError(t, store.Set(Session{Token: "tok-out", ExpiresAt: time.Now().Add(time.Hour)}))
	client := NewClient(ts.URL, store, zerolog.Nop())

	client.Logout(context.Background())

	assert.True(t, sawLogout)
	assert.Nil(t, store.Current(), "local session cleared even when revocation fails")
}

func TestLogoutWithoutSessionSkipsRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected without a session")
	}))
	defer ts.Close()

	store := NewStore(tempSessionFile(t))
	client := NewClient(ts.URL, store, zerolog.Nop())
	client.Logout(context.Background())
}
