package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session is an admin's time-limited access grant.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at the given
// instant. Sessions without a token or expiry are treated as expired.
func (s Session) Expired(now time.Time) bool {
	if s.Token == "" || s.ExpiresAt.IsZero() {
		return true
	}
	return !s.ExpiresAt.After(now)
}

// AuthError means the backend rejected the login credentials.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "admin login rejected"
}

// Store persists the admin session to a JSON file so it survives restarts
// until it expires. It doubles as the token source for outgoing requests.
type Store struct {
	mu      sync.Mutex
	path    string
	current *Session
}

// NewStore opens a store backed by the given file path, discarding any
// stored session that is malformed or already expired.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.current = s.readFile()
	return s
}

// Current returns the active session, or nil when there is none. An expired
// session is evicted from disk on the way out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	if s.current.Expired(time.Now()) {
		s.current = nil
		_ = os.Remove(s.path)
		return nil
	}
	copied := *s.current
	return &copied
}

// Set replaces the active session and writes it through to disk.
func (s *Store) Set(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}
	s.current = &sess
	return nil
}

// Clear drops the active session and deletes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Token implements the token source consumed by the repository client.
func (s *Store) Token() (string, bool) {
	sess := s.Current()
	if sess == nil {
		return "", false
	}
	return sess.Token, true
}

func (s *Store) readFile() *Session {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		_ = os.Remove(s.path)
		return nil
	}
	if sess.Expired(time.Now()) {
		_ = os.Remove(s.path)
		return nil
	}
	return &sess
}
