package stub

import (
	"crypto/subtle"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AdminSessions issues and checks bearer tokens for the admin endpoints.
// One shared password, tokens expire after the configured TTL.
type AdminSessions struct {
	mu       sync.Mutex
	password string
	ttl      time.Duration
	sessions map[string]time.Time
}

func NewAdminSessions(password string, ttl time.Duration) *AdminSessions {
	return &AdminSessions{
		password: password,
		ttl:      ttl,
		sessions: make(map[string]time.Time),
	}
}

// Login checks the password and mints a token. ok is false on a bad
// credential.
func (a *AdminSessions) Login(password string) (token string, expiresAt time.Time, ok bool) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		return "", time.Time{}, false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	token = uuid.NewString()
	expiresAt = time.Now().UTC().Add(a.ttl)
	a.sessions[token] = expiresAt
	return token, expiresAt, true
}

// Authorize validates a raw Authorization header value and returns the
// token it carried. Expired tokens are revoked on sight.
func (a *AdminSessions) Authorize(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	expiresAt, found := a.sessions[token]
	if !found {
		return "", false
	}
	if !expiresAt.After(time.Now().UTC()) {
		delete(a.sessions, token)
		return "", false
	}
	return token, true
}

// Revoke drops a token. Unknown tokens are a no-op.
func (a *AdminSessions) Revoke(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, token)
}
