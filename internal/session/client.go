package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-queue/internal/appointment"
)

// Client performs admin login and logout against the backend and keeps the
// store in sync with the outcome.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *Store
	log        zerolog.Logger
}

func NewClient(baseURL string, store *Store, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		store: store,
		log:   log,
	}
}

// Login exchanges the admin password for a session and persists it. A 401
// comes back as an AuthError; the session is never partially established.
func (c *Client) Login(ctx context.Context, password string) (*Session, error) {
	body, err := json.Marshal(struct {
		Password string `json:"password"`
	}{Password: strings.TrimSpace(password)})
	if err != nil {
		return nil, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &appointment.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthError{Detail: readDetail(resp.Body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &appointment.ServerError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var sess Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if sess.Expired(time.Now()) {
		return nil, fmt.Errorf("login returned an unusable session")
	}
	if err := c.store.Set(sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &sess, nil
}

// Logout revokes the session server-side on a best-effort basis. Failures
// are logged, not surfaced; the local session is cleared regardless.
func (c *Client) Logout(ctx context.Context) {
	sess := c.store.Current()
	if sess != nil {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/logout", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
			resp, doErr := c.httpClient.Do(req)
			if doErr != nil {
				c.log.Warn().Err(doErr).Msg("admin logout request failed")
			} else {
				resp.Body.Close()
				if resp.StatusCode < 200 || resp.StatusCode > 299 {
					c.log.Warn().Int("status", resp.StatusCode).Msg("admin logout rejected")
				}
			}
		}
	}
	if err := c.store.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("clear stored session failed")
	}
}

func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil {
		return ""
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Detail
}
