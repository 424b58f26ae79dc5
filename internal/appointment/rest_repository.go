package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

// RESTRepository implements Repository against the clinic backend's JSON
// API. It holds no appointment state; every call is one HTTP round trip.
type RESTRepository struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewRESTRepository creates a repository for the given base URL. tokens may
// be nil for unauthenticated use (booking and lookup work without a
// session; status updates and deletes do not).
func NewRESTRepository(baseURL string, tokens TokenSource) *RESTRepository {
	return &RESTRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		tokens: tokens,
	}
}

func (r *RESTRepository) List(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := r.do(ctx, http.MethodGet, "/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RESTRepository) Create(ctx context.Context, input CreateInput) (*Appointment, error) {
	input.Normalize()
	var out Appointment
	if err := r.do(ctx, http.MethodPost, "/appointments", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RESTRepository) UpdateStatus(ctx context.Context, id int64, status Status) (*Appointment, error) {
	body := struct {
		Status Status `json:"status"`
	}{Status: status}

	var out Appointment
	path := fmt.Sprintf("/appointments/%d/status", id)
	if err := r.do(ctx, http.MethodPatch, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RESTRepository) SearchByName(ctx context.Context, name string) ([]Appointment, error) {
	var out []Appointment
	path := "/appointments/search?name=" + url.QueryEscape(name)
	if err := r.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RESTRepository) Remove(ctx context.Context, id int64) error {
	return r.do(ctx, http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil)
}

// StatusLabels fetches the status vocabulary the backend advertises.
func (r *RESTRepository) StatusLabels(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.do(ctx, http.MethodGet, "/appointments/statuses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RESTRepository) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.tokens != nil {
		if token, ok := r.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverError extracts the backend's {"detail": "..."} message when one is
// present; otherwise the status code alone has to do.
func serverError(resp *http.Response) error {
	se := &ServerError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return se
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		se.Detail = body.Detail
	}
	return se
}
