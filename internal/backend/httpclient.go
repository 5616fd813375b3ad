package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"kavio/cli/internal/apierr"
)

// HTTP implements API over the Kavio REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all requests (e.g., "http://localhost:3001")
	baseURL string
	// tokens supplies the session token attached to authenticated requests
	tokens TokenSource
	// client is the underlying HTTP client with configured timeout
	client *http.Client

	mu             sync.Mutex
	onUnauthorized func()
}

// newHTTP creates a new HTTP client with the given base URL and token source.
// It configures a 10-second timeout for all requests.
func newHTTP(baseURL string, tokens TokenSource) *HTTP {
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SetUnauthorizedHandler registers the forced-logout hook.
func (h *HTTP) SetUnauthorizedHandler(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnauthorized = fn
}

func (h *HTTP) unauthorized() {
	h.mu.Lock()
	fn := h.onUnauthorized
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// do issues one request and decodes a 2xx JSON response into out (skipped
// when out is nil or the body is empty). This is the single place that
// inspects response statuses: 401 fires the unauthorized hook and comes back
// as a typed Unauthorized error, every other non-2xx becomes RequestFailed
// with status and body attached, and transport failures become Network
// errors. No retries.
func (h *HTTP) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return apierr.Wrap(apierr.Network, "encode request", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return apierr.Wrap(apierr.Network, "create request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, */*")
	// Raw token as the header value; the backend does not expect the
	// Bearer prefix.
	if token := h.tokens.Token(); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return apierr.Wrap(apierr.Network, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		h.unauthorized()
		return apierr.New(apierr.Unauthorized, "session expired or invalid")
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(resp.Body)
		return apierr.StatusError(resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return apierr.Wrap(apierr.Network, "decode response", err)
	}
	return nil
}

// get issues GET and binds the parsed body into out.
func (h *HTTP) get(ctx context.Context, path string, out any) error {
	return h.do(ctx, http.MethodGet, path, nil, out)
}

// post issues POST with a JSON payload; the created resource is bound to out.
func (h *HTTP) post(ctx context.Context, path string, payload, out any) error {
	return h.do(ctx, http.MethodPost, path, payload, out)
}

// put issues PUT with a JSON payload; the updated resource is bound to out.
func (h *HTTP) put(ctx context.Context, path string, payload, out any) error {
	return h.do(ctx, http.MethodPut, path, payload, out)
}

// delete issues DELETE; callers refetch lists afterward, nothing is bound.
func (h *HTTP) delete(ctx context.Context, path string) error {
	return h.do(ctx, http.MethodDelete, path, nil, nil)
}
