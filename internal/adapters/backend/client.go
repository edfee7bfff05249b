package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/ports"
)

// Client wraps the billing backend's JSON API. Every request carries the
// default JSON headers plus a bearer token when the provider has one;
// transport failures and malformed responses are folded into the envelope
// and never escape as errors or panics.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenProvider
}

// New builds a client for the given base URL. The timeout is enforced by
// the underlying transport; tokens may be nil for unauthenticated use.
func New(baseURL string, timeout time.Duration, tokens ports.TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

func (c *Client) Get(ctx context.Context, endpoint string) domain.Envelope {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) domain.Envelope {
	return c.do(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any) domain.Envelope {
	return c.do(ctx, http.MethodPut, endpoint, body)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any) domain.Envelope {
	return c.do(ctx, http.MethodPatch, endpoint, body)
}

func (c *Client) Delete(ctx context.Context, endpoint string) domain.Envelope {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

// Download fetches a raw document (the export endpoint). Unlike the JSON
// calls it reports failures as errors, since there is no envelope to fold
// them into.
func (c *Client) Download(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", domain.MsgExportConnError, err)
	}
	c.setHeaders(ctx, req, false)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", domain.MsgExportConnError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s (status %d)", domain.MsgExportError, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any) domain.Envelope {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.Fail(domain.MsgConnectionError)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return domain.Fail(domain.MsgConnectionError)
	}
	c.setHeaders(ctx, req, true)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Fail(domain.MsgConnectionError)
	}
	defer resp.Body.Close()

	return handleResponse(resp)
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request, jsonBody bool) {
	if jsonBody {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token, ok := c.tokens.AccessToken(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// handleResponse normalizes any backend response into the envelope. JSON
// bodies are passed through as data; anything else is wrapped as
// {message: text}.
func handleResponse(resp *http.Response) domain.Envelope {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Fail(fmt.Sprintf("%s (Status: %d)", domain.MsgConnectionError, resp.StatusCode))
	}

	var data json.RawMessage
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		if len(raw) == 0 {
			raw = []byte("null")
		}
		if !json.Valid(raw) {
			return domain.Fail(fmt.Sprintf("%s (Status: %d)", domain.MsgConnectionError, resp.StatusCode))
		}
		data = raw
	} else {
		wrapped, _ := json.Marshal(map[string]string{"message": string(raw)})
		data = wrapped
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return domain.OK(data)
	}

	return domain.Envelope{Success: false, Error: resolveError(data), Data: data}
}

// resolveError picks the most specific message out of a backend error
// payload: explicit error, then message, then detail, then the joined
// non_field_errors, then per-field validation arrays ("field: m1, m2"
// joined with "; "), then a generic fallback.
func resolveError(data json.RawMessage) string {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		return domain.MsgUnknownError
	}

	for _, key := range []string{"error", "message", "detail"} {
		if msg, ok := payload[key].(string); ok && msg != "" {
			return msg
		}
	}

	if list, ok := payload["non_field_errors"].([]any); ok {
		if joined := joinMessages(list); joined != "" {
			return joined
		}
	}

	if fieldErrs := fieldErrors(payload); len(fieldErrs) > 0 {
		return strings.Join(fieldErrs, "; ")
	}

	return domain.MsgUnknownError
}

// fieldErrors collects per-field validation arrays in sorted field order,
// which keeps the resolved message deterministic.
func fieldErrors(payload map[string]any) []string {
	fields := make([]string, 0, len(payload))
	for field, value := range payload {
		if field == "non_field_errors" {
			continue
		}
		if _, ok := value.([]any); ok {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	errs := make([]string, 0, len(fields))
	for _, field := range fields {
		if joined := joinMessages(payload[field].([]any)); joined != "" {
			errs = append(errs, field+": "+joined)
		}
	}
	return errs
}

func joinMessages(list []any) string {
	msgs := make([]string, 0, len(list))
	for _, item := range list {
		if msg, ok := item.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, ", ")
}
