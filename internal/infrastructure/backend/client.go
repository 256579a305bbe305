package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"easylease-admin/internal/metrics"

	"github.com/rs/zerolog/log"
)

// ErrNotFound matches any *Error carrying HTTP 404.
var ErrNotFound = errors.New("backend: not found")

// Error is a failed call to the listings backend: a non-2xx status or an
// envelope with success=false. Message prefers the server-provided error text,
// which is also kept in Detail ("" when the server sent none).
type Error struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Message returns the human-readable text of err: the server message for *Error,
// err.Error() otherwise.
func Message(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}

// Detail returns the error text sent by the server, if err carries one.
func Detail(err error) (string, bool) {
	var be *Error
	if errors.As(err, &be) && be.Detail != "" {
		return be.Detail, true
	}
	return "", false
}

// Params is an open set of query parameters. Empty values are omitted.
type Params map[string]string

func (p Params) encode() string {
	if len(p) == 0 {
		return ""
	}
	q := url.Values{}
	for k, v := range p {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Client is the typed gateway to the listings backend REST API.
// It holds no cache and makes exactly one attempt per call.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client for baseURL (e.g. http://localhost:4000/api).
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// request describes one backend call. route is the path template used for metrics.
type request struct {
	method      string
	route       string
	path        string
	query       Params
	json        interface{}
	body        io.Reader
	contentType string
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 15 * time.Second}
	}
	return c.HTTP
}

// do issues r and decodes the unwrapped payload into out (which may be nil).
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, r, out)
	metrics.ObserveBackend(r.method, r.route, status, time.Since(start))
	if err != nil {
		log.Error().Err(err).Str("method", r.method).Str("path", r.path).Int("status", status).Msg("API request failed")
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, r request, out interface{}) (int, error) {
	body := r.body
	contentType := r.contentType
	if r.json != nil {
		b, err := json.Marshal(r.json)
		if err != nil {
			return 0, fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(b)
	}
	if contentType == "" {
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.BaseURL+r.path+r.query.encode(), body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read %s %s: %w", r.method, r.path, err)
	}
	return resp.StatusCode, unwrap(resp.StatusCode, raw, out)
}

// unwrap normalizes both the {success,data,error} envelope and bare payloads.
func unwrap(status int, raw []byte, out interface{}) error {
	var probe map[string]json.RawMessage
	isObject := json.Unmarshal(raw, &probe) == nil

	if status < 200 || status >= 300 {
		detail := errorText(probe)
		msg := detail
		if msg == "" {
			msg = fmt.Sprintf("HTTP error! status: %d", status)
		}
		return &Error{StatusCode: status, Message: msg, Detail: detail}
	}

	payload := json.RawMessage(raw)
	if isObject {
		if rawSuccess, ok := probe["success"]; ok {
			var success bool
			_ = json.Unmarshal(rawSuccess, &success)
			if !success {
				detail := errorText(probe)
				msg := detail
				if msg == "" {
					msg = "request was not successful"
				}
				return &Error{StatusCode: status, Message: msg, Detail: detail}
			}
		}
		if data, ok := probe["data"]; ok && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
			payload = data
		}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorText(probe map[string]json.RawMessage) string {
	raw, ok := probe["error"]
	if !ok {
		return ""
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg
	}
	// Some handlers send {error: {message}}.
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested.Message
	}
	return ""
}

// fetch runs r and returns the decoded payload, or the zero value on any failure.
func fetch[T any](ctx context.Context, c *Client, r request) (T, error) {
	var v T
	if err := c.do(ctx, r, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func escape(id string) string {
	return url.PathEscape(id)
}
