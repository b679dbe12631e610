/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//go:generate mockgen -source=client.go -destination=mock/interfaces.go -package=mock

package client

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/constants"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/options"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	// ErrEmptyPath is raised when a request has no path.
	ErrEmptyPath = errors.New("request path must not be empty")

	// ErrInvalidBody is raised when a request body cannot be encoded as JSON.
	ErrInvalidBody = errors.New("request body is not serializable to JSON")
)

// TransportError means no usable response was obtained: the connection failed,
// timed out, or the response could not be read.
type TransportError struct {
	Method  string
	Path    string
	TraceID string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport error: %v (trace ID: %s)", e.Method, e.Path, e.Err, e.TraceID)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Doer executes HTTP requests, *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Snapshot is everything observed about one response.
type Snapshot struct {
	Method     string
	Path       string
	TraceID    string
	StatusCode int
	// Header is keyed canonically, use Header.Get for case insensitive lookup.
	Header  http.Header
	Elapsed time.Duration
	// Body is the raw response body.
	Body []byte
	// JSON is the decoded body, nil when the body is empty or DecodeErr is set.
	JSON      any
	DecodeErr error
}

// Client sends requests to the service under test.  A single pooled
// transport is shared by every call and by concurrent callers.
type Client struct {
	baseURL      string
	doer         Doer
	logRequests  bool
	logResponses bool
}

// Option customizes a Client.
type Option func(*Client)

// WithDoer replaces the HTTP executor.
func WithDoer(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithLogging enables request line and response body logging.
func WithLogging(requests, responses bool) Option {
	return func(c *Client) {
		c.logRequests = requests
		c.logResponses = responses
	}
}

// New creates a client for baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // the default transport is always *http.Transport
	transport.MaxIdleConnsPerHost = 16

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		doer: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewFromOptions creates a client configured from run options.
func NewFromOptions(o *options.Options, opts ...Option) *Client {
	opts = append([]Option{WithLogging(o.LogRequests, o.LogResponses)}, opts...)

	return New(o.BaseURL, o.RequestTimeout, opts...)
}

// BaseURL returns the service root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// generateTraceID creates a new W3C trace ID.
// A fresh trace ID per request lets a failure be located in the service logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() (string, string) {
	traceID := generateTraceID()

	return fmt.Sprintf("00-%s-%s-01", traceID, generateSpanID()), traceID
}

// Send issues a request and captures the response.  A nil body sends no body,
// anything else is encoded as JSON.  HTTP error statuses are not errors; only
// transport failures are.
//
//nolint:cyclop // linear request/response handling
func (c *Client) Send(ctx context.Context, method, path string, query url.Values, body any) (*Snapshot, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}

		reader = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent, traceID := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation="+constants.Application)
	req.Header.Set("User-Agent", constants.UserAgent())
	req.Header.Set("Accept", "application/json")

	if reader != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	logger := log.FromContext(ctx).WithValues("method", method, "path", path, "traceID", traceID)

	start := time.Now()
	resp, err := c.doer.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error(err, "http request failed", "duration", elapsed)

		return nil, &TransportError{Method: method, Path: path, TraceID: traceID, Err: err}
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error(err, "reading response body", "status", resp.StatusCode, "duration", elapsed)

		return nil, &TransportError{Method: method, Path: path, TraceID: traceID, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if c.logRequests {
		logger.Info("request complete", "status", resp.StatusCode, "duration", elapsed)
	}

	if c.logResponses && len(respBody) > 0 {
		logger.Info("response body", "body", string(respBody))
	}

	snapshot := &Snapshot{
		Method:     method,
		Path:       path,
		TraceID:    traceID,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Elapsed:    elapsed,
		Body:       respBody,
	}

	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &snapshot.JSON); err != nil {
			snapshot.JSON = nil
			snapshot.DecodeErr = fmt.Errorf("decoding response body: %w", err)
		}
	}

	return snapshot, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Snapshot, error) {
	return c.Send(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Snapshot, error) {
	return c.Send(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Snapshot, error) {
	return c.Send(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Snapshot, error) {
	return c.Send(ctx, http.MethodDelete, path, nil, nil)
}
