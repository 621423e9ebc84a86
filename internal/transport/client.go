package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"sync"

	"github.com/OpenNSW/formflow/internal/endpoints"
)

// Response is the completion value of a single POST.
// StatusCode is 0 when the request never produced an HTTP response.
type Response struct {
	StatusCode int
	Body       string
	Err        error
}

// OK reports whether the workflow accepted the request. Only 200 counts as success.
func (r Response) OK() bool {
	return r.Err == nil && r.StatusCode == http.StatusOK
}

// AsError returns nil for a successful response and a *TransportError otherwise.
func (r Response) AsError() error {
	if r.OK() {
		return nil
	}
	return &TransportError{StatusCode: r.StatusCode, Body: r.Body, cause: r.Err}
}

// TransportError reports a network failure or a non-200 status.
// Body carries the raw response text; it is empty when no response arrived.
type TransportError struct {
	StatusCode int
	Body       string
	cause      error
}

func (e *TransportError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("workflow request failed: %v", e.cause)
	}
	return fmt.Sprintf("workflow request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.cause }

// Sender issues asynchronous workflow requests.
type Sender interface {
	Send(ctx context.Context, url string, body []byte, done func(Response))
}

// Client posts JSON bodies to pre-signed workflow endpoints.
// There is no retry and no client-side timeout: one call, one request.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client. A nil httpClient uses a zero-value http.Client.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient}
}

// Send starts the POST and returns immediately. done runs at most once, on the request goroutine,
// after the response body has been read in full.
func (c *Client) Send(ctx context.Context, url string, body []byte, done func(Response)) {
	var once sync.Once
	complete := func(resp Response) {
		once.Do(func() {
			if done != nil {
				done(resp)
			}
		})
	}

	// Requests are never cancelled, even after the caller's context ends.
	reqCtx := context.WithoutCancel(ctx)

	go func() {
		complete(c.post(reqCtx, url, body))
	}()
}

func (c *Client) post(ctx context.Context, url string, body []byte) Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{Err: fmt.Errorf("failed to create request: %w", redactURLError(err))}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{Err: fmt.Errorf("failed to send POST request: %w", redactURLError(err))}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{StatusCode: resp.StatusCode, Body: string(respBody), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return Response{StatusCode: resp.StatusCode, Body: string(respBody)}
}

// redactURLError masks the signature carried by the endpoint URL inside a *url.Error.
func redactURLError(err error) error {
	var urlErr *neturl.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = endpoints.Redact(urlErr.URL)
	}
	return err
}
