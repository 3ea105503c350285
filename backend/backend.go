package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"restqueue/queue"
)

// Submitter is the producer side of the request queue.
type Submitter interface {
	Submit(req *queue.Request) *queue.Receiver
}

// Client builds requests against the API root and waits for their results
// from the dispatcher.
type Client struct {
	baseURL   string
	submitter Submitter
}

// NewBackendClient creates a new Client with the specified base URL.
func NewBackendClient(baseURL string, submitter Submitter) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		submitter: submitter,
	}
}

// Get fetches path and returns the response body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.Forward(ctx, http.MethodGet, path, nil, nil)
}

// Forward sends the request through the dispatcher and returns the response
// body. If ctx is done before the result arrives the request is abandoned.
func (c *Client) Forward(ctx context.Context, method, path string, headers http.Header, body []byte) ([]byte, error) {
	// Construct the full URL.
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	rx := c.submitter.Submit(&queue.Request{
		Method: method,
		URI:    url,
		Header: headers.Clone(),
		Body:   body,
	})
	return rx.Wait(ctx)
}
