package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client downloads tabular reference files over HTTP.
type Client interface {
	Download(ctx context.Context, url string) ([]byte, string, error)
}

// HTTPClient is a resty-backed implementation of Client.
type HTTPClient struct {
	httpClient *resty.Client
}

// New builds a download client with sane timeouts and retries for flaky
// file hosts.
func New() *HTTPClient {
	restyClient := resty.New()
	restyClient.
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &HTTPClient{httpClient: restyClient}
}

// Download fetches the URL and returns the body along with the response
// Content-Type header.
func (c *HTTPClient) Download(ctx context.Context, url string) ([]byte, string, error) {
	if url == "" {
		return nil, "", fmt.Errorf("url must not be empty")
	}

	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("download %s: %w", url, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, "", fmt.Errorf("download %s: status %d", url, resp.StatusCode())
	}

	return resp.Body(), resp.Header().Get("Content-Type"), nil
}
