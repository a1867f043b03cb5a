package download

import (
	"context"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/winstrap/pkg/domain/interfaces"
)

// ChunkSize is the buffer size used while streaming a response body
const ChunkSize = 8192

// ErrUnexpectedStatus is returned for non-2xx responses
var ErrUnexpectedStatus = goerr.New("unexpected HTTP status")

type client struct {
	httpClient *http.Client
}

// Option is a functional option for the download client
type Option func(*client)

// WithHTTPClient replaces the HTTP client used for requests
func WithHTTPClient(c *http.Client) Option {
	return func(cl *client) {
		cl.httpClient = c
	}
}

// NewClient creates a new streaming HTTP downloader
func NewClient(opts ...Option) interfaces.Downloader {
	// No timeout: large archives on slow links must be able to finish
	c := &client{
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download streams the body of url into w in ChunkSize pieces
func (c *client) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create download request", goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to download", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, goerr.Wrap(ErrUnexpectedStatus, "download rejected",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode),
		)
	}

	n, err := io.CopyBuffer(w, resp.Body, make([]byte, ChunkSize))
	if err != nil {
		return n, goerr.Wrap(err, "failed to read response body", goerr.V("url", url), goerr.V("written", n))
	}

	return n, nil
}
