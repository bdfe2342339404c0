package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient. A zero timeout leaves requests unbounded.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing request bodies or headers.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient builds a client without a cookie jar so no state is
// carried from one request to the next.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.NewWithClient(&http.Client{})
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Do performs a single HTTP request with the given method. Errors from the
// transport are returned as produced by the underlying client.
func (r *RestyClient) Do(ctx context.Context, method, url string) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := r.client.R().SetContext(ctx).Execute(method, url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
