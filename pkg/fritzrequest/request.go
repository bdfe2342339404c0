package fritzrequest

import (
	"context"

	"github.com/samvad-hq/fritzbox-request/pkg/httpclient"
)

// Dispatcher sends single requests to a Fritz!Box management interface.
type Dispatcher struct {
	client httpclient.Client
	log    Logger
}

// DefaultHTTPClient returns the transport used when none is injected. It sets no timeout.
func DefaultHTTPClient() httpclient.Client { return httpclient.NewRestyClient(0) }

// NewDispatcher builds a Dispatcher. Nil arguments fall back to the resty
// transport and a silent logger.
func NewDispatcher(client httpclient.Client, log Logger) *Dispatcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &Dispatcher{client: client, log: ensureLogger(log)}
}

// Request builds the target URL from path and opts and performs one HTTP call.
// Any response is returned as a Response regardless of its status code; only
// missing configuration and transport failures produce an error, the latter
// returned exactly as the transport reported it.
func (d *Dispatcher) Request(ctx context.Context, path, method string, opts Options) (*Response, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	url := TargetURL(path, opts)
	method = ResolveMethod(method)

	resp, err := d.client.Do(ctx, method, url)
	if err != nil {
		d.log.ErrorObj("request failed", "request_error", map[string]any{
			"method": method,
			"server": opts.Server,
			"error":  err.Error(),
		})
		return nil, err
	}

	return &Response{
		Body:       string(resp.Body()),
		StatusCode: resp.StatusCode(),
	}, nil
}

// FindFailCause classifies resp using the dispatcher's logger.
func (d *Dispatcher) FindFailCause(resp *Response) *Response {
	return FindFailCause(resp, d.log)
}
