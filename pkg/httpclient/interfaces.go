package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Do issues exactly one request without a body and returns any response the server
// produced, whatever its status code. Only transport failures are returned as errors.
type Client interface {
	Do(ctx context.Context, method, url string) (Response, error)
}
