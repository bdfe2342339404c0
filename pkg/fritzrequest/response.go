package fritzrequest

import "net/http"

// Response is the envelope handed back for every request that reached the Fritz!Box.
type Response struct {
	Body       string `json:"body"`
	StatusCode int    `json:"status_code"`
	ErrorMsg   string `json:"error_msg,omitempty"`
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	if r == nil {
		return false
	}
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Err returns a StatusError for a non-2xx response, classifying it first when
// ErrorMsg has not been set yet. It returns nil for 2xx responses.
func (r *Response) Err() error {
	if r == nil || r.IsSuccess() {
		return nil
	}
	msg := r.ErrorMsg
	if msg == "" {
		msg = failCause(r.StatusCode)
	}
	return &StatusError{StatusCode: r.StatusCode, Message: msg}
}
