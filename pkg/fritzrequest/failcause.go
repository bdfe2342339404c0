package fritzrequest

import (
	"fmt"
	"net/http"
)

const (
	MsgNotAuthenticated    = "Not authenticated correctly for communication with Fritz!Box."
	MsgInternalServerError = "The Fritz!Box encountered an internal server error."
	MsgPageNotFound        = "Requested page does not exist on the Fritz!Box."
	MsgUnexpected          = "Encountered an unexpected error."
)

var failCauses = map[int]string{
	http.StatusForbidden:           MsgNotAuthenticated,
	http.StatusInternalServerError: MsgInternalServerError,
	http.StatusNotFound:            MsgPageNotFound,
}

// FindFailCause sets ErrorMsg on resp from its status code and returns resp.
// It assumes the caller already knows the request failed: any code without a
// dedicated message, 200 included, is reported as unexpected unless ErrorMsg
// was already set.
func FindFailCause(resp *Response, log Logger) *Response {
	if resp == nil {
		return nil
	}
	ensureLogger(log).InfoObj(fmt.Sprintf("HTTP response code was %d", resp.StatusCode), "status_code", resp.StatusCode)
	if msg, ok := failCauses[resp.StatusCode]; ok {
		resp.ErrorMsg = msg
	} else if resp.ErrorMsg == "" {
		resp.ErrorMsg = MsgUnexpected
	}
	return resp
}

func failCause(status int) string {
	if msg, ok := failCauses[status]; ok {
		return msg
	}
	return MsgUnexpected
}
