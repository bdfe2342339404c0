package fritzrequest

import (
	"errors"
	"net/http"
	"testing"
)

func TestFindFailCauseMessages(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{status: http.StatusForbidden, want: "Not authenticated correctly for communication with Fritz!Box."},
		{status: http.StatusInternalServerError, want: "The Fritz!Box encountered an internal server error."},
		{status: http.StatusNotFound, want: "Requested page does not exist on the Fritz!Box."},
		{status: http.StatusBadGateway, want: "Encountered an unexpected error."},
		{status: 0, want: "Encountered an unexpected error."},
		// Known limitation: the classifier does not check for success codes.
		{status: http.StatusOK, want: "Encountered an unexpected error."},
	}
	for _, tc := range cases {
		resp := &Response{StatusCode: tc.status}
		got := FindFailCause(resp, nil)
		if got != resp {
			t.Fatalf("status %d: expected the same envelope to be returned", tc.status)
		}
		if got.ErrorMsg != tc.want {
			t.Fatalf("status %d: ErrorMsg = %q want %q", tc.status, got.ErrorMsg, tc.want)
		}
	}
}

func TestFindFailCauseLogsStatusEveryCall(t *testing.T) {
	log := &recordingLogger{}
	FindFailCause(&Response{StatusCode: http.StatusForbidden}, log)
	FindFailCause(&Response{StatusCode: http.StatusOK}, log)

	infos := log.level("info")
	if len(infos) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(infos))
	}
	if infos[0].msg != "HTTP response code was 403" || infos[1].msg != "HTTP response code was 200" {
		t.Fatalf("unexpected log lines: %#v", infos)
	}
}

func TestFindFailCauseNil(t *testing.T) {
	log := &recordingLogger{}
	if got := FindFailCause(nil, log); got != nil {
		t.Fatalf("expected nil")
	}
	if len(log.entries) != 0 {
		t.Fatalf("expected no log lines for nil response")
	}
}

func TestResponseErr(t *testing.T) {
	if err := (&Response{StatusCode: http.StatusNoContent}).Err(); err != nil {
		t.Fatalf("2xx should not produce an error, got %v", err)
	}

	err := (&Response{StatusCode: http.StatusForbidden}).Err()
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusForbidden || statusErr.Message != MsgNotAuthenticated {
		t.Fatalf("unexpected StatusError %#v", statusErr)
	}

	classified := &Response{StatusCode: http.StatusTeapot, ErrorMsg: "custom"}
	if !errors.As(classified.Err(), &statusErr) || statusErr.Message != "custom" {
		t.Fatalf("expected existing ErrorMsg to be kept, got %#v", statusErr)
	}
}

func TestFindFailCauseKeepsExistingMessageForUnmatchedCode(t *testing.T) {
	resp := FindFailCause(&Response{StatusCode: http.StatusBadGateway, ErrorMsg: "box is rebooting"}, nil)
	if resp.ErrorMsg != "box is rebooting" {
		t.Fatalf("ErrorMsg = %q, expected existing message to be kept", resp.ErrorMsg)
	}

	resp = FindFailCause(&Response{StatusCode: http.StatusForbidden, ErrorMsg: "stale"}, nil)
	if resp.ErrorMsg != MsgNotAuthenticated {
		t.Fatalf("ErrorMsg = %q, matched codes should replace the message", resp.ErrorMsg)
	}
}
