package failreport

import (
	"errors"
	"testing"

	"github.com/samvad-hq/fritzbox-request/pkg/fritzrequest"
)

func TestStripSIDKeepsOtherParameters(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/data.lua?page=overview&sid=secret", "/data.lua?page=overview"},
		{"/data.lua?page=overview&sid=secret&lang=de", "/data.lua?page=overview&lang=de"},
		{"/data.lua?sid=secret&page=overview", "/data.lua?page=overview"},
		{"/data.lua?sid=secret", "/data.lua"},
		{"/data.lua&sid=secret", "/data.lua"},
		{"/a?x=1&sid=s1&y=2&sid=s2", "/a?x=1&y=2"},
		{"/a?x=1&mysid=keep", "/a?x=1&mysid=keep"},
		{"/plain", "/plain"},
	}
	for _, tc := range cases {
		if got := StripSID(tc.in); got != tc.want {
			t.Fatalf("StripSID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFromResponseCarriesClassification(t *testing.T) {
	resp := &fritzrequest.Response{
		StatusCode: 404,
		Body:       "<html><head><title> FRITZ!Box \n Fehler </title></head></html>",
		ErrorMsg:   fritzrequest.MsgPageNotFound,
	}
	req := Request{ProfileID: "home", Server: "fritz.box", Path: "/x.lua?a=1&sid=abc&b=2"}

	r := FromResponse(req, resp)
	if r.Kind != KindStatus || r.StatusCode != 404 || r.ErrorMsg != fritzrequest.MsgPageNotFound {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.Method != fritzrequest.DefaultMethod {
		t.Fatalf("expected default method, got %q", r.Method)
	}
	if r.Path != "/x.lua?a=1&b=2" {
		t.Fatalf("sid leaked into path: %q", r.Path)
	}
	if r.PageTitle != "FRITZ!Box Fehler" {
		t.Fatalf("unexpected title %q", r.PageTitle)
	}
	if r.ReportedAt.IsZero() {
		t.Fatalf("expected timestamp")
	}
}

func TestFromTransportError(t *testing.T) {
	r := FromTransportError(Request{Server: "fritz.box", Method: "POST", Path: "/"}, errors.New("connection refused"))
	if r.Kind != KindTransport || r.TransportError != "connection refused" || r.Method != "POST" {
		t.Fatalf("unexpected report %+v", r)
	}
	attrs := r.attributes()
	if _, ok := attrs["status_code"]; ok {
		t.Fatalf("transport report should not carry status_code: %v", attrs)
	}
	if _, ok := attrs["profile_id"]; ok {
		t.Fatalf("empty profile id should be omitted: %v", attrs)
	}
}

func TestPageTitleWithoutHTML(t *testing.T) {
	if got := PageTitle(`{"error":"nope"}`); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}
