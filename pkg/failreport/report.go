// Package failreport describes failed Fritz!Box requests and forwards them to
// a webhook, an SQS queue or an SNS topic.
package failreport

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/fritzbox-request/pkg/fritzrequest"
)

const (
	KindStatus    = "status"
	KindTransport = "transport"
)

// Report describes one failed request. It never carries the session id.
type Report struct {
	Kind           string    `json:"kind"`
	ProfileID      string    `json:"profile_id,omitempty"`
	Server         string    `json:"server"`
	Method         string    `json:"method"`
	Path           string    `json:"path"`
	StatusCode     int       `json:"status_code,omitempty"`
	ErrorMsg       string    `json:"error_msg,omitempty"`
	PageTitle      string    `json:"page_title,omitempty"`
	TransportError string    `json:"transport_error,omitempty"`
	ReportedAt     time.Time `json:"reported_at"`
}

// Request identifies the request a report is about.
type Request struct {
	ProfileID string
	Server    string
	Method    string
	Path      string
}

// FromResponse reports a classified non-2xx response.
func FromResponse(req Request, resp *fritzrequest.Response) Report {
	r := newReport(KindStatus, req)
	if resp != nil {
		r.StatusCode = resp.StatusCode
		r.ErrorMsg = resp.ErrorMsg
		r.PageTitle = PageTitle(resp.Body)
	}
	return r
}

// FromTransportError reports a request that never got an answer.
func FromTransportError(req Request, err error) Report {
	r := newReport(KindTransport, req)
	if err != nil {
		r.TransportError = err.Error()
	}
	return r
}

func newReport(kind string, req Request) Report {
	return Report{
		Kind:       kind,
		ProfileID:  req.ProfileID,
		Server:     req.Server,
		Method:     fritzrequest.ResolveMethod(req.Method),
		Path:       StripSID(req.Path),
		ReportedAt: time.Now().UTC(),
	}
}

// attributes are the routing hints attached to queue and topic messages.
func (r Report) attributes() map[string]string {
	attrs := map[string]string{
		"kind":   r.Kind,
		"server": r.Server,
	}
	if r.ProfileID != "" {
		attrs["profile_id"] = r.ProfileID
	}
	if r.StatusCode != 0 {
		attrs["status_code"] = strconv.Itoa(r.StatusCode)
	}
	return attrs
}

// StripSID removes every sid=<value> parameter from path and keeps the others.
func StripSID(path string) string {
	for {
		i := sidParam(path)
		if i < 0 {
			return path
		}
		next := strings.IndexByte(path[i+1:], '&')
		switch {
		case next < 0:
			path = path[:i]
		case path[i] == '?':
			path = path[:i+1] + path[i+1+next+1:]
		default:
			path = path[:i] + path[i+1+next:]
		}
	}
}

// sidParam returns the index of the separator in front of the first sid parameter.
func sidParam(path string) int {
	best := -1
	for _, sep := range []string{"?sid=", "&sid="} {
		if i := strings.Index(path, sep); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// PageTitle returns the trimmed <title> text of an HTML body, or "" if there is none.
func PageTitle(body string) string {
	if !strings.Contains(strings.ToLower(body), "<title") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
