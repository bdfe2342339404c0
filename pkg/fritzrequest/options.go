package fritzrequest

import "strings"

const (
	// DefaultProtocol is the URL scheme used when Options.Protocol is empty.
	DefaultProtocol = "http"
	// DefaultMethod is the HTTP verb used when a request names none.
	DefaultMethod = "GET"
)

// Options describes how to reach a Fritz!Box and which session to use.
type Options struct {
	Server           string `json:"server" yaml:"server"`
	Protocol         string `json:"protocol" yaml:"protocol"`
	SID              string `json:"sid" yaml:"sid"`
	RemoveSIDFromURI bool   `json:"remove_sid_from_uri" yaml:"remove_sid_from_uri"`
}

// WithDefaults returns the effective options. The receiver is left untouched.
func (o Options) WithDefaults() Options {
	if strings.TrimSpace(o.Protocol) == "" {
		o.Protocol = DefaultProtocol
	}
	return o
}

// Validate reports ErrMissingConfig when no server is configured.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Server) == "" {
		return ErrMissingConfig
	}
	return nil
}

// ResolveMethod returns method, or DefaultMethod when it is empty.
func ResolveMethod(method string) string {
	if strings.TrimSpace(method) == "" {
		return DefaultMethod
	}
	return method
}

// AppendSID joins the session id onto path as "&sid=<sid>". The sid is not
// encoded and path is expected to already carry a query string.
func AppendSID(path, sid string, removeSIDFromURI bool) string {
	if sid == "" || removeSIDFromURI {
		return path
	}
	return path + "&sid=" + sid
}

// BuildURL concatenates protocol, server and path without any normalization.
func BuildURL(protocol, server, path string) string {
	return protocol + "://" + server + path
}

// TargetURL applies defaults to opts and returns the URL a request for path is sent to.
func TargetURL(path string, opts Options) string {
	eff := opts.WithDefaults()
	return BuildURL(eff.Protocol, eff.Server, AppendSID(path, eff.SID, eff.RemoveSIDFromURI))
}
