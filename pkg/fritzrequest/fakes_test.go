package fritzrequest

import (
	"context"
	"sync"

	"github.com/samvad-hq/fritzbox-request/pkg/httpclient"
)

type fakeResponse struct {
	body       []byte
	statusCode int
}

func (f fakeResponse) Body() []byte    { return f.body }
func (f fakeResponse) StatusCode() int { return f.statusCode }

// fakeHTTPClient records calls and returns a canned response or error.
type fakeHTTPClient struct {
	mu      sync.Mutex
	calls   []fakeCall
	resp    fakeResponse
	err     error
	lastCtx context.Context
}

type fakeCall struct {
	method string
	url    string
}

func (f *fakeHTTPClient) Do(ctx context.Context, method, url string) (httpclient.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{method: method, url: url})
	f.lastCtx = ctx
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type logEntry struct {
	level string
	msg   string
	key   string
	obj   interface{}
}

// recordingLogger captures every emitted line.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) add(level, msg, key string, obj interface{}) {
	r.mu.Lock()
	r.entries = append(r.entries, logEntry{level: level, msg: msg, key: key, obj: obj})
	r.mu.Unlock()
}

func (r *recordingLogger) InfoObj(msg, key string, obj interface{})  { r.add("info", msg, key, obj) }
func (r *recordingLogger) DebugObj(msg, key string, obj interface{}) { r.add("debug", msg, key, obj) }
func (r *recordingLogger) WarnObj(msg, key string, obj interface{})  { r.add("warn", msg, key, obj) }
func (r *recordingLogger) ErrorObj(msg, key string, obj interface{}) { r.add("error", msg, key, obj) }

func (r *recordingLogger) level(level string) []logEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []logEntry
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}
