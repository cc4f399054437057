package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archwall/pkg/arch"
	"github.com/matzehuels/archwall/pkg/buildinfo"
	"github.com/matzehuels/archwall/pkg/cache"
	"github.com/matzehuels/archwall/pkg/observability"
	"github.com/matzehuels/archwall/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	runner := pipeline.NewRunner(fc, cache.NewScopedKeyer(nil, "serve:"), logger)
	srv := httptest.NewServer(newServer(runner, arch.Reference(), logger))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

func TestServeHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/healthz", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got["status"] != "ok" || got["version"] != buildinfo.Version {
		t.Errorf("healthz = %v", got)
	}
	if resp.Header.Get("Server") != buildinfo.UserAgent() {
		t.Errorf("Server header = %q, want %q", resp.Header.Get("Server"), buildinfo.UserAgent())
	}
}

func TestServeRender(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path        string
		contentType string
		prefix      string
	}{
		{"/render.svg", "image/svg+xml", "<svg"},
		{"/render.png", "image/png", "\x89PNG"},
		{"/render.png?scale=0.5", "image/png", "\x89PNG"},
		{"/render.pdf", "application/pdf", "%PDF-"},
		{"/render.json", "application/json", "{"},
		{"/composition", "application/json", "{"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.HasPrefix(strings.TrimSpace(string(body)), tt.prefix) {
				t.Errorf("body does not start with %q", tt.prefix)
			}
		})
	}
}

func TestServeCacheAndETag(t *testing.T) {
	srv := newTestServer(t)

	first, _ := get(t, srv.URL+"/render.svg", nil)
	if first.Header.Get("X-Cache") != "miss" {
		t.Errorf("first X-Cache = %q, want miss", first.Header.Get("X-Cache"))
	}
	second, _ := get(t, srv.URL+"/render.svg", nil)
	if second.Header.Get("X-Cache") != "hit" {
		t.Errorf("second X-Cache = %q, want hit", second.Header.Get("X-Cache"))
	}
	refreshed, _ := get(t, srv.URL+"/render.svg?refresh=1", nil)
	if refreshed.Header.Get("X-Cache") != "miss" {
		t.Errorf("refresh X-Cache = %q, want miss", refreshed.Header.Get("X-Cache"))
	}

	etag := second.Header.Get("ETag")
	if etag == "" {
		t.Fatal("no ETag")
	}
	resp, body := get(t, srv.URL+"/render.svg", http.Header{"If-None-Match": {etag}})
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", resp.StatusCode)
	}
	if len(body) != 0 {
		t.Errorf("304 response has a body of %d bytes", len(body))
	}
}

func TestServeErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/render.gif", http.StatusNotFound, "INVALID_FORMAT"},
		{"/render.png?scale=big", http.StatusBadRequest, "INVALID_INPUT"},
		{"/render.png?scale=-2", http.StatusBadRequest, "INVALID_INPUT"},
		{"/render.png?scale=100", http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path, nil)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var got errorResponse
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode error body %q: %v", body, err)
			}
			if got.Code != tt.code || got.Error == "" {
				t.Errorf("error body = %+v, want code %s", got, tt.code)
			}
		})
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func (h *recordingHTTPHooks) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.routes)
}

func TestServeHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t)
	get(t, srv.URL+"/render.svg", nil)
	get(t, srv.URL+"/render.gif", nil)

	// OnResponse fires after the body is flushed, so the client can see the
	// response first.
	deadline := time.Now().Add(2 * time.Second)
	for hooks.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 2 {
		t.Fatalf("got %d responses, want 2", len(hooks.routes))
	}
	for i, want := range []int{http.StatusOK, http.StatusNotFound} {
		if hooks.routes[i] != "/render.{format}" {
			t.Errorf("route[%d] = %q, want the route pattern", i, hooks.routes[i])
		}
		if hooks.status[i] != want {
			t.Errorf("status[%d] = %d, want %d", i, hooks.status[i], want)
		}
	}
}
