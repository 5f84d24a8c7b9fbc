// Package iotesting provides shared test utilities: canned-response
// HTTP servers for source adapters and switches for tests that need
// real network or database access.
package iotesting

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gnames/gntaxa/internal/iohttp"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/taxon"
)

const (
	// TestDatabaseName is the database name used for archive integration
	// tests. Tests never write into a production database.
	TestDatabaseName = "gntaxa_test"

	// NetworkEnv enables tests against real web services.
	NetworkEnv = "GNTAXA_NETWORK_TESTS"
)

// Route is a canned response.
type Route struct {
	Status int
	Body   string
}

// Server serves canned responses keyed by request path, or by path with
// raw query ("/path?a=b") when a more specific response is needed.
type Server struct {
	*httptest.Server
	mu     sync.Mutex
	routes map[string]Route
	hits   []string
}

// NewServer starts a Server that closes with the test.
func NewServer(t *testing.T, routes map[string]Route) *Server {
	res := &Server{routes: routes}
	res.Server = httptest.NewServer(http.HandlerFunc(res.handle))
	t.Cleanup(res.Close)
	return res
}

// JSON is a shortcut for a 200 response.
func JSON(body string) Route {
	return Route{Status: http.StatusOK, Body: body}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	full := r.URL.Path + "?" + r.URL.RawQuery
	s.hits = append(s.hits, full)
	route, ok := s.routes[full]
	if !ok {
		route, ok = s.routes[r.URL.Path]
	}
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	status := route.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(route.Body))
}

// Hits returns requested paths with queries in order of arrival.
func (s *Server) Hits() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.hits...)
}

// Transport returns a transport that sends requests of a source to the
// server. Rate limiting is disabled unless opts set it.
func (s *Server) Transport(src taxon.Source, opts ...config.Option) *iohttp.Transport {
	cfg := config.New()
	all := []config.Option{
		config.OptSourceURL(src, s.URL),
		config.OptSourceMinInterval(src, 0),
	}
	cfg.Update(append(all, opts...))
	return iohttp.NewTransport(cfg)
}

// SkipNetwork skips tests that need access to real web services.
func SkipNetwork(t *testing.T) {
	t.Helper()
	if testing.Short() || os.Getenv(NetworkEnv) == "" {
		t.Skipf("set %s to run tests against web services", NetworkEnv)
	}
}
