package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Fixture is a canned provider response.
type Fixture struct {
	Status      int
	Body        string
	ContentType string
}

// JSON returns a 200 fixture with a JSON body.
func JSON(body string) Fixture {
	return Fixture{Status: http.StatusOK, Body: body, ContentType: "application/json"}
}

// ProviderServer serves fixtures keyed by request path and records which
// paths were hit. Unknown paths answer 404 with a TMDB style error body.
type ProviderServer struct {
	*httptest.Server

	mu       sync.Mutex
	fixtures map[string]Fixture
	hits     map[string]int
}

// NewProviderServer starts a server for fixtures. It is closed when the test ends.
func NewProviderServer(t *testing.T, fixtures map[string]Fixture) *ProviderServer {
	t.Helper()

	s := &ProviderServer{
		fixtures: make(map[string]Fixture, len(fixtures)),
		hits:     make(map[string]int),
	}
	for path, f := range fixtures {
		s.fixtures[path] = f
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *ProviderServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	f, ok := s.fixtures[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
		return
	}

	if f.ContentType != "" {
		w.Header().Set("Content-Type", f.ContentType)
	}
	status := f.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(f.Body))
}

// Set replaces or adds the fixture for path.
func (s *ProviderServer) Set(path string, f Fixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures[path] = f
}

// Hits reports how many requests reached path.
func (s *ProviderServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}
