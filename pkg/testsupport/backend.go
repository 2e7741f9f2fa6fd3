package testsupport

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// ChangesBackend is a fake change-record service answering POST /changes
// with a fixed status and JSON body. Every decoded multipart form is kept.
type ChangesBackend struct {
	server *httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	forms    []url.Values
	requests []http.Header
}

// NewChangesBackend starts a backend that is closed when the test ends.
func NewChangesBackend(t *testing.T, status int, body string) *ChangesBackend {
	t.Helper()

	backend := &ChangesBackend{status: status, body: body}
	router := chi.NewRouter()
	router.Post("/changes", backend.handle)
	backend.server = httptest.NewServer(router)
	t.Cleanup(backend.server.Close)
	return backend
}

func (b *ChangesBackend) handle(w http.ResponseWriter, r *http.Request) {
	var form url.Values
	if err := r.ParseMultipartForm(1 << 20); err == nil && r.MultipartForm != nil {
		form = url.Values(r.MultipartForm.Value)
	}

	b.mu.Lock()
	b.forms = append(b.forms, form)
	b.requests = append(b.requests, r.Header.Clone())
	status, body := b.status, b.body
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// URL is the base URL to hand to a submit client.
func (b *ChangesBackend) URL() string {
	return b.server.URL
}

// Respond changes the answer for subsequent requests.
func (b *ChangesBackend) Respond(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
	b.body = body
}

// Hits returns the number of requests received.
func (b *ChangesBackend) Hits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.forms)
}

// Forms returns the decoded form of every request received.
func (b *ChangesBackend) Forms() []url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]url.Values(nil), b.forms...)
}

// Headers returns the headers of every request received.
func (b *ChangesBackend) Headers() []http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]http.Header(nil), b.requests...)
}
