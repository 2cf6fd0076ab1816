package testserver

import (
	"net/http/httptest"
	"testing"

	"github.com/rpggio/noteboard/internal/demobackend"
	"github.com/rpggio/noteboard/internal/domain/note"
)

// TestServer is a fake notes backend listening on a local port.
type TestServer struct {
	Server  *httptest.Server
	Backend *demobackend.Backend
	// BaseURL is the API root to hand to backend.NewClient.
	BaseURL string
}

// New starts a fake backend seeded with notes and stops it when the test ends.
func New(t *testing.T, seed ...note.Note) *TestServer {
	t.Helper()

	b := demobackend.NewBackend()
	b.Seed(seed...)
	server := httptest.NewServer(b)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:  server,
		Backend: b,
		BaseURL: server.URL + "/api",
	}
}

// Unreachable returns a base URL whose server has already been shut down.
func Unreachable(t *testing.T) string {
	t.Helper()

	server := httptest.NewServer(demobackend.NewBackend())
	url := server.URL + "/api"
	server.Close()
	return url
}
